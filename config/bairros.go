package config

// BairroPreco is one neighborhood baseline: average listing price per m².
type BairroPreco struct {
	Nome    string  `json:"nome"`
	MediaM2 float64 `json:"media_m2"`
}

// PriceTable is the read-only market reference used by enrichment.
// Loaded once at startup and passed explicitly into the enricher; lookup
// order over Bairros is meaningful (first match wins).
type PriceTable struct {
	// Listing averages skew above true resale value; Haircut corrects
	// the baseline before any comparison.
	Haircut float64 `json:"haircut"`

	// Per-property-type multipliers on the corrected baseline.
	FatoresTipo map[string]float64 `json:"fatores_tipo"`

	Bairros []BairroPreco `json:"bairros"`
}

// DefaultPriceTable is the built-in Curitiba table. Values are listing
// averages per m², assembled from portal snapshots; the haircut brings
// them toward realized sale prices.
var DefaultPriceTable = PriceTable{
	Haircut: 0.90,
	FatoresTipo: map[string]float64{
		"apartamento": 1.00,
		"casa":        1.10,
		"sobrado":     1.10,
		"terreno":     0.85,
		"comercial":   0.75,
	},
	Bairros: []BairroPreco{
		{Nome: "Batel", MediaM2: 16240},
		{Nome: "Ecoville", MediaM2: 12970},
		{Nome: "Cabral", MediaM2: 11840},
		{Nome: "Agua Verde", MediaM2: 10480},
		{Nome: "Juveve", MediaM2: 10260},
		{Nome: "Bigorrilho", MediaM2: 10190},
		{Nome: "Champagnat", MediaM2: 10190},
		{Nome: "Centro Civico", MediaM2: 9860},
		{Nome: "Alto da Gloria", MediaM2: 9610},
		{Nome: "Jardim Social", MediaM2: 9540},
		{Nome: "Ahú", MediaM2: 9320},
		{Nome: "Merces", MediaM2: 9100},
		{Nome: "Cristo Rei", MediaM2: 8920},
		{Nome: "Bacacheri", MediaM2: 8530},
		{Nome: "Portão", MediaM2: 8140},
		{Nome: "Rebouças", MediaM2: 7890},
		{Nome: "Santa Felicidade", MediaM2: 7680},
		{Nome: "Centro", MediaM2: 7450},
		{Nome: "Novo Mundo", MediaM2: 6980},
		{Nome: "Capão Raso", MediaM2: 6740},
		{Nome: "Boqueirão", MediaM2: 6420},
		{Nome: "Xaxim", MediaM2: 6180},
		{Nome: "Pinheirinho", MediaM2: 5830},
		{Nome: "Sitio Cercado", MediaM2: 5310},
		{Nome: "Cidade Industrial", MediaM2: 5270},
		{Nome: "Tatuquara", MediaM2: 4480},
	},
}

// PriorityBairros are the neighborhoods actively watched for deals; a
// record in one of them earns the full priority factor in scoring.
var PriorityBairros = []string{
	"Agua Verde",
	"Batel",
	"Bigorrilho",
	"Cabral",
	"Cristo Rei",
	"Juveve",
	"Portão",
}
