package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arremate/server/internal/models"
)

type fakeSource struct {
	name     string
	priority int
	records  []*models.Imovel
	err      error
	delay    time.Duration
}

func (f *fakeSource) Name() string  { return f.name }
func (f *fakeSource) Priority() int { return f.priority }

func (f *fakeSource) Fetch(ctx context.Context) ([]*models.Imovel, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, f.err
}

func TestFetchAll_SettledSemantics(t *testing.T) {
	// One failing source never takes the others down with it.
	srcs := []Source{
		&fakeSource{name: "ok", records: []*models.Imovel{{ID: "ok-1", Lance: 100000}}},
		&fakeSource{name: "broken", err: errors.New("site is down")},
	}

	records, err := FetchAll(context.Background(), srcs, time.Minute, logrus.New())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok-1", records[0].ID)
}

func TestFetchAll_AllFailedAbortsBatch(t *testing.T) {
	srcs := []Source{
		&fakeSource{name: "a", err: errors.New("down")},
		&fakeSource{name: "b", err: errors.New("also down")},
	}

	_, err := FetchAll(context.Background(), srcs, time.Minute, logrus.New())
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
}

func TestFetchAll_SlowSourceTimesOutAlone(t *testing.T) {
	srcs := []Source{
		&fakeSource{name: "fast", records: []*models.Imovel{{ID: "fast-1", Lance: 100000}}},
		&fakeSource{name: "slow", delay: time.Second, records: []*models.Imovel{{ID: "slow-1", Lance: 100000}}},
	}

	records, err := FetchAll(context.Background(), srcs, 50*time.Millisecond, logrus.New())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fast-1", records[0].ID)
}

func TestFetchAll_MergesAllSources(t *testing.T) {
	srcs := []Source{
		&fakeSource{name: "a", records: []*models.Imovel{{ID: "a-1", Lance: 1}, {ID: "a-2", Lance: 2}}},
		&fakeSource{name: "b", records: []*models.Imovel{{ID: "b-1", Lance: 3}}},
	}

	records, err := FetchAll(context.Background(), srcs, time.Minute, logrus.New())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestPriorities(t *testing.T) {
	srcs := []Source{
		&fakeSource{name: "caixa", priority: 0},
		&fakeSource{name: "zuk", priority: 2},
	}
	assert.Equal(t, map[string]int{"caixa": 0, "zuk": 2}, Priorities(srcs))
}

func TestDropInvalid(t *testing.T) {
	records := []*models.Imovel{
		{ID: "ok", Lance: 100000},
		{ID: "zero price", Lance: 0},
		{ID: "negative", Lance: -1},
	}

	out := dropInvalid(records, "test", 0, logrus.New())
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].ID)
}
