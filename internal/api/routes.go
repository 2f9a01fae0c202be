package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(router *gin.Engine, catalog *Catalog, logger *logrus.Logger) {
	router.Use(cors.Default())

	handler := NewHandler(catalog, logger)

	api := router.Group("/api")
	{
		api.GET("/imoveis", handler.GetImoveis)
		api.GET("/stats", handler.GetStats)
		api.GET("/top", handler.GetTop)
	}
}
