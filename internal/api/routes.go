package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/listings", handler.CreateListing)
		api.GET("/listings", handler.GetAllListings)
		api.GET("/listings/:id", handler.GetListing)
		api.DELETE("/listings/:id", handler.DeleteListing)
		api.POST("/listings/:id/score", handler.ScoreListing)
		api.POST("/listings/:id/valuation", handler.ValuateListing)
		api.GET("/listings/:id/verify", handler.VerifyListing)

		api.POST("/valuations", handler.ValuatePayload)
		api.POST("/recommendations", handler.Recommend)

		api.GET("/portfolio/:owner_id", handler.GetPortfolio)
		api.GET("/market/:city", handler.GetMarketStats)

		api.POST("/users", handler.CreateUser)
		api.GET("/users/:id", handler.GetUser)
	}
}
