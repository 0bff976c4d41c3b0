// Package server wires the stub auction backend: a gin implementation of the
// REST contract the client consumes, backed by the in-memory store. It exists
// for integration tests and the demo binary, not as a product backend.
package server

import (
	"auction-client/internal/repository"
	handler "auction-client/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the stub backend
func SetupRouter(store repository.AuctionStore, tokens *TokenIssuer) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(store)

	api := router.Group("/api")

	// Reads are open; unauthenticated callers get bidder fields stripped.
	api.GET("/auctions", OptionalAuth(tokens), auctionHandler.ListAuctionsHandler)
	api.GET("/auctions/:id", OptionalAuth(tokens), auctionHandler.GetAuctionHandler)

	authed := api.Group("", RequireAuth(tokens))
	{
		authed.POST("/auctions", auctionHandler.CreateAuctionHandler)
		authed.PUT("/auctions/:id", auctionHandler.UpdateAuctionHandler)
		authed.DELETE("/auctions/:id", auctionHandler.DeleteAuctionHandler)
		authed.POST("/auctions/:id/bid", auctionHandler.PlaceBidHandler)
		authed.GET("/users/:user_id/auctions", auctionHandler.GetUserAuctionsHandler)
	}

	return router
}
