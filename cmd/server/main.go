package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/bizdir/business-listing-api/internal/config"
	"github.com/bizdir/business-listing-api/internal/database"
	"github.com/bizdir/business-listing-api/internal/handler"
	"github.com/bizdir/business-listing-api/internal/middleware"
	"github.com/bizdir/business-listing-api/internal/queue"
	"github.com/bizdir/business-listing-api/internal/repository"
	"github.com/bizdir/business-listing-api/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Response cache for the public browse endpoints. A nil client (Redis
	// down) simply disables caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	ratings := repository.NewRatingRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	lh := handler.NewListingHandler(listings)
	ah := handler.NewAdminListingHandler(listings)
	bh := handler.NewBrowseHandler(listings)
	rh := handler.NewRatingHandler(ratings)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterListingRoutes(e, lh, ah, bh, cfg.JWTSecret, cache)
	router.RegisterRatingRoutes(e, rh, cfg.JWTSecret)

	// Background consumer for rating activity; reconnects on its own.
	go func() {
		if err := queue.StartRatingConsumer(); err != nil {
			log.Printf("rating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
