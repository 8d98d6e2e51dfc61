package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/fluepoint/service-crm/internal/cache"
	"github.com/fluepoint/service-crm/internal/config"
	dbpkg "github.com/fluepoint/service-crm/internal/db"
	"github.com/fluepoint/service-crm/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var cacheStore cache.Store
	redisStore := cache.NewRedisStore(cfg.RedisAddr)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		log.Printf("redis unavailable (%v), using in-memory cache", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		cacheStore = redisStore
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cacheStore, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
