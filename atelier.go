package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"atelier.GO/api"
	_ "atelier.GO/api/cart"
	_ "atelier.GO/api/catalog"
	_ "atelier.GO/api/gallery"
	_ "atelier.GO/api/graphql"
	"atelier.GO/cart"
	"atelier.GO/catalog"
	"atelier.GO/config"
	"atelier.GO/core/auth"
	"atelier.GO/core/cache"
	"atelier.GO/core/kv"
	atelierCron "atelier.GO/cron"
	"atelier.GO/cron/jobs"
	"atelier.GO/html"
	galleryEntity "atelier.GO/model/entity/gallery"
	productEntity "atelier.GO/model/entity/product"
	productRepo "atelier.GO/model/repository/product"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	config.InitRedis()
	redisStatus := "Redis not configured, file-backed session storage in use."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, file-backed session storage in use."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	// MySQL is migrated via `db:migrate`; the sqlite demo DB migrates itself.
	if !config.UsingMySQL() {
		if err := db.AutoMigrate(&productEntity.Product{}, &galleryEntity.GalleryImage{}); err != nil {
			log.Fatalf("sqlite automigrate failed: %v", err)
		}
	}

	carts := cart.NewManager(sessionKV())

	src := catalogSource(db)
	snap := catalog.NewSnapshot()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := snap.Refresh(ctx, src); err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	cancel()
	log.Printf("Catalog loaded: %d products.", snap.Len())

	jobs.ConfigureCatalogRefresh(snap, src)
	jobs.ConfigureCartJanitor(carts, cartIdleTTL())
	if config.GetEnv("CRON_ENABLED", "") == "1" {
		atelierCron.StartCron()
		log.Println("Cron scheduler started.")
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.Renderer = html.NewRenderer()

	deps := &api.Deps{
		DB:      db,
		Catalog: snap,
		Carts:   carts,
		Cache:   cache.GetInstance(),
	}
	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)
	html.RegisterStorefrontRoutes(e, snap, carts)
	e.Static("/media", config.AppConfig.MediaDir)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

// sessionKV picks the durable key-value backend for session carts:
// redis when reachable, a local JSON file otherwise.
func sessionKV() kv.Store {
	if config.RedisClient != nil {
		return kv.NewRedisStore(config.RedisClient, "atelier")
	}
	return kv.NewFileStore(config.GetEnv("KV_PATH", "atelier_kv.json"))
}

// catalogSource selects where the in-memory catalog snapshot loads from.
func catalogSource(db *gorm.DB) catalog.Source {
	switch config.GetEnv("CATALOG_SOURCE", "fixture") {
	case "remote":
		return catalog.NewRemoteSource(config.GetEnv("CATALOG_REMOTE_URL", "http://localhost:8081"))
	case "db":
		return productRepo.NewSource(productRepo.GetProductRepository(db))
	default:
		return catalog.FixtureSource{}
	}
}

func cartIdleTTL() time.Duration {
	if d, err := time.ParseDuration(config.GetEnv("CART_IDLE_TTL", "2h")); err == nil {
		return d
	}
	return 2 * time.Hour
}
