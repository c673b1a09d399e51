package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"monagenda.fr/myagenda/internal/bootstrap"
	"monagenda.fr/myagenda/internal/config"
	"monagenda.fr/myagenda/internal/server"
	"monagenda.fr/myagenda/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
		if err := bootstrap.SeedSampleHomework(db); err != nil {
			log.Fatalf("failed to seed sample homework: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.New(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when no REDIS_URL is configured; live notification
// delivery and comment rate limiting are then disabled.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, running without redis: %v", err)
		return nil
	}

	return client
}
