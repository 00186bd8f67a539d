package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"propflow/agent"
	"propflow/cms"
	"propflow/config"
	"propflow/db"
	"propflow/development"
	"propflow/favorite"
	"propflow/httpapi"
	"propflow/identity"
	"propflow/lead"
	"propflow/property"
	"propflow/revalidate"
)

func main() {
	// .env is a development convenience; hosted environments inject real vars.
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.MaxPoolSize)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	signal := buildSignal(cfg)

	profileStore := identity.NewProfileStore(pool)
	resolver := identity.NewResolver(cfg.JWTSecret, profileStore)
	profiles := identity.NewManager(profileStore)

	agents := agent.NewRepository(pool)
	propertyStore := property.NewRepository(pool)
	properties := property.NewService(propertyStore, agents, signal)
	developments := development.NewService(development.NewRepository(pool), agents, signal)
	leads := lead.NewService(lead.NewRepository(pool), propertyStore, signal)
	favorites := favorite.NewService(favorite.NewRepository(pool), propertyStore, signal)

	var pages httpapi.PageSource
	if cfg.CMSBaseURL != "" {
		pages = cms.NewClient(cfg.CMSBaseURL)
	}

	router := httpapi.NewRouter(cfg, httpapi.Deps{
		Resolver:     resolver,
		Profiles:     profiles,
		Agents:       agents,
		Properties:   properties,
		Developments: developments,
		Leads:        leads,
		Favorites:    favorites,
		Pages:        pages,
		Signal:       signal,
	})

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildSignal assembles the revalidation transports the environment enables.
func buildSignal(cfg config.Config) revalidate.Signal {
	signals := revalidate.Multi{}

	if cfg.RedisURL != "" {
		announcer, err := revalidate.NewRedisAnnouncer(cfg.RedisURL)
		if err != nil {
			log.Fatalf("bootstrap redis announcer: %v", err)
		}
		signals = append(signals, announcer)
	}
	if cfg.SiteBaseURL != "" {
		signals = append(signals, revalidate.NewPinger(cfg.SiteBaseURL, cfg.RevalidateSecret))
	}

	if len(signals) == 0 {
		return revalidate.Logger{}
	}
	return revalidate.Logger{Next: signals}
}
