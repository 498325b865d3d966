// Command seeduser creates a user or resets its password and role.
//
//	SEED_USERNAME=buyer SEED_PASSWORD=secret SEED_ROLE=supplier go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"time"

	"supplyease/internal/config"
	"supplyease/internal/infra"
	"supplyease/internal/model"
	"supplyease/internal/repository"
	"supplyease/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SEED_USERNAME", "admin")
	v.SetDefault("SEED_ROLE", model.RoleAdmin)

	username := v.GetString("SEED_USERNAME")
	password := v.GetString("SEED_PASSWORD")
	role := v.GetString("SEED_ROLE")
	if password == "" {
		password = cfg.DefaultAdminPassword
	}
	if role != model.RoleAdmin && role != model.RoleSupplier {
		log.Fatal().Str("role", role).Msg("SEED_ROLE must be admin or supplier")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	user, err := auth.UpsertUser(context.Background(), username, password, role)
	if err != nil {
		log.Fatal().Err(err).Msg("upsert user failed")
	}
	log.Info().Uint("id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user created or updated")
}
