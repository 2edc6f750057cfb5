package app

import (
	"context"
	"log"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/pkg/jwt"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/ws"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Storage *storage.S3
	JWT     jwt.Service
	Hub     *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewS3(cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config:  cfg,
		DB:      db,
		Storage: store,
		JWT:     jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Hub:     ws.NewHub(log.Default()),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
