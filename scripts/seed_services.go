package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"salonbook/internal/database"
	"salonbook/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type ServicesConfig struct {
	Services []models.Service `yaml:"services"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		servicesPath = flag.String("services", "configs/services.yaml", "path to services.yaml")
		dbPath       = flag.String("db", "./data/salonbook.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*servicesPath)
	if err != nil {
		return fmt.Errorf("read services: %w", err)
	}
	var cfg ServicesConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse services: %w", err)
	}
	if len(cfg.Services) == 0 {
		return fmt.Errorf("no services in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	updated := 0
	for _, svc := range cfg.Services {
		if svc.Name == "" {
			continue
		}
		err = db.UpdateService(ctx, &svc)
		if err == nil {
			updated++
			continue
		}
		if !errors.Is(err, database.ErrServiceNotFound) {
			return fmt.Errorf("update %s: %w", svc.Name, err)
		}
		if err = db.CreateService(ctx, &svc); err != nil {
			return fmt.Errorf("create %s: %w", svc.Name, err)
		}
		created++
	}

	logger.Info().Int("created", created).Int("updated", updated).Msg("catalog seeded")
	return nil
}
