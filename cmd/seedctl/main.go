// Command seedctl loads restaurant fixtures and an optional admin account
// into the database. Intended for local development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	authdomain "github.com/mealdash/mealdash/internal/domain/auth"
	"github.com/mealdash/mealdash/internal/domain/catalog"
	"github.com/mealdash/mealdash/internal/infra/config"
	"github.com/mealdash/mealdash/internal/infra/sqlite"
)

// seedFile is the YAML fixture layout.
type seedFile struct {
	Admin *struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Phone    string `yaml:"phone"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Restaurants []struct {
		Name       string   `yaml:"name"`
		Cuisines   []string `yaml:"cuisines"`
		AreaName   string   `yaml:"areaName"`
		AvgRating  float64  `yaml:"avgRating"`
		CostForTwo int      `yaml:"costForTwo"`
		Veg        bool     `yaml:"veg"`
	} `yaml:"restaurants"`
}

func main() {
	file := flag.String("file", "seed.yaml", "path to the YAML seed file")
	flag.Parse()

	_ = godotenv.Load()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(log, *file); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func run(log *zap.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	cfg := config.Load()
	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := sqlite.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx := context.Background()
	restaurants := catalog.NewRestaurantService(db)
	for _, r := range seed.Restaurants {
		created, err := restaurants.Create(ctx, catalog.CreateRestaurantInput{
			Name:       r.Name,
			Cuisines:   r.Cuisines,
			AreaName:   r.AreaName,
			AvgRating:  r.AvgRating,
			CostForTwo: r.CostForTwo,
			Veg:        r.Veg,
		})
		if err != nil {
			return fmt.Errorf("seed restaurant %q: %w", r.Name, err)
		}
		log.Info("seeded restaurant", zap.String("id", created.ID), zap.String("name", created.Name))
	}

	if seed.Admin != nil {
		users := authdomain.NewService(db)
		admin, err := users.CreateAdmin(ctx, seed.Admin.Name, seed.Admin.Email, seed.Admin.Phone, seed.Admin.Password)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info("seeded admin", zap.String("id", admin.ID), zap.String("email", admin.Email))
	}

	log.Info("seed complete", zap.Int("restaurants", len(seed.Restaurants)))
	return nil
}
