package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/config"
	"github.com/chuk05/myy-signature-myy-style/internal/migrations"
	"github.com/chuk05/myy-signature-myy-style/internal/repository"
	"github.com/chuk05/myy-signature-myy-style/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: default categories and services, 2: random staff, 3: both)")
	flag.IntVar(&n, "n", 5, "number of staff members to create")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, dbpool); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			return
		}
	}

	repo := repository.NewRepository(cfg, dbpool)

	seedCatalogue := func() {
		cnt, err := seed.SeedCatalogue(repo)
		if err != nil {
			logger.Error("failed to seed catalogue", slog.String("error", err.Error()))
			return
		}
		logger.Info("catalogue seeded", slog.Int("services", cnt))
	}

	seedStaff := func() {
		if n <= 0 {
			logger.Error("staff count must be positive")
			return
		}
		cnt, err := seed.SeedStaff(repo, n, cfg.Seed.Staff.Password, cfg.Seed.Staff.EmailDomain)
		if err != nil {
			logger.Error("failed to seed staff", slog.String("error", err.Error()))
			return
		}
		logger.Info("staff seeded", slog.Int("count", cnt))
	}

	switch op {
	case 0:
		logger.Error("no operation given")
	case 1:
		seedCatalogue()
	case 2:
		seedStaff()
	case 3:
		seedCatalogue()
		seedStaff()
	default:
		logger.Error("unknown operation", slog.Int("op", op))
	}
}
