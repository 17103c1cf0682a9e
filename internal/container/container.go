package container

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/auth"
	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/cycle"
	"github.com/saulo-duarte/pms-lambda/internal/goal"
	"github.com/saulo-duarte/pms-lambda/internal/report"
	"github.com/saulo-duarte/pms-lambda/internal/review"
	"github.com/saulo-duarte/pms-lambda/internal/router"
	"github.com/saulo-duarte/pms-lambda/internal/selfassessment"
	"github.com/saulo-duarte/pms-lambda/internal/storage"
)

type Container struct {
	Config          *config.AppConfig
	GoalContainer   *goal.Container
	ReviewContainer *review.Container
	ReportContainer *report.Container
	SelfContainer   *selfassessment.Container
	Directory       actor.Directory

	badgerDB *badger.DB
}

// backend is the set of stores one storage driver provides.
type backend struct {
	goals     goal.Repository
	reviews   review.Repository
	selfs     selfassessment.Repository
	directory actor.Directory
	cycles    cycle.Checker
}

func New(ctx context.Context, cfg *config.AppConfig) (*Container, error) {
	config.Init(cfg.LogLevel)
	auth.Init()
	if cfg.CryptoKey != "" {
		config.InitCrypto()
	}

	c := &Container{Config: cfg}

	var b backend
	switch cfg.StorageDriver {
	case config.DriverBadger:
		db, err := storage.Open(storage.Options{Path: cfg.BadgerPath})
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		c.badgerDB = db

		directory := actor.NewBadgerDirectory(db)
		if cfg.DirectorySeedFile != "" {
			if err := seedDirectory(ctx, directory, cfg.DirectorySeedFile); err != nil {
				db.Close()
				return nil, err
			}
		}
		b = backend{
			goals:     goal.NewBadgerRepository(db),
			reviews:   review.NewBadgerRepository(db),
			selfs:     selfassessment.NewBadgerRepository(db),
			directory: directory,
			cycles:    cycle.Opaque{},
		}
	default:
		if err := config.Connect(ctx, cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("connect to DB: %w", err)
		}
		b = backend{
			goals:     goal.NewRepository(config.DB),
			reviews:   review.NewRepository(config.DB),
			selfs:     selfassessment.NewRepository(config.DB),
			directory: actor.NewDirectory(config.DB),
			cycles:    cycle.NewChecker(config.DB),
		}
	}

	c.Directory = b.directory
	c.ReviewContainer = review.NewContainer(b.reviews)
	c.GoalContainer = goal.NewContainer(b.goals, c.ReviewContainer.Emitter, b.directory, b.cycles)
	c.ReportContainer = report.NewContainer(b.goals, b.reviews)
	c.SelfContainer = selfassessment.NewContainer(b.selfs, b.directory, b.cycles)

	config.Logger.WithField("driver", cfg.StorageDriver).Info("Container ready")
	return c, nil
}

func seedDirectory(ctx context.Context, w actor.DirectoryWriter, path string) error {
	people, err := actor.LoadRosterFile(path)
	if err != nil {
		return err
	}
	if err := actor.SaveAll(ctx, w, people); err != nil {
		return err
	}
	config.Logger.WithField("people", len(people)).Info("Directory seeded")
	return nil
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		GoalHandler:    c.GoalContainer.Handler,
		ReviewHandler:  c.ReviewContainer.Handler,
		ReportHandler:  c.ReportContainer.Handler,
		SelfHandler:    c.SelfContainer.Handler,
		AllowedOrigins: c.Config.AllowedOrigins,
	})
}

func (c *Container) Close() error {
	if c.badgerDB != nil {
		return c.badgerDB.Close()
	}
	return nil
}

// Migrate creates or updates the PostgreSQL schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&actor.Person{},
		&cycle.Cycle{},
		&goal.Goal{},
		&review.Review{},
		&selfassessment.SelfAssessment{},
	)
}
