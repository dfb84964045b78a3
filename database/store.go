package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/models"
	"github.com/sirupsen/logrus"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// Store holds the whole site document. Load returns a fresh copy on every
// call; Save replaces the stored document entirely.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	Close(ctx context.Context) error
}

// Open returns the store selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverFile:
		logger.WithField("path", cfg.DBPath).Info("Using JSON file store")
		return NewFileStore(cfg.DBPath), nil
	case config.DriverMongo:
		logger.WithField("database", cfg.DatabaseName).Info("Using MongoDB store")
		return NewMongoStore(ctx, cfg.MongoURI, cfg.DatabaseName)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

func Categories(ctx context.Context, s Store) ([]models.Category, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func Products(ctx context.Context, s Store) ([]models.Product, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Products, nil
}

func SaveAll(ctx context.Context, s Store, doc *models.Document) error {
	return s.Save(ctx, doc)
}

// Update loads the document, applies fn and saves the result. There is no
// lock between Load and Save: two concurrent updates race and the last
// Save wins. If fn returns an error nothing is written.
func Update(ctx context.Context, s Store, fn func(doc *models.Document) error) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(ctx, doc)
}
