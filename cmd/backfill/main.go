// Command backfill links products to their category by id and refreshes the
// category counts in the configured store.
package main

import (
	"context"

	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/models"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := config.NewLogger("info")

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer store.Close(ctx)

	var linked, unlinked int
	err = database.Update(ctx, store, func(doc *models.Document) error {
		linked = catalog.BackfillCategoryIDs(doc)
		catalog.RecountCategories(doc)
		for _, p := range doc.Products {
			if p.CategoryID == "" {
				unlinked++
			}
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Fatal("Backfill failed")
	}

	logger.WithFields(logrus.Fields{
		"linked":   linked,
		"unlinked": unlinked,
	}).Info("Backfill finished")
}
