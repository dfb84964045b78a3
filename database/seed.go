package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/utils"
	"github.com/sirupsen/logrus"
)

func defaultAddons() []models.Addon {
	return []models.Addon{
		{ID: utils.NewID(), Name: "Haftungsbeschränkung", Description: "Reduziert die Selbstbeteiligung im Schadensfall.", Price: 12, PriceUnit: models.PriceUnitDay},
		{ID: utils.NewID(), Name: "Einweisung vor Ort", Description: "Einweisung durch einen Techniker bei Übergabe.", Price: 49, PriceUnit: models.PriceUnitOnce},
		{ID: utils.NewID(), Name: "Reinigung", Description: "Endreinigung nach Mietende.", Price: 35, PriceUnit: models.PriceUnitOnce},
	}
}

func defaultPages(now time.Time) []models.Page {
	return []models.Page{
		{Key: "home", Title: "Mietgeräte für Bau, Industrie und Handwerk", Content: "", UpdatedAt: now},
		{Key: "about", Title: "Über uns", Content: "", UpdatedAt: now},
		{Key: "contact", Title: "Kontakt", Content: "", UpdatedAt: now},
		{Key: "imprint", Title: "Impressum", Content: "", UpdatedAt: now},
	}
}

func defaultConfigurator() models.ConfiguratorSettings {
	return models.ConfiguratorSettings{
		Enabled:           true,
		MinRentalDays:     1,
		MaxRentalDays:     90,
		DeliveryAvailable: true,
		DeliveryFee:       89,
	}
}

// Seed fills empty collections with first-run defaults. It never touches a
// collection that already has entries.
func Seed(ctx context.Context, s Store, logger *logrus.Logger) error {
	return Update(ctx, s, func(doc *models.Document) error {
		now := time.Now().UTC()
		if len(doc.Addons) == 0 {
			doc.Addons = defaultAddons()
			logger.Info("Seeded default addons")
		}
		if len(doc.Pages) == 0 {
			doc.Pages = defaultPages(now)
			logger.Info("Seeded default pages")
		}
		if doc.Configurator == nil {
			settings := defaultConfigurator()
			doc.Configurator = &settings
			logger.Info("Seeded default configurator settings")
		}
		return nil
	})
}

func SeedAdminUser(ctx context.Context, s Store, email, password string, logger *logrus.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	return Update(ctx, s, func(doc *models.Document) error {
		if doc.UserByEmail(email) != nil {
			logger.WithField("email", email).Info("Admin user already exists")
			return nil
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		now := time.Now().UTC()
		doc.Users = append(doc.Users, models.User{
			ID:           utils.NewID(),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		logger.WithField("email", email).Info("Admin user seeded")
		return nil
	})
}
