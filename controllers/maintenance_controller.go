package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/models"
)

// POST /api/admin/maintenance/backfill links legacy products to their
// category and refreshes the category counts.
func (a *App) BackfillCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		linked := 0
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			linked = catalog.BackfillCategoryIDs(doc)
			catalog.RecountCategories(doc)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		a.Log.WithField("linked", linked).Info("Category backfill finished")
		c.JSON(http.StatusOK, gin.H{"linked": linked})
	}
}
