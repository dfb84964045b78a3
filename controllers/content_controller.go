package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/dto"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/utils"
)

func (a *App) GetPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		_, page := doc.PageByKey(c.Param("key"))
		if page == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// PUT /api/admin/pages/:key creates the page when the key is new.
func (a *App) UpsertPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := utils.GenerateSlug(c.Param("key"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page key"})
			return
		}

		var body dto.UpsertPageDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		page := models.Page{
			Key:             key,
			Title:           strings.TrimSpace(body.Title),
			Content:         body.Content,
			MetaDescription: strings.TrimSpace(body.MetaDescription),
			UpdatedAt:       time.Now().UTC(),
		}
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			if i, _ := doc.PageByKey(key); i >= 0 {
				doc.Pages[i] = page
				return nil
			}
			doc.Pages = append(doc.Pages, page)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

// GET /api/configurator returns the settings together with the bookable
// addons.
func (a *App) GetConfigurator() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		addons := doc.Addons
		if addons == nil {
			addons = []models.Addon{}
		}
		c.JSON(http.StatusOK, gin.H{
			"settings": doc.Settings(),
			"addons":   addons,
		})
	}
}

func (a *App) UpdateConfigurator() gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.ConfiguratorSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if settings.MinRentalDays > 0 && settings.MaxRentalDays > 0 && settings.MinRentalDays > settings.MaxRentalDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRentalDays must not exceed maxRentalDays"})
			return
		}

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			doc.Configurator = &settings
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}
