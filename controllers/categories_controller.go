package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/dto"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/utils"
)

func (a *App) GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.Categories(c.Request.Context(), a.Store)
		if err != nil {
			a.fail(c, err)
			return
		}

		items := make([]models.Category, 0, len(categories))
		q := catalog.Normalize(strings.TrimSpace(c.Query("q")))
		for _, cat := range categories {
			if q == "" || strings.Contains(catalog.Normalize(cat.Name), q) {
				items = append(items, cat)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

// GET /api/categories/:slug
func (a *App) GetCategoryBySlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.Log.WithError(err).Error("failed to read store")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		listing, err := a.Resolver.Lookup(c.Param("slug"), doc.Categories, doc.Products)
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, listing)
	}
}

func nameTaken(categories []models.Category, name, exceptID string) bool {
	key := catalog.Normalize(name)
	for _, cat := range categories {
		if cat.ID != exceptID && catalog.Normalize(cat.Name) == key {
			return true
		}
	}
	return false
}

func (a *App) AddCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		link := strings.TrimSpace(body.Link)
		if link == "" {
			link = "/category/" + utils.GenerateSlug(body.Name)
		}

		cat := models.Category{
			ID:             utils.NewID(),
			Name:           body.Name,
			Image:          strings.TrimSpace(body.Image),
			Link:           link,
			ParentCategory: strings.TrimSpace(body.ParentCategory),
			Description:    strings.TrimSpace(body.Description),
		}

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			if nameTaken(doc.Categories, cat.Name, "") {
				return conflict("category name already exists")
			}
			if cat.ParentCategory != "" {
				if _, parent := doc.CategoryByID(cat.ParentCategory); parent == nil {
					return badRequest("parent category not found")
				}
			}
			doc.Categories = append(doc.Categories, cat)
			catalog.RecountCategories(doc)
			cat = doc.Categories[len(doc.Categories)-1]
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		a.Log.WithField("category", cat.Name).Info("Category created")
		c.JSON(http.StatusCreated, cat)
	}
}

// PATCH /api/admin/categories/:id
// A rename is carried over to the products linked to the category.
func (a *App) UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var body dto.UpdateCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.Name == nil && body.Image == nil && body.Link == nil && body.ParentCategory == nil && body.Description == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}

		var updated models.Category
		renamed := 0
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			_, cat := doc.CategoryByID(id)
			if cat == nil {
				return notFound("category")
			}

			if body.Name != nil {
				v := strings.TrimSpace(*body.Name)
				if v == "" {
					return badRequest("name cannot be empty")
				}
				if nameTaken(doc.Categories, v, id) {
					return conflict("category name already exists")
				}
				if v != cat.Name {
					renamed = catalog.RenameCategory(doc, id, cat.Name, v)
					cat.Name = v
				}
			}
			if body.Image != nil {
				cat.Image = strings.TrimSpace(*body.Image)
			}
			if body.Link != nil {
				cat.Link = strings.TrimSpace(*body.Link)
			}
			if body.Description != nil {
				cat.Description = strings.TrimSpace(*body.Description)
			}
			if body.ParentCategory != nil {
				parentID := strings.TrimSpace(*body.ParentCategory)
				if parentID == id {
					return badRequest("category cannot be its own parent")
				}
				if parentID != "" {
					if _, parent := doc.CategoryByID(parentID); parent == nil {
						return badRequest("parent category not found")
					}
				}
				cat.ParentCategory = parentID
			}
			catalog.RecountCategories(doc)
			updated = *cat
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		if renamed > 0 {
			a.Log.WithField("category", updated.Name).Infof("Category rename applied to %d products", renamed)
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteCategory detaches child categories and unlinks products. Products
// keep their category name, so a later category with that name picks them
// up again.
func (a *App) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			i, _ := doc.CategoryByID(id)
			if i < 0 {
				return notFound("category")
			}
			doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
			for ci := range doc.Categories {
				if doc.Categories[ci].ParentCategory == id {
					doc.Categories[ci].ParentCategory = ""
				}
			}
			for pi := range doc.Products {
				if doc.Products[pi].CategoryID == id {
					doc.Products[pi].CategoryID = ""
				}
			}
			catalog.RecountCategories(doc)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
