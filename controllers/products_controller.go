package controllers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/dto"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/storage"
	"github.com/princinho/rentalbackend/utils"
)

const maxProductImages = 8

func (a *App) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := database.Products(c.Request.Context(), a.Store)
		if err != nil {
			a.fail(c, err)
			return
		}

		category := catalog.Normalize(strings.TrimSpace(c.Query("category")))
		q := catalog.Normalize(strings.TrimSpace(c.Query("q")))

		items := make([]models.Product, 0, len(products))
		for _, p := range products {
			if category != "" && catalog.Normalize(p.Category) != category {
				continue
			}
			if q != "" && !strings.Contains(catalog.Normalize(p.Name), q) {
				continue
			}
			items = append(items, p)
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

// GET /api/products/:id accepts the id or the slug.
func (a *App) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := database.Products(c.Request.Context(), a.Store)
		if err != nil {
			a.fail(c, err)
			return
		}

		key := c.Param("id")
		for _, p := range products {
			if p.ID == key || p.Slug == key {
				c.JSON(http.StatusOK, p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	}
}

// linkCategory fills in the category reference of p. An explicit id must
// exist; otherwise the first category with the same normalized name is used.
func linkCategory(doc *models.Document, p *models.Product) error {
	if p.CategoryID != "" {
		_, cat := doc.CategoryByID(p.CategoryID)
		if cat == nil {
			return badRequest("category not found")
		}
		p.Category = cat.Name
		return nil
	}
	key := catalog.Normalize(p.Category)
	for _, cat := range doc.Categories {
		if catalog.Normalize(cat.Name) == key {
			p.CategoryID = cat.ID
			break
		}
	}
	return nil
}

func slugTaken(products []models.Product, slug, exceptID string) bool {
	for _, p := range products {
		if p.ID != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (a *App) AddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProductDTO
		if err := bindPayload(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		files := formFiles(c, "images")
		if len(body.Images)+len(files) > maxProductImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": "too many images"})
			return
		}
		if err := a.validateFiles(files); err != nil {
			a.fail(c, err)
			return
		}

		slug := utils.GenerateSlug(body.Name)
		uploaded, err := storage.UploadFiles(c.Request.Context(), a.Blobs, "products/"+slug, files)
		if err != nil {
			a.Log.WithError(err).Error("product image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload images"})
			return
		}

		images := make([]string, 0, len(body.Images)+len(uploaded))
		images = append(images, body.Images...)
		for _, it := range uploaded {
			images = append(images, it.URL)
		}
		image := strings.TrimSpace(body.Image)
		if image == "" && len(images) > 0 {
			image = images[0]
		}

		product := models.Product{
			ID:              utils.NewID(),
			Name:            strings.TrimSpace(body.Name),
			Slug:            slug,
			Category:        strings.TrimSpace(body.Category),
			CategoryID:      strings.TrimSpace(body.CategoryID),
			Subcategory:     strings.TrimSpace(body.Subcategory),
			Image:           image,
			Images:          images,
			Price:           body.Price,
			Description:     body.Description,
			Details:         body.Details,
			Documents:       body.Documents,
			InsuranceBadges: body.InsuranceBadges,
		}

		err = database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			if slugTaken(doc.Products, product.Slug, "") {
				return conflict("slug already exists")
			}
			if err := linkCategory(doc, &product); err != nil {
				return err
			}
			doc.Products = append(doc.Products, product)
			catalog.RecountCategories(doc)
			return nil
		})
		if err != nil {
			a.cleanupBlobs(c, storage.ObjectNames(uploaded))
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

func (a *App) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ctx := c.Request.Context()

		var body dto.UpdateProductDTO
		if err := bindPayload(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files := formFiles(c, "images")

		hasUpdates := body.Name != nil || body.Category != nil || body.CategoryID != nil ||
			body.Subcategory != nil || body.Image != nil || body.Price != nil ||
			body.Description != nil || body.Details != nil || body.Documents != nil ||
			body.InsuranceBadges != nil || len(body.RemovedImagesUrls) > 0 || len(files) > 0
		if !hasUpdates {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		if body.Price != nil && *body.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
			return
		}

		products, err := database.Products(ctx, a.Store)
		if err != nil {
			a.fail(c, err)
			return
		}
		var current *models.Product
		for i := range products {
			if products[i].ID == id {
				current = &products[i]
				break
			}
		}
		if current == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		toRemove := utils.IntersectStrings(body.RemovedImagesUrls, current.Images)
		if len(current.Images)-len(toRemove)+len(files) > maxProductImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": "too many images"})
			return
		}
		if err := a.validateFiles(files); err != nil {
			a.fail(c, err)
			return
		}

		uploaded, err := storage.UploadFiles(ctx, a.Blobs, "products/"+current.Slug, files)
		if err != nil {
			a.Log.WithError(err).Error("product image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload images"})
			return
		}
		newURLs := make([]string, 0, len(uploaded))
		for _, it := range uploaded {
			newURLs = append(newURLs, it.URL)
		}

		var updated models.Product
		err = database.Update(ctx, a.Store, func(doc *models.Document) error {
			_, p := doc.ProductByID(id)
			if p == nil {
				return notFound("product")
			}

			if body.Name != nil {
				v := strings.TrimSpace(*body.Name)
				if len(v) < 2 {
					return badRequest("name must have at least 2 characters")
				}
				slug := utils.GenerateSlug(v)
				if slugTaken(doc.Products, slug, id) {
					return conflict("slug already exists")
				}
				p.Name, p.Slug = v, slug
			}
			if body.CategoryID != nil {
				p.CategoryID = strings.TrimSpace(*body.CategoryID)
			}
			if body.Category != nil {
				p.Category = strings.TrimSpace(*body.Category)
				if body.CategoryID == nil {
					p.CategoryID = ""
				}
			}
			if body.Category != nil || body.CategoryID != nil {
				if err := linkCategory(doc, p); err != nil {
					return err
				}
			}
			if body.Subcategory != nil {
				p.Subcategory = strings.TrimSpace(*body.Subcategory)
			}
			if body.Price != nil {
				p.Price = *body.Price
			}
			if body.Description != nil {
				p.Description = *body.Description
			}
			if body.Details != nil {
				p.Details = *body.Details
			}
			if body.Documents != nil {
				p.Documents = *body.Documents
			}
			if body.InsuranceBadges != nil {
				p.InsuranceBadges = *body.InsuranceBadges
			}

			p.Images = utils.MergeImageUrlsArrays(p.Images, toRemove, newURLs)
			if body.Image != nil {
				p.Image = strings.TrimSpace(*body.Image)
			}
			if p.Image == "" || slices.Contains(toRemove, p.Image) {
				p.Image = ""
				if len(p.Images) > 0 {
					p.Image = p.Images[0]
				}
			}

			catalog.RecountCategories(doc)
			updated = *p
			return nil
		})
		if err != nil {
			a.cleanupBlobs(c, storage.ObjectNames(uploaded))
			a.fail(c, err)
			return
		}

		a.cleanupBlobs(c, storage.ObjectNamesFromURLs(a.Blobs, toRemove))
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteProduct removes the product, drops it from location stock lists and
// deletes the images the blob store owns.
func (a *App) DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var removed models.Product
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			i, p := doc.ProductByID(id)
			if p == nil {
				return notFound("product")
			}
			removed = *p
			doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
			for li := range doc.Locations {
				loc := &doc.Locations[li]
				kept := loc.ProductIDs[:0]
				for _, pid := range loc.ProductIDs {
					if pid != id {
						kept = append(kept, pid)
					}
				}
				loc.ProductIDs = kept
			}
			catalog.RecountCategories(doc)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		a.cleanupBlobs(c, storage.ObjectNamesFromURLs(a.Blobs, removed.Images))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
