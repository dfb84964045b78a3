package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/utils"
)

// record is a collection entry addressed by a string id.
type record[T any] interface {
	*T
	GetID() string
	SetID(string)
}

// collection returns the slice of a record type inside the document.
type collection[T any] func(doc *models.Document) *[]T

// prepare validates and completes an item before it is stored. previous is
// nil on create.
type prepare[T any] func(doc *models.Document, item *T, previous *T) error

func findRecord[T any, P record[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func listRecords[T any](a *App, col collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		items := *col(doc)
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

func createRecord[T any, P record[T]](a *App, col collection[T], prep prepare[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		P(&item).SetID(utils.NewID())

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			if prep != nil {
				if err := prep(doc, &item, nil); err != nil {
					return err
				}
			}
			items := col(doc)
			*items = append(*items, item)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

func replaceRecord[T any, P record[T]](a *App, col collection[T], name string, prep prepare[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		P(&item).SetID(id)

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			items := col(doc)
			i := findRecord[T, P](*items, id)
			if i < 0 {
				return notFound(name)
			}
			if prep != nil {
				if err := prep(doc, &item, &(*items)[i]); err != nil {
					return err
				}
			}
			(*items)[i] = item
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

func deleteRecord[T any, P record[T]](a *App, col collection[T], name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			items := col(doc)
			i := findRecord[T, P](*items, id)
			if i < 0 {
				return notFound(name)
			}
			*items = append((*items)[:i], (*items)[i+1:]...)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// Blog

func blogPosts(doc *models.Document) *[]models.BlogPost { return &doc.Blog }

func prepareBlogPost(doc *models.Document, post *models.BlogPost, previous *models.BlogPost) error {
	post.Title = strings.TrimSpace(post.Title)
	post.Slug = utils.GenerateSlug(post.Slug)
	if post.Slug == "" {
		post.Slug = utils.GenerateSlug(post.Title)
	}
	if post.Slug == "" {
		return badRequest("title must contain letters or digits")
	}
	for _, other := range doc.Blog {
		if other.ID != post.ID && other.Slug == post.Slug {
			return conflict("slug already exists")
		}
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	if previous != nil {
		post.CreatedAt = previous.CreatedAt
		if post.PublishedAt == nil {
			post.PublishedAt = previous.PublishedAt
		}
	}
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	return nil
}

func publishedDate(p models.BlogPost) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// GET /api/blog lists published posts, newest first. limit=0 returns all.
func (a *App) GetPublishedBlogPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		items := make([]models.BlogPost, 0, len(doc.Blog))
		for _, p := range doc.Blog {
			if p.Published {
				items = append(items, p)
			}
		}
		sort.SliceStable(items, func(i, j int) bool {
			return publishedDate(items[i]).After(publishedDate(items[j]))
		})
		if limit := utils.ParseIntDefault(c.Query("limit"), 0); limit > 0 && limit < len(items) {
			items = items[:limit]
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

// GET /api/blog/:slug accepts the slug or the id of a published post.
func (a *App) GetPublishedBlogPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		key := c.Param("slug")
		for _, p := range doc.Blog {
			if p.Published && (p.Slug == key || p.ID == key) {
				c.JSON(http.StatusOK, p)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
	}
}

// GET /api/admin/blog with an optional published=true|false filter.
func (a *App) GetBlogPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		published, err := utils.ParseBoolQuery(c.Query("published"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid published filter"})
			return
		}

		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		items := make([]models.BlogPost, 0, len(doc.Blog))
		for _, p := range doc.Blog {
			if published == nil || p.Published == *published {
				items = append(items, p)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

func (a *App) AddBlogPost() gin.HandlerFunc {
	return createRecord[models.BlogPost](a, blogPosts, prepareBlogPost)
}

func (a *App) UpdateBlogPost() gin.HandlerFunc {
	return replaceRecord[models.BlogPost](a, blogPosts, "blog post", prepareBlogPost)
}

func (a *App) DeleteBlogPost() gin.HandlerFunc {
	return deleteRecord[models.BlogPost](a, blogPosts, "blog post")
}

// Testimonials

func testimonials(doc *models.Document) *[]models.Testimonial { return &doc.Testimonials }

func (a *App) GetTestimonials() gin.HandlerFunc {
	return listRecords[models.Testimonial](a, testimonials)
}

func (a *App) AddTestimonial() gin.HandlerFunc {
	return createRecord[models.Testimonial](a, testimonials, nil)
}

func (a *App) UpdateTestimonial() gin.HandlerFunc {
	return replaceRecord[models.Testimonial](a, testimonials, "testimonial", nil)
}

func (a *App) DeleteTestimonial() gin.HandlerFunc {
	return deleteRecord[models.Testimonial](a, testimonials, "testimonial")
}

// Locations

func locations(doc *models.Document) *[]models.Location { return &doc.Locations }

func prepareLocation(doc *models.Document, loc *models.Location, _ *models.Location) error {
	if loc.ProductIDs == nil {
		loc.ProductIDs = []string{}
	}
	for _, id := range loc.ProductIDs {
		if _, p := doc.ProductByID(id); p == nil {
			return badRequest("product not found: " + id)
		}
	}
	return nil
}

func (a *App) GetLocations() gin.HandlerFunc {
	return listRecords[models.Location](a, locations)
}

func (a *App) AddLocation() gin.HandlerFunc {
	return createRecord[models.Location](a, locations, prepareLocation)
}

func (a *App) UpdateLocation() gin.HandlerFunc {
	return replaceRecord[models.Location](a, locations, "location", prepareLocation)
}

func (a *App) DeleteLocation() gin.HandlerFunc {
	return deleteRecord[models.Location](a, locations, "location")
}

// Addons

func addons(doc *models.Document) *[]models.Addon { return &doc.Addons }

func prepareAddon(_ *models.Document, addon *models.Addon, _ *models.Addon) error {
	if addon.PriceUnit == "" {
		addon.PriceUnit = models.PriceUnitOnce
	}
	return nil
}

func (a *App) GetAddons() gin.HandlerFunc {
	return listRecords[models.Addon](a, addons)
}

func (a *App) AddAddon() gin.HandlerFunc {
	return createRecord[models.Addon](a, addons, prepareAddon)
}

func (a *App) UpdateAddon() gin.HandlerFunc {
	return replaceRecord[models.Addon](a, addons, "addon", prepareAddon)
}

// DeleteAddon keeps the ids already stored on inquiries.
func (a *App) DeleteAddon() gin.HandlerFunc {
	return deleteRecord[models.Addon](a, addons, "addon")
}
