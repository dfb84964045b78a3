package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlog(t *testing.T) {
	env := newTestEnv(t)

	w := env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/blog", gin.H{
		"title":     "Neue Scherenbühnen im Mietpark",
		"content":   "…",
		"published": true,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	published := decode[models.BlogPost](t, w)
	assert.Equal(t, "neue-scherenbuehnen-im-mietpark", published.Slug)
	assert.NotNil(t, published.PublishedAt)

	w = env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/blog", gin.H{"title": "Entwurf"}))
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode[models.BlogPost](t, w)

	t.Run("duplicate slug", func(t *testing.T) {
		w := env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/blog", gin.H{"title": "Entwurf!"}))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("public list hides drafts", func(t *testing.T) {
		w := env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode[gin.H](t, w)["total"])

		assert.Equal(t, http.StatusOK, env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/"+published.Slug, nil)).Code)
		assert.Equal(t, http.StatusNotFound, env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/"+draft.Slug, nil)).Code)
	})

	t.Run("admin filter", func(t *testing.T) {
		w := env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/blog?published=false", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode[gin.H](t, w)["total"])
	})

	t.Run("update keeps createdAt", func(t *testing.T) {
		w := env.admin(t, jsonRequest(t, http.MethodPut, "/api/admin/blog/"+draft.ID, gin.H{"title": "Entwurf", "published": true}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[models.BlogPost](t, w)
		assert.Equal(t, draft.ID, got.ID)
		assert.True(t, draft.CreatedAt.Equal(got.CreatedAt))
		assert.NotNil(t, got.PublishedAt)
	})
}

func TestSimpleRecords(t *testing.T) {
	env := newTestEnv(t)

	t.Run("testimonials", func(t *testing.T) {
		w := env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/testimonials", gin.H{"author": "Bau GmbH", "text": "Top Service", "rating": 6}))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/testimonials", gin.H{"author": "Bau GmbH", "text": "Top Service", "rating": 5}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		id := decode[models.Testimonial](t, w).ID

		w = env.do(t, httptest.NewRequest(http.MethodGet, "/api/testimonials", nil))
		assert.EqualValues(t, 1, decode[gin.H](t, w)["total"])

		w = env.admin(t, httptest.NewRequest(http.MethodDelete, "/api/admin/testimonials/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
		w = env.admin(t, jsonRequest(t, http.MethodPut, "/api/admin/testimonials/"+id, gin.H{"author": "x", "text": "y"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("locations validate products", func(t *testing.T) {
		w := env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/locations", gin.H{"name": "Depot", "productIds": []string{"p404"}}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("addons default to a one-off price", func(t *testing.T) {
		w := env.admin(t, jsonRequest(t, http.MethodPost, "/api/admin/addons", gin.H{"name": "Endreinigung", "price": 49}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, models.PriceUnitOnce, decode[models.Addon](t, w).PriceUnit)

		w = env.do(t, httptest.NewRequest(http.MethodGet, "/api/configurator", nil))
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[struct {
			Settings models.ConfiguratorSettings `json:"settings"`
			Addons   []models.Addon              `json:"addons"`
		}](t, w)
		assert.True(t, got.Settings.Enabled)
		assert.Len(t, got.Addons, 2)
	})
}

func TestPages(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.do(t, httptest.NewRequest(http.MethodGet, "/api/pages/agb", nil)).Code)

	w := env.admin(t, jsonRequest(t, http.MethodPut, "/api/admin/pages/AGB", gin.H{"title": "AGB", "content": "…"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, httptest.NewRequest(http.MethodGet, "/api/pages/agb", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AGB", decode[models.Page](t, w).Title)

	w = env.admin(t, jsonRequest(t, http.MethodPut, "/api/admin/configurator", gin.H{"enabled": true, "minRentalDays": 10, "maxRentalDays": 2}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaAndBackfill(t *testing.T) {
	env := newTestEnv(t)

	t.Run("media lifecycle", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/api/admin/media", nil,
			formFile{field: "file", name: "logo.png", contentType: "application/octet-stream", content: pngBytes},
		)
		w := env.admin(t, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		item := decode[models.MediaItem](t, w)
		assert.Equal(t, "image/png", item.MimeType)

		w = env.admin(t, httptest.NewRequest(http.MethodGet, "/api/admin/media", nil))
		assert.EqualValues(t, 1, decode[gin.H](t, w)["total"])

		w = env.admin(t, httptest.NewRequest(http.MethodDelete, "/api/admin/media/"+item.ID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.load(t).Media)
	})

	t.Run("backfill links legacy products", func(t *testing.T) {
		w := env.admin(t, httptest.NewRequest(http.MethodPost, "/api/admin/maintenance/backfill", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 3, decode[gin.H](t, w)["linked"])

		doc := env.load(t)
		_, p := doc.ProductByID("p2")
		assert.Equal(t, "cat-gab", p.CategoryID)
		_, c := doc.CategoryByID("cat-gab")
		assert.Equal(t, 1, c.Count)
	})
}
