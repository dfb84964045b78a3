package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/storage"
)

func (a *App) GetMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		items := doc.Media
		if items == nil {
			items = []models.MediaItem{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

// POST /api/admin/media expects a multipart "file".
func (a *App) UploadMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}

		mime, err := a.Validator.ValidateFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fh.Header.Set("Content-Type", mime)

		item, err := storage.UploadFile(c.Request.Context(), a.Blobs, "media", fh)
		if err != nil {
			a.Log.WithError(err).Error("media upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
			return
		}

		err = database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			doc.Media = append(doc.Media, *item)
			return nil
		})
		if err != nil {
			a.cleanupBlobs(c, []string{item.ObjectName})
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// DeleteMedia removes the record first. A failing blob delete only leaves an
// orphaned object behind.
func (a *App) DeleteMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var removed models.MediaItem
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			for i := range doc.Media {
				if doc.Media[i].ID == id {
					removed = doc.Media[i]
					doc.Media = append(doc.Media[:i], doc.Media[i+1:]...)
					return nil
				}
			}
			return notFound("media item")
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		a.cleanupBlobs(c, []string{removed.ObjectName})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
