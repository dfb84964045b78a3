package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/dto"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/storage"
	"github.com/princinho/rentalbackend/utils"
)

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays counts both the first and the last day.
func RentalDays(start, end time.Time) int {
	return int(day(end).Sub(day(start))/(24*time.Hour)) + 1
}

func validateInquiry(doc *models.Document, body *dto.CreateInquiryDTO) (*models.Product, error) {
	settings := doc.Settings()
	if !settings.Enabled {
		return nil, &apiError{status: http.StatusForbidden, message: "configurator is disabled"}
	}

	_, product := doc.ProductByID(body.ProductID)
	if product == nil {
		return nil, badRequest("product not found")
	}

	if body.StartDate.IsZero() || body.EndDate.IsZero() {
		return nil, badRequest("startDate and endDate are required")
	}
	if day(body.EndDate).Before(day(body.StartDate)) {
		return nil, badRequest("endDate must not be before startDate")
	}
	days := RentalDays(body.StartDate, body.EndDate)
	if settings.MinRentalDays > 0 && days < settings.MinRentalDays {
		return nil, badRequest("rental period is shorter than the minimum")
	}
	if settings.MaxRentalDays > 0 && days > settings.MaxRentalDays {
		return nil, badRequest("rental period exceeds the maximum")
	}

	for _, id := range body.AddonIDs {
		if doc.AddonByID(id) == nil {
			return nil, badRequest("addon not found: " + id)
		}
	}
	if body.Delivery {
		if !settings.DeliveryAvailable {
			return nil, badRequest("delivery is not available")
		}
		if strings.TrimSpace(body.DeliveryAddress) == "" {
			return nil, badRequest("deliveryAddress is required for delivery")
		}
	}
	return product, nil
}

// POST /api/inquiries
func (a *App) CreateInquiry() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateInquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		inquiry := models.Inquiry{
			ID:              utils.NewID(),
			FullName:        strings.TrimSpace(body.FullName),
			Email:           strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:           strings.TrimSpace(body.Phone),
			Company:         strings.TrimSpace(body.Company),
			ProductID:       body.ProductID,
			StartDate:       day(body.StartDate),
			EndDate:         day(body.EndDate),
			AddonIDs:        body.AddonIDs,
			Delivery:        body.Delivery,
			DeliveryAddress: strings.TrimSpace(body.DeliveryAddress),
			Message:         strings.TrimSpace(body.Message),
			Status:          models.InquiryStatusNew,
			Notes:           []models.InquiryNote{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if inquiry.AddonIDs == nil {
			inquiry.AddonIDs = []string{}
		}

		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			product, err := validateInquiry(doc, &body)
			if err != nil {
				return err
			}
			inquiry.ProductName = product.Name
			inquiry.RentalDays = RentalDays(body.StartDate, body.EndDate)
			doc.Inquiries = append(doc.Inquiries, inquiry)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		a.Log.WithField("inquiry", inquiry.ID).WithField("product", inquiry.ProductName).Info("Inquiry received")
		c.JSON(http.StatusCreated, gin.H{
			"id":      inquiry.ID,
			"message": "Inquiry received",
		})
	}
}

// GET /api/admin/inquiries, newest first.
func (a *App) GetInquiries() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}

		status := models.InquiryStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
		if status != "" && !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(c.Query("email")))
		q := strings.ToLower(strings.TrimSpace(c.Query("q")))

		items := make([]models.Inquiry, 0, len(doc.Inquiries))
		for _, inq := range doc.Inquiries {
			if status != "" && inq.Status != status {
				continue
			}
			if email != "" && inq.Email != email {
				continue
			}
			if q != "" &&
				!strings.Contains(strings.ToLower(inq.FullName), q) &&
				!strings.Contains(strings.ToLower(inq.ProductName), q) &&
				!strings.Contains(strings.ToLower(inq.Message), q) {
				continue
			}
			items = append(items, inq)
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": len(items),
		})
	}
}

func (a *App) GetInquiry() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := a.Store.Load(c.Request.Context())
		if err != nil {
			a.fail(c, err)
			return
		}
		_, inq := doc.InquiryByID(c.Param("id"))
		if inq == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusOK, inq)
	}
}

func (a *App) UpdateInquiryStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateInquiryStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status := models.InquiryStatus(strings.ToUpper(strings.TrimSpace(body.Status)))
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		var updated models.Inquiry
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			_, inq := doc.InquiryByID(c.Param("id"))
			if inq == nil {
				return notFound("inquiry")
			}
			now := time.Now().UTC()
			inq.Status = status
			inq.UpdatedAt = now
			if status == models.InquiryStatusAnswered {
				inq.AnsweredAt = &now
			}
			updated = *inq
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// POST /api/admin/inquiries/:id/notes
// Accepts JSON, or multipart with a "data" field and an optional "file".
func (a *App) AddInquiryNote() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.AddAdminNoteDTO
		if err := bindPayload(c, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		content := strings.TrimSpace(body.Content)
		if content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content cannot be empty"})
			return
		}

		files := formFiles(c, "file")
		if len(files) > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only one attachment allowed"})
			return
		}
		if err := a.validateFiles(files); err != nil {
			a.fail(c, err)
			return
		}

		id := c.Param("id")
		var attachment *models.MediaItem
		if len(files) == 1 {
			item, err := storage.UploadFile(c.Request.Context(), a.Blobs, "inquiries/"+id, files[0])
			if err != nil {
				a.Log.WithError(err).Error("attachment upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload attachment"})
				return
			}
			attachment = item
		}

		now := time.Now().UTC()
		note := models.InquiryNote{
			ID:          utils.NewID(),
			AuthorID:    c.GetString("userID"),
			AuthorEmail: c.GetString("email"),
			Content:     content,
			Attachment:  attachment,
			CreatedAt:   now,
		}

		var updated models.Inquiry
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			_, inq := doc.InquiryByID(id)
			if inq == nil {
				return notFound("inquiry")
			}
			inq.Notes = append(inq.Notes, note)
			if inq.Status == models.InquiryStatusNew {
				inq.Status = models.InquiryStatusInProgress
			}
			inq.UpdatedAt = now
			updated = *inq
			return nil
		})
		if err != nil {
			if attachment != nil {
				a.cleanupBlobs(c, []string{attachment.ObjectName})
			}
			a.fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, updated)
	}
}

func (a *App) DeleteInquiry() gin.HandlerFunc {
	return func(c *gin.Context) {
		var removed models.Inquiry
		err := database.Update(c.Request.Context(), a.Store, func(doc *models.Document) error {
			i, inq := doc.InquiryByID(c.Param("id"))
			if inq == nil {
				return notFound("inquiry")
			}
			removed = *inq
			doc.Inquiries = append(doc.Inquiries[:i], doc.Inquiries[i+1:]...)
			return nil
		})
		if err != nil {
			a.fail(c, err)
			return
		}

		var objects []string
		for _, n := range removed.Notes {
			if n.Attachment != nil {
				objects = append(objects, n.Attachment.ObjectName)
			}
		}
		a.cleanupBlobs(c, objects)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
