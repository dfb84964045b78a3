package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/storage"
	"github.com/princinho/rentalbackend/utils"
	"github.com/sirupsen/logrus"
)

// App carries the collaborators every handler needs.
type App struct {
	Store     database.Store
	Blobs     storage.BlobStore
	Resolver  *catalog.Resolver
	Validator *utils.FileValidator
	Log       *logrus.Logger
	Cfg       *config.Config
}

// apiError is returned from inside a store update to abort it with a
// client-facing status.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(msg string) error {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func notFound(what string) error {
	return &apiError{status: http.StatusNotFound, message: what + " not found"}
}

func conflict(msg string) error {
	return &apiError{status: http.StatusConflict, message: msg}
}

// fail writes err to the response. Anything that is not an apiError is a
// store failure.
func (a *App) fail(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.status, gin.H{"error": ae.message})
		return
	}
	a.Log.WithError(err).WithField("path", c.FullPath()).Error("store operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// bindPayload reads a JSON body, or the JSON "data" field of a multipart
// form, and runs the binding validation on it.
func bindPayload(c *gin.Context, out any) error {
	if !isMultipart(c) {
		return c.ShouldBindJSON(out)
	}
	data := c.PostForm("data")
	if data == "" {
		return errors.New("missing data field")
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return errors.New("invalid data json: " + err.Error())
	}
	return binding.Validator.ValidateStruct(out)
}

func formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	if !isMultipart(c) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

func (a *App) validateFiles(files []*multipart.FileHeader) error {
	for _, fh := range files {
		mime, err := a.Validator.ValidateFile(fh)
		if err != nil {
			return badRequest(fh.Filename + ": " + err.Error())
		}
		fh.Header.Set("Content-Type", mime)
	}
	return nil
}

// cleanupBlobs removes uploaded objects after a failed write.
func (a *App) cleanupBlobs(c *gin.Context, objectNames []string) {
	if len(objectNames) == 0 {
		return
	}
	if err := a.Blobs.Delete(c.Request.Context(), objectNames); err != nil {
		a.Log.WithError(err).Warn("failed to delete uploaded objects")
	}
}
