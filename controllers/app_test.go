package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/models"
	"github.com/princinho/rentalbackend/storage"
	"github.com/princinho/rentalbackend/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "secret123"
)

// pngBytes is enough for content sniffing to report image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type testEnv struct {
	app    *App
	router *gin.Engine
	store  *database.FileStore
}

func init() {
	gin.SetMode(gin.TestMode)
}

func fixtureDocument() *models.Document {
	return &models.Document{
		Categories: []models.Category{
			{ID: "cat-arb", Name: "Arbeitsbühnen", Link: "/mieten/arbeitsbuehnen", Image: "/img/arb.jpg"},
			{ID: "cat-sch", Name: "Scherenbühnen", Link: "/mieten/scherenbuehnen", ParentCategory: "cat-arb", Image: "/img/sch.jpg"},
			{ID: "cat-gab", Name: "Gabelstapler"},
			{ID: "cat-mini", Name: "Minibagger", Link: "/mieten/minibagger"},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Scherenbühne 10 m", Slug: "scherenbuehne-10-m", Category: "Scherenbühnen", Price: 120},
			{ID: "p2", Name: "Gabelstapler 2,5 t", Slug: "gabelstapler-2-5-t", Category: "Gabelstapler", Price: 90},
			{ID: "p3", Name: "Minibagger 1,8 t", Slug: "minibagger-1-8-t", Category: "Minibagger", Price: 110},
		},
		Addons: []models.Addon{
			{ID: "addon-ins", Name: "Haftungsbegrenzung", Price: 12, PriceUnit: models.PriceUnitDay},
		},
		Configurator: &models.ConfiguratorSettings{
			Enabled:           true,
			MinRentalDays:     1,
			MaxRentalDays:     30,
			DeliveryAvailable: true,
			DeliveryFee:       89,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := database.NewFileStore(filepath.Join(dir, "db.json"))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, fixtureDocument()))
	require.NoError(t, database.SeedAdminUser(ctx, store, testAdminEmail, testAdminPassword, logger))

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
		MaxUploadSizeMB: 1,
	}
	app := &App{
		Store:     store,
		Blobs:     storage.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads"),
		Resolver:  catalog.NewResolver(nil),
		Validator: utils.NewFileValidator([]string{".png", ".jpg"}, []string{"image/png", "image/jpeg"}, 1),
		Log:       logger,
		Cfg:       cfg,
	}
	r := gin.New()
	app.RegisterRoutes(r)
	return &testEnv{app: app, router: r, store: store}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field, name, contentType string
	content                  []byte
}

func multipartRequest(t *testing.T, method, target string, data any, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("data", string(raw)))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// login returns the session cookie of the seeded admin.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.do(t, jsonRequest(t, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func (e *testEnv) admin(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.AddCookie(e.login(t))
	return e.do(t, req)
}

func (e *testEnv) load(t *testing.T) *models.Document {
	t.Helper()
	doc, err := e.store.Load(context.Background())
	require.NoError(t, err)
	return doc
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
