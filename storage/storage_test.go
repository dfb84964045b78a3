package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStore_PutDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "uploads/")
	ctx := context.Background()

	url, err := s.Put(ctx, "media/a.txt", "text/plain", strings.NewReader("hallo"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/media/a.txt", url)

	raw, err := os.ReadFile(filepath.Join(dir, "media", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hallo", string(raw))

	obj, err := s.ObjectName(url)
	require.NoError(t, err)
	assert.Equal(t, "media/a.txt", obj)

	require.NoError(t, s.Delete(ctx, []string{obj, "media/missing.txt", ""}))
	_, err = os.Stat(filepath.Join(dir, "media", "a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads")
	_, err := s.Put(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidObjectName)

	err = s.Delete(context.Background(), []string{"../../etc/passwd"})
	assert.ErrorIs(t, err, ErrInvalidObjectName)

	_, err = s.ObjectName("https://cdn.example.de/x.jpg")
	assert.Error(t, err)
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads")

	item, err := UploadFile(context.Background(), s, "/media/", fileHeader(t, "Preisliste.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)

	assert.Equal(t, "Preisliste.PDF", item.FileName)
	assert.True(t, strings.HasPrefix(item.ObjectName, "media/"))
	assert.True(t, strings.HasSuffix(item.ObjectName, ".pdf"))
	assert.Equal(t, "/uploads/"+item.ObjectName, item.URL)
	assert.Equal(t, int64(8), item.SizeBytes)
	assert.NotEmpty(t, item.ID)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(item.ObjectName)))
	assert.NoError(t, err)

	assert.Equal(t, []string{item.ObjectName}, ObjectNamesFromURLs(s, []string{item.URL, "https://elsewhere/x"}))
}

func TestObjectNameFromGCSPublicURL(t *testing.T) {
	obj, err := ObjectNameFromGCSPublicURL("media", "https://storage.googleapis.com/media/products/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "products/x.jpg", obj)

	obj, err = ObjectNameFromGCSPublicURL("media", "https://media.storage.googleapis.com/products/y.jpg")
	require.NoError(t, err)
	assert.Equal(t, "products/y.jpg", obj)

	_, err = ObjectNameFromGCSPublicURL("media", "https://storage.googleapis.com/other/x.jpg")
	assert.ErrorContains(t, err, "bucket mismatch")

	_, err = ObjectNameFromGCSPublicURL("media", "https://example.de/x.jpg")
	assert.Error(t, err)
}

func TestObjectNameFromR2URL(t *testing.T) {
	obj, err := objectNameFromR2URL("https://files.example.de", "media", "https://files.example.de/media/a/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a/b.jpg", obj)

	_, err = objectNameFromR2URL("https://files.example.de", "media", "https://other.de/media/a.jpg")
	assert.Error(t, err)
}
