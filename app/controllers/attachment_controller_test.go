package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"quill/app/models"
	"quill/app/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttachmentFixture(t *testing.T) (*AttachmentController, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := services.NewAttachmentService(dir, 1024, 3, zerolog.Nop())
	require.NoError(t, err)
	return NewAttachmentController(svc), dir
}

// multipartBody builds an images upload request body. Each entry is
// name -> content; the part's content type comes from the mime map.
func multipartBody(t *testing.T, files map[string][]byte, mimes map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		header.Set("Content-Type", mimes[name])
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func storedFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestAttachmentUpload(t *testing.T) {
	t.Run("stores a valid batch", func(t *testing.T) {
		controller, dir := newAttachmentFixture(t)
		body, contentType := multipartBody(t,
			map[string][]byte{"a.png": []byte("png-bytes"), "b.jpg": []byte("jpg-bytes")},
			map[string]string{"a.png": "image/png", "b.jpg": "image/jpeg"})

		req := httptest.NewRequest("POST", "/api/comments/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		controller.Upload(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var images []*models.CommentImage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
		require.Len(t, images, 2)
		assert.Contains(t, images[0].Path, "/uploads/comments/")
		assert.Equal(t, 2, storedFileCount(t, dir))
	})

	t.Run("one bad file rejects the whole batch", func(t *testing.T) {
		controller, dir := newAttachmentFixture(t)
		body, contentType := multipartBody(t,
			map[string][]byte{"ok.png": []byte("fine"), "evil.txt": []byte("nope")},
			map[string]string{"ok.png": "image/png", "evil.txt": "text/plain"})

		req := httptest.NewRequest("POST", "/api/comments/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		controller.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, storedFileCount(t, dir), "nothing may be persisted")
	})

	t.Run("more files than the cap is rejected", func(t *testing.T) {
		controller, dir := newAttachmentFixture(t)
		files := map[string][]byte{}
		mimes := map[string]string{}
		for _, name := range []string{"1.png", "2.png", "3.png", "4.png"} {
			files[name] = []byte("x")
			mimes[name] = "image/png"
		}
		body, contentType := multipartBody(t, files, mimes)

		req := httptest.NewRequest("POST", "/api/comments/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		controller.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, storedFileCount(t, dir))
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		controller, _ := newAttachmentFixture(t)
		body, contentType := multipartBody(t, nil, nil)

		req := httptest.NewRequest("POST", "/api/comments/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		controller.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttachmentDelete(t *testing.T) {
	controller, dir := newAttachmentFixture(t)

	body, contentType := multipartBody(t,
		map[string][]byte{"a.png": []byte("png-bytes")},
		map[string]string{"a.png": "image/png"})
	req := httptest.NewRequest("POST", "/api/comments/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	controller.Upload(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var images []*models.CommentImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
	require.Len(t, images, 1)

	deleteReq := func(filename string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(map[string]string{"filename": filename})
		req := httptest.NewRequest("POST", "/api/comments/images/delete", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		controller.Delete(w, req)
		return w
	}

	t.Run("removes the stored file", func(t *testing.T) {
		w := deleteReq(images[0].Filename)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, storedFileCount(t, dir))
	})

	t.Run("deleting again still succeeds", func(t *testing.T) {
		w := deleteReq(images[0].Filename)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing filename is rejected", func(t *testing.T) {
		w := deleteReq("")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
