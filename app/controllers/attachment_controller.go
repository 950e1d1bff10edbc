package controllers

import (
	"io"
	"net/http"

	"quill/app/models"
	"quill/app/services"
)

// AttachmentController handles HTTP requests for comment image uploads
type AttachmentController struct {
	attachments *services.AttachmentService
}

// NewAttachmentController creates a new AttachmentController
func NewAttachmentController(attachments *services.AttachmentService) *AttachmentController {
	return &AttachmentController{attachments: attachments}
}

// Upload accepts a multipart batch of comment images. The whole batch
// is validated first; one bad file rejects everything and nothing is
// persisted.
func (ac *AttachmentController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		sendError(w, "invalid multipart request: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		sendError(w, "no images in request", http.StatusBadRequest)
		return
	}
	if len(files) > ac.attachments.MaxPerUpload() {
		sendError(w, "too many files in one upload", http.StatusBadRequest)
		return
	}

	for _, header := range files {
		if err := ac.attachments.Check(header.Size, header.Filename, header.Header.Get("Content-Type")); err != nil {
			sendServiceError(w, err)
			return
		}
	}

	stored := make([]*models.CommentImage, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			ac.releaseAll(stored)
			sendError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			ac.releaseAll(stored)
			sendError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		image, err := ac.attachments.Upload(data, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			ac.releaseAll(stored)
			sendServiceError(w, err)
			return
		}
		stored = append(stored, image)
	}

	sendJSON(w, http.StatusOK, stored)
}

// releaseAll rolls back already-stored files when a later one fails.
func (ac *AttachmentController) releaseAll(stored []*models.CommentImage) {
	for _, image := range stored {
		ac.attachments.Release(image.Filename)
	}
}

// Delete removes a pending upload by stored filename. Deleting a file
// that is already gone still succeeds.
func (ac *AttachmentController) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filename string `json:"filename"`
	}
	if err := decodeJSON(r, &body); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Filename == "" {
		sendError(w, "filename is required", http.StatusBadRequest)
		return
	}

	ac.attachments.Release(body.Filename)
	sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
