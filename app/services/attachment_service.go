package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quill/app/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AttachmentService stores comment images uploaded ahead of comment
// submission and binds them to comments at creation time. Uploads and
// deletions are independent of the comment lifecycle; files referenced
// by a never-submitted comment are left for an external sweep.
type AttachmentService struct {
	dir          string
	maxFileSize  int64
	maxPerUpload int
	log          zerolog.Logger
}

// NewAttachmentService creates an AttachmentService rooted at dir,
// creating the directory if needed.
func NewAttachmentService(dir string, maxFileSize int64, maxPerUpload int, log zerolog.Logger) (*AttachmentService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &AttachmentService{
		dir:          dir,
		maxFileSize:  maxFileSize,
		maxPerUpload: maxPerUpload,
		log:          log,
	}, nil
}

// MaxPerUpload is the most files accepted in one upload request.
func (s *AttachmentService) MaxPerUpload() int {
	return s.maxPerUpload
}

// Check validates one candidate file without persisting it, so a
// multi-file upload can be rejected as a whole before any byte is
// written.
func (s *AttachmentService) Check(size int64, originalName, mimeType string) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("%w: only image files are allowed, got %s", ErrValidation, mimeType)
	}
	if size > s.maxFileSize {
		return fmt.Errorf("%w: file %s exceeds the %d byte limit", ErrValidation, originalName, s.maxFileSize)
	}
	if size == 0 {
		return fmt.Errorf("%w: file %s is empty", ErrValidation, originalName)
	}
	return nil
}

// Upload validates and persists one image, returning a reference
// usable in a comment's images field. Validation happens before any
// byte is written; a rejected file leaves no trace in the store.
func (s *AttachmentService) Upload(data []byte, originalName, mimeType string) (*models.CommentImage, error) {
	if err := s.Check(int64(len(data)), originalName, mimeType); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := fmt.Sprintf("comment-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	if err := os.WriteFile(filepath.Join(s.dir, storedName), data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Debug().Str("file", storedName).Int("size", len(data)).Msg("stored comment image")

	return &models.CommentImage{
		Filename:     storedName,
		OriginalName: originalName,
		Path:         "/uploads/comments/" + storedName,
		Size:         int64(len(data)),
		MimeType:     mimeType,
	}, nil
}

// Release deletes a stored image. Best-effort cleanup for images
// removed from an in-progress comment; a missing file is not an error.
func (s *AttachmentService) Release(storedName string) bool {
	name := filepath.Base(storedName)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("file", name).Msg("failed to release comment image")
		return false
	}
	return true
}

// Resolve binds previously uploaded image references to a comment at
// submission time. Every reference must point at a file that exists in
// the store, and a comment may not carry more than the image cap; the
// cap is authoritative here regardless of what the client tracked.
func (s *AttachmentService) Resolve(refs []models.CommentImage) ([]models.CommentImage, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	if len(refs) > models.MaxCommentImages {
		return nil, fmt.Errorf("%w: at most %d images per comment", ErrValidation, models.MaxCommentImages)
	}

	resolved := make([]models.CommentImage, 0, len(refs))
	for _, ref := range refs {
		name := filepath.Base(ref.Filename)
		info, err := os.Stat(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: image %s is not in the attachment store", ErrValidation, name)
		}

		ref.Filename = name
		ref.Path = "/uploads/comments/" + name
		ref.Size = info.Size()
		resolved = append(resolved, ref)
	}
	return resolved, nil
}
