package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/careerhub/jobportal/internal/filex"
	"github.com/careerhub/jobportal/internal/server/models"
	"github.com/google/uuid"
)

// maxMultipartMemory caps how much of a multipart body is buffered in memory
// before spilling to disk.
const maxMultipartMemory = 8 << 20

// stageUpload extracts the named multipart file part and writes it to the
// staging directory under a random name. It returns nil (no error) when the
// request simply has no such part; the caller decides whether that is
// acceptable.
func (h *Handler) stageUpload(r *http.Request, field string) (*models.StagedFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read multipart part %q: %w", field, err)
	}
	defer file.Close()

	dir, err := filex.EnsureSubDir(h.stagingDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	return &models.StagedFile{
		LocalPath:    path,
		SizeBytes:    size,
		OriginalName: header.Filename,
	}, nil
}

// discardStaged removes a staged file that was never consumed by an upload.
// The upload operation deletes the file itself, so by the time this runs the
// path usually no longer exists.
func (h *Handler) discardStaged(r *http.Request, sf *models.StagedFile) {
	if sf == nil {
		return
	}
	if err := os.Remove(sf.LocalPath); err != nil && !os.IsNotExist(err) {
		h.logger.Warn(r.Context(), "failed to discard staged file", "path", sf.LocalPath, "error", err)
	}
}
