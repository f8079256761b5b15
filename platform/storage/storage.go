package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"project_analysis_backend/config"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"
	"project_analysis_backend/utils"
	"time"

	"github.com/google/uuid"
)

// Service stages uploads on local disk until the pipeline has read them.
type Service struct {
	Dir              string
	FileKeyGenerator *utils.FileKeyGenerator
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	ss := &Service{
		Dir:              cfg.UploadDir,
		FileKeyGenerator: utils.NewFileKeyGenerator(),
	}
	if err := ss.EnsureDirExists(); err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}
	logging.Logger.Info("Upload staging initialized", "dir", ss.Dir)
	return ss, nil
}

func (ss *Service) EnsureDirExists() error {
	if err := os.MkdirAll(ss.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create upload dir %s: %w", ss.Dir, err)
	}
	return nil
}

// SaveMultipart writes one uploaded part into the staging dir.
func (ss *Service) SaveMultipart(fh *multipart.FileHeader) (models.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return models.UploadedFile{}, &models.TransportError{Op: "open upload " + fh.Filename, Err: err}
	}
	defer src.Close()

	file, err := ss.write(fh.Filename, src)
	if err != nil {
		return models.UploadedFile{}, err
	}
	file.ContentType = fh.Header.Get("Content-Type")
	return file, nil
}

// StageLocal copies a file from disk into the staging dir so the pipeline can
// delete its copy without touching the original.
func (ss *Service) StageLocal(path string) (models.UploadedFile, error) {
	src, err := os.Open(path)
	if err != nil {
		return models.UploadedFile{}, &models.TransportError{Op: "open " + path, Err: err}
	}
	defer src.Close()
	return ss.write(filepath.Base(path), src)
}

func (ss *Service) write(originalName string, src io.Reader) (models.UploadedFile, error) {
	dst := filepath.Join(ss.Dir, ss.FileKeyGenerator.GenerateFileKey(originalName))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return models.UploadedFile{}, &models.TransportError{Op: "stage " + originalName, Err: err}
	}
	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return models.UploadedFile{}, &models.TransportError{Op: "stage " + originalName, Err: err}
	}
	return models.UploadedFile{
		ID:           uuid.NewString(),
		OriginalName: originalName,
		Path:         dst,
		Size:         n,
		ReceivedAt:   time.Now(),
	}, nil
}

// Remove deletes staged files, ignoring ones already gone.
func (ss *Service) Remove(files ...models.UploadedFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			logging.Logger.Warn("failed to remove staged file", "path", f.Path, "error", err)
		}
	}
}
