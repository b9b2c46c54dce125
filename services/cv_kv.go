package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
)

const (
	cvMetaKey     = "cv_files"
	cvFilePrefix  = "file:"
	cvMaxFileSize = 10 << 20 // 10MB — store'a yazılan blob için üst sınır
)

// kvCVService, CVService'in key-value store implementasyonu.
// Dosya içeriği "file:<name>" key'inde, metadata listesi "cv_files" key'inde.
// İkisi ayrı yazılır — arada çöken bir process tutarsızlık bırakabilir,
// listede olup içeriği olmayan dosya 404 olarak görünür.
type kvCVService struct {
	store kv.Store
}

func newKVCVService(store kv.Store) *kvCVService {
	return &kvCVService{store: store}
}

func (s *kvCVService) List(ctx context.Context) ([]models.CVFile, error) {
	return s.readMeta(ctx)
}

func (s *kvCVService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.CVFile, error) {
	if !isPDF(header) {
		return nil, fmt.Errorf("%w: only PDF files are allowed", pkg.ErrBadRequest)
	}

	data, err := io.ReadAll(io.LimitReader(file, cvMaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > cvMaxFileSize {
		return nil, fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, cvMaxFileSize/(1<<20))
	}

	safeName := sanitizeFilename(header.Filename)
	if err := s.store.Set(ctx, cvFilePrefix+safeName, data, 0); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	cvFile := models.CVFile{
		Name:      safeName,
		URL:       "/cv/" + safeName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Size:      int64(len(data)),
	}

	files, err := s.readMeta(ctx)
	if err != nil {
		return nil, err
	}

	// Aynı isim varsa metadata'da da üzerine yazılır.
	updated := files[:0]
	for _, f := range files {
		if f.Name != safeName {
			updated = append(updated, f)
		}
	}
	updated = append([]models.CVFile{cvFile}, updated...)

	if err := s.writeMeta(ctx, updated); err != nil {
		return nil, err
	}
	return &cvFile, nil
}

func (s *kvCVService) Open(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.store.Get(ctx, cvFilePrefix+sanitizeFilename(filename))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, fmt.Errorf("%w: file %s", pkg.ErrNotFound, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

func (s *kvCVService) Delete(ctx context.Context, filename string) error {
	safeName := sanitizeFilename(filename)

	files, err := s.readMeta(ctx)
	if err != nil {
		return err
	}

	found := false
	updated := files[:0]
	for _, f := range files {
		if f.Name == safeName {
			found = true
			continue
		}
		updated = append(updated, f)
	}
	if !found {
		return fmt.Errorf("failed to delete file %s: not in metadata", filename)
	}

	if err := s.store.Delete(ctx, cvFilePrefix+safeName); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filename, err)
	}
	return s.writeMeta(ctx, updated)
}

func (s *kvCVService) readMeta(ctx context.Context) ([]models.CVFile, error) {
	data, err := s.store.Get(ctx, cvMetaKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.CVFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cv metadata: %w", err)
	}

	var files []models.CVFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to parse cv metadata: %w", err)
	}
	if files == nil {
		files = []models.CVFile{}
	}
	return files, nil
}

func (s *kvCVService) writeMeta(ctx context.Context, files []models.CVFile) error {
	data, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to serialize cv metadata: %w", err)
	}
	if err := s.store.Set(ctx, cvMetaKey, data, 0); err != nil {
		return fmt.Errorf("failed to write cv metadata: %w", err)
	}
	return nil
}
