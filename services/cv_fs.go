package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
)

// fsCVService, CVService'in dosya sistemi implementasyonu.
// Metadata ayrıca saklanmaz — dizinin kendisi doğruluk kaynağıdır.
type fsCVService struct {
	dir string
}

func newFSCVService(dir string) (*fsCVService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cv directory: %w", err)
	}
	return &fsCVService{dir: dir}, nil
}

func (s *fsCVService) List(_ context.Context) ([]models.CVFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cv directory: %w", err)
	}

	files := make([]models.CVFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, models.CVFile{
			Name:      entry.Name(),
			URL:       "/cv/" + entry.Name(),
			CreatedAt: info.ModTime().UTC().Format(time.RFC3339),
			Size:      info.Size(),
		})
	}

	// En yeni en üstte.
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt > files[j].CreatedAt
	})

	return files, nil
}

func (s *fsCVService) Upload(_ context.Context, file multipart.File, header *multipart.FileHeader) (*models.CVFile, error) {
	if !isPDF(header) {
		return nil, fmt.Errorf("%w: only PDF files are allowed", pkg.ErrBadRequest)
	}

	safeName := sanitizeFilename(header.Filename)
	destPath := filepath.Join(s.dir, safeName)

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	size, err := io.Copy(dest, file)
	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.CVFile{
		Name:      safeName,
		URL:       "/cv/" + safeName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Size:      size,
	}, nil
}

func (s *fsCVService) Open(_ context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, sanitizeFilename(filename)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file %s", pkg.ErrNotFound, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, nil
}

func (s *fsCVService) Delete(_ context.Context, filename string) error {
	if err := os.Remove(filepath.Join(s.dir, sanitizeFilename(filename))); err != nil {
		// Olmayan dosyayı silmek de hatadır — admin paneli kullanıcıya
		// "silinemedi" gösterir, sessizce başarı dönmez.
		return fmt.Errorf("failed to delete file %s: %w", filename, err)
	}
	return nil
}
