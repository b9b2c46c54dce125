package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/kaankoc/portfolio/config"
	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
)

// CVService, CV dosyalarının yüklenmesi, listelenmesi ve servis edilmesi.
//
// İki backend vardır ve birbirinin ALTERNATİFİDİR, koordine edilmez:
//   - fs: dosyalar bir disk dizininde yaşar, metadata readdir+stat'tan türetilir
//   - kv: içerik "file:<name>" blob'larında, metadata "cv_files" listesinde
//
// İş mantığı hangi backend'in arkada olduğunu bilmez; seçim config ile
// wire-up anında yapılır.
type CVService interface {
	List(ctx context.Context) ([]models.CVFile, error)

	// Upload, multipart dosyayı kaydeder. Sadece PDF kabul edilir,
	// dosya adı sanitize edilir; aynı isim varsa üzerine yazılır.
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.CVFile, error)

	// Open, dosya içeriğini döner. Yoksa pkg.ErrNotFound.
	Open(ctx context.Context, filename string) ([]byte, error)

	Delete(ctx context.Context, filename string) error
}

// NewCVService, config'e göre backend seçer.
func NewCVService(cfg config.CVConfig, store kv.Store) (CVService, error) {
	switch cfg.Backend {
	case "kv":
		return newKVCVService(store), nil
	case "fs":
		return newFSCVService(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown cv storage backend: %q", cfg.Backend)
	}
}

// sanitizeFilename, dosya adını güvenli hale getirir.
// Path traversal'ı keser: harf/rakam/nokta/tire dışındaki her karakter
// alt çizgi olur ("../../etc/passwd" → ".._.._etc_passwd").
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		default:
			return '_'
		}
	}, name)

	// Nokta tek başına zararsızdır (separator'lar zaten alt çizgi oldu),
	// ama sadece noktadan ibaret bir ad ("..", "...") dosya adı olamaz.
	if strings.Trim(name, ".") == "" {
		return "unnamed.pdf"
	}
	return name
}

// isPDF, multipart header'dan content type kontrolü yapar.
func isPDF(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])
	return mimeBase == "application/pdf"
}
