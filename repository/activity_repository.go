package repository

import (
	"context"

	"github.com/kaankoc/portfolio/models"
)

// ActivityRepository, admin güvenlik log'ları için interface.
//
// Log'lar append-only'dir: her entry 7 gün TTL ile kendi key'inde saklanır
// ("log_<unixmilli>_<uuid>"). Entry'ler arası sıralama YAZMA sırasında
// garanti edilmez — okuma tarafı timestamp'e göre tersten sıralar.
// Log yazma hatası asıl işlemi (login, şifre değişimi) asla durdurmamalıdır;
// çağıran taraf hatayı loglayıp yoluna devam eder.
type ActivityRepository interface {
	Append(ctx context.Context, entry models.LogEntry) error

	// Recent, en yeni 50 log entry'sini timestamp'e göre azalan sırada döner.
	Recent(ctx context.Context) ([]models.LogEntry, error)
}
