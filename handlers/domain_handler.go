package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/services"
)

// DomainHandler, domain durum sorgusu ve cron tetikleyicisi.
type DomainHandler struct {
	domainService services.DomainService
	cronSecret    string
}

// NewDomainHandler, constructor.
func NewDomainHandler(domainService services.DomainService, cronSecret string) *DomainHandler {
	return &DomainHandler{
		domainService: domainService,
		cronSecret:    cronSecret,
	}
}

// Check — GET /api/admin/domains[?cache=false]
// Varsayılan olarak 24 saatlik cache'ten okur; ?cache=false taze sorgu zorlar.
func (h *DomainHandler) Check(w http.ResponseWriter, r *http.Request) {
	useCache := r.URL.Query().Get("cache") != "false"

	domains, cached, err := h.domainService.Check(r.Context(), useCache)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"domains": domains,
		"cached":  cached,
	})
}

// Cron — GET /api/cron/check-domains
// Dış zamanlayıcı (cron servisi) tarafından çağrılır, Bearer secret ister.
// Admin oturumu GEREKMEZ — bu endpoint gate'in korumalı yüzeyinin dışındadır.
func (h *DomainHandler) Cron(w http.ResponseWriter, r *http.Request) {
	if !h.cronAuthorized(r) {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	alerts, err := h.domainService.RunScheduledCheck(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":    "domain check completed",
		"alertsSent": alerts,
	})
}

func (h *DomainHandler) cronAuthorized(r *http.Request) bool {
	if h.cronSecret == "" {
		return false
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) == 1
}
