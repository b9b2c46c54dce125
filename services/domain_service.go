package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg/email"
)

const (
	domainCachePrefix = "domain_status_"
	domainLastCheck   = "domain_last_check"
	domainCacheTTL    = 24 * time.Hour
)

// rdapServers, TLD başına RDAP endpoint'leri. Listede olmayan TLD'ler
// rdap.org redirector'ına düşer.
var rdapServers = map[string]string{
	"com": "https://rdap.verisign.com/com/v1/domain/",
	"net": "https://rdap.verisign.com/net/v1/domain/",
	"org": "https://rdap.org/domain/",
}

const (
	rdapFallbackBase = "https://rdap.org/domain/"
	dnsResolveURL    = "https://dns.google/resolve"
)

// DomainService, domain kayıt süresi takibi.
//
// Sorgu zinciri: RDAP → (başarısızsa) DNS-over-HTTPS fallback → error durumu.
// Sonuçlar domain başına 24 saat store'da cache'lenir; admin endpoint'i ve
// cron job aynı cache'i görür. Bu servis resident bir scheduler DEĞİLDİR —
// periyodik kontrol, dışarıdan cron endpoint'ine atılan tek bir HTTP isteğidir.
type DomainService interface {
	// Check, tüm domain'lerin durumunu döner. useCache true ve HER domain
	// cache'teyse store'dan okur (ikinci dönüş değeri true); değilse taze
	// sorgu yapıp cache'i yeniler.
	Check(ctx context.Context, useCache bool) ([]models.DomainStatus, bool, error)

	// RunScheduledCheck, taze sorgu yapar ve eşiğe giren her domain için
	// alert emaili gönderir. Gönderilen alert sayısını döner.
	RunScheduledCheck(ctx context.Context) (int, error)
}

type domainService struct {
	store   kv.Store
	sender  email.EmailSender // nil ise mail gönderimi devre dışı
	domains []string
	client  *http.Client
}

// NewDomainService, constructor. sender nil olabilir (RESEND_API_KEY yoksa).
func NewDomainService(store kv.Store, sender email.EmailSender, domains []string) DomainService {
	return &domainService{
		store:   store,
		sender:  sender,
		domains: domains,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *domainService) Check(ctx context.Context, useCache bool) ([]models.DomainStatus, bool, error) {
	if useCache {
		cached, ok := s.readCache(ctx)
		if ok {
			return cached, true, nil
		}
	}

	results := s.checkAll(ctx)
	s.writeCache(ctx, results)
	return results, false, nil
}

func (s *domainService) RunScheduledCheck(ctx context.Context) (int, error) {
	results := s.checkAll(ctx)
	s.writeCache(ctx, results)

	alerts := 0
	if s.sender == nil {
		return 0, nil
	}

	for _, result := range results {
		if result.Status == "error" {
			continue
		}

		days := -1
		if result.DaysRemaining != nil {
			days = *result.DaysRemaining
		}

		// Eşik dışındaysa SendDomainAlert sessizce no-op döner.
		if result.Status != "available" && (days < 0 || days > 30) {
			continue
		}

		if err := s.sender.SendDomainAlert(ctx, result.Domain, result.Status, days); err != nil {
			log.Printf("[domain] alert mail failed for %s: %v", result.Domain, err)
			continue
		}
		alerts++
	}

	return alerts, nil
}

// ─── Sorgu Zinciri ───

func (s *domainService) checkAll(ctx context.Context) []models.DomainStatus {
	results := make([]models.DomainStatus, 0, len(s.domains))
	for _, domain := range s.domains {
		results = append(results, s.checkDomain(ctx, domain))
	}
	return results
}

func (s *domainService) checkDomain(ctx context.Context, domain string) models.DomainStatus {
	status, err := s.checkRDAP(ctx, domain)
	if err == nil {
		return status
	}
	log.Printf("[domain] RDAP failed for %s, trying DNS fallback: %v", domain, err)
	return s.checkDNSFallback(ctx, domain)
}

// rdapResponse, RDAP yanıtının bu servisin okuduğu alt kümesi.
type rdapResponse struct {
	Events []struct {
		EventAction string `json:"eventAction"`
		EventDate   string `json:"eventDate"`
	} `json:"events"`
	Status      []string `json:"status"`
	Nameservers []struct {
		LdhName string `json:"ldhName"`
	} `json:"nameservers"`
	Entities []struct {
		Roles      []string        `json:"roles"`
		VCardArray json.RawMessage `json:"vcardArray"`
	} `json:"entities"`
}

func (s *domainService) checkRDAP(ctx context.Context, domain string) (models.DomainStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rdapURL(domain), nil)
	if err != nil {
		return models.DomainStatus{}, err
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.DomainStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DomainStatus{}, fmt.Errorf("rdap returned status %d", resp.StatusCode)
	}

	var data rdapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.DomainStatus{}, err
	}

	result := models.DomainStatus{
		Domain:      domain,
		Status:      "unknown",
		StatusCodes: data.Status,
		Registrar:   "Unknown",
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Source:      "RDAP",
	}

	for _, event := range data.Events {
		switch event.EventAction {
		case "registration":
			result.RegistrationDate = event.EventDate
		case "expiration":
			result.ExpirationDate = event.EventDate
		case "last changed":
			result.LastUpdate = event.EventDate
		}
	}

	isActive, isExpired := false, false
	for _, st := range data.Status {
		if strings.Contains(st, "active") || strings.Contains(st, "ok") {
			isActive = true
		}
		if strings.Contains(st, "expired") {
			isExpired = true
		}
	}
	switch {
	case isExpired:
		result.Status = "expired"
	case isActive:
		result.Status = "active"
	}

	for _, ns := range data.Nameservers {
		result.Nameservers = append(result.Nameservers, ns.LdhName)
	}

	for _, entity := range data.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" {
				if name := registrarName(entity.VCardArray); name != "" {
					result.Registrar = name
				}
			}
		}
	}

	if result.ExpirationDate != "" {
		if expires, err := time.Parse(time.RFC3339, result.ExpirationDate); err == nil {
			days := int(time.Until(expires).Hours() / 24)
			result.DaysRemaining = &days
		}
	}

	return result, nil
}

// checkDNSFallback, RDAP'a ulaşılamadığında en azından domain'in hâlâ
// resolve olup olmadığını söyler. Expiry bilgisi veremez.
func (s *domainService) checkDNSFallback(ctx context.Context, domain string) models.DomainStatus {
	result := models.DomainStatus{
		Domain:      domain,
		Status:      "error",
		Registrar:   "Unknown (DNS Fallback)",
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Source:      "DNS Fallback",
		Error:       "RDAP data unavailable",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		dnsResolveURL+"?name="+domain+"&type=A", nil)
	if err != nil {
		result.Source = "Error"
		result.Error = err.Error()
		return result
	}

	resp, err := s.client.Do(req)
	if err != nil {
		result.Source = "Error"
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	var dnsData struct {
		Answer []json.RawMessage `json:"Answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&dnsData); err != nil {
		result.Source = "Error"
		result.Error = err.Error()
		return result
	}

	if len(dnsData.Answer) > 0 {
		result.Status = "active"
	} else {
		result.Status = "available"
	}
	return result
}

// ─── Cache ───

func (s *domainService) readCache(ctx context.Context) ([]models.DomainStatus, bool) {
	results := make([]models.DomainStatus, 0, len(s.domains))
	for _, domain := range s.domains {
		data, err := s.store.Get(ctx, domainCachePrefix+domain)
		if errors.Is(err, kv.ErrNotFound) {
			// Tek bir domain bile cache'te yoksa hepsi taze sorgulanır —
			// yarısı bayat yarısı taze karışık sonuç dönmek yanıltıcı olur.
			return nil, false
		}
		if err != nil {
			return nil, false
		}

		var status models.DomainStatus
		if err := json.Unmarshal(data, &status); err != nil {
			return nil, false
		}
		results = append(results, status)
	}
	return results, true
}

func (s *domainService) writeCache(ctx context.Context, results []models.DomainStatus) {
	for _, result := range results {
		data, err := json.Marshal(result)
		if err != nil {
			continue
		}
		if err := s.store.Set(ctx, domainCachePrefix+result.Domain, data, domainCacheTTL); err != nil {
			log.Printf("[domain] failed to cache status for %s: %v", result.Domain, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.store.Set(ctx, domainLastCheck, []byte(now), 0); err != nil {
		log.Printf("[domain] failed to update last check timestamp: %v", err)
	}
}

// ─── Helpers ───

func rdapURL(domain string) string {
	parts := strings.Split(domain, ".")
	tld := strings.ToLower(parts[len(parts)-1])
	if base, ok := rdapServers[tld]; ok {
		return base + domain
	}
	return rdapFallbackBase + domain
}

// registrarName, RDAP entity'sinin jCard array'inden "fn" alanını söker.
// jCard formatı: ["vcard", [["version",{},"text","4.0"],["fn",{},"text","Ad"]]]
func registrarName(vcard json.RawMessage) string {
	if len(vcard) == 0 {
		return ""
	}

	var outer []json.RawMessage
	if err := json.Unmarshal(vcard, &outer); err != nil || len(outer) < 2 {
		return ""
	}

	var props [][]json.RawMessage
	if err := json.Unmarshal(outer[1], &props); err != nil {
		return ""
	}

	for _, prop := range props {
		if len(prop) < 4 {
			continue
		}
		var name string
		if err := json.Unmarshal(prop[0], &name); err != nil || name != "fn" {
			continue
		}
		var value string
		if err := json.Unmarshal(prop[3], &value); err == nil {
			return value
		}
	}
	return ""
}
