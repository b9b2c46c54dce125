package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/i18n"
	"github.com/kaankoc/portfolio/services"
)

// ContentHandler, içerik koleksiyonları ve iletişim mesajları endpoint'leri.
type ContentHandler struct {
	contentService services.ContentService
}

// NewContentHandler, constructor.
func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// List — GET /api/admin/{collection}
// Koleksiyonu envelope'suz düz JSON array olarak döner; admin formu ve
// public site array'i olduğu gibi tüketir. Hiç kayıt yoksa boş array.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	records, err := h.contentService.ListCollection(r.Context(), collection)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.Raw(w, http.StatusOK, records)
}

// Replace — POST /api/admin/{collection}
// Body'deki array koleksiyonun TAMAMININ yerine geçer. Kayıt şeması
// doğrulanmaz — editör ne gönderirse o saklanır.
func (h *ContentHandler) Replace(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")

	var records []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		pkg.Error(w, fmt.Errorf("%w: body must be a JSON array", pkg.ErrBadRequest))
		return
	}

	if err := h.contentService.ReplaceCollection(r.Context(), collection, records); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"message": "saved"})
}

// SubmitContact — POST /api/contact (public)
// Hata mesajları Accept-Language'e göre lokalize edilir.
func (h *ContentHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("contact.required"))
		return
	}

	msg, err := h.contentService.SubmitContact(r.Context(), &req)
	if err != nil {
		if errors.Is(err, pkg.ErrBadRequest) {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("contact.required"))
		} else {
			pkg.ErrorWithMessage(w, http.StatusInternalServerError, localizer.T("contact.saveFailed"))
		}
		return
	}

	pkg.Raw(w, http.StatusCreated, msg)
}

// ListMessages — GET /api/admin/messages
func (h *ContentHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contentService.ListMessages(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// DeleteMessage — DELETE /api/admin/messages?id=...
func (h *ContentHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := h.contentService.DeleteMessage(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"message": "deleted"})
}
