package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/i18n"
	"github.com/kaankoc/portfolio/services"
)

// cvUploadMemoryLimit, multipart parse sırasında bellekte tutulacak
// maksimum boyut — üstü geçici dosyaya taşar.
const cvUploadMemoryLimit = 10 << 20

// CVHandler, CV dosya yönetimi ve public servis endpoint'leri.
type CVHandler struct {
	cvService services.CVService
}

// NewCVHandler, constructor.
func NewCVHandler(cvService services.CVService) *CVHandler {
	return &CVHandler{cvService: cvService}
}

// List — GET /api/admin/cv
func (h *CVHandler) List(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))

	files, err := h.cvService.List(r.Context())
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusInternalServerError, localizer.T("cv.listFailed"))
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"files": files})
}

// Upload — POST /api/admin/cv (multipart/form-data, alan adı "file")
func (h *CVHandler) Upload(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))

	if err := r.ParseMultipartForm(cvUploadMemoryLimit); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("cv.noFile"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("cv.noFile"))
		return
	}
	defer file.Close()

	uploaded, err := h.cvService.Upload(r.Context(), file, header)
	if err != nil {
		if errors.Is(err, pkg.ErrBadRequest) {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("cv.pdfOnly"))
		} else {
			pkg.Error(w, err)
		}
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]any{
		"message": localizer.T("cv.uploaded"),
		"file":    uploaded,
	})
}

// Delete — DELETE /api/admin/cv?filename=...
func (h *CVHandler) Delete(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, localizer.T("cv.filenameRequired"))
		return
	}

	if err := h.cvService.Delete(r.Context(), filename); err != nil {
		pkg.ErrorWithMessage(w, http.StatusInternalServerError, localizer.T("cv.deleteFailed"))
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"message": localizer.T("cv.deleted")})
}

// Serve — GET /cv/{filename} (public)
// PDF'i inline gösterir — tarayıcı indirmek yerine viewer açar.
func (h *CVHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	data, err := h.cvService.Open(r.Context(), filename)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
