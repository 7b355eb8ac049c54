package receipt

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/response"
)

// maxReceiptSize bounds uploads at 10 MiB
const maxReceiptSize = 10 << 20

// Handler handles HTTP requests for receipt scanning
type Handler struct {
	extractor Extractor
	log       *zap.Logger
}

// NewHandler creates a new receipt handler
func NewHandler(extractor Extractor, log *zap.Logger) *Handler {
	return &Handler{extractor: extractor, log: log}
}

// Routes returns the router for receipt endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/scan", h.Scan)

	return r
}

// Scan handles POST /receipts/scan
// @Summary      Scan a receipt
// @Description  Best-effort extraction of claim fields from an uploaded receipt; extraction failures yield empty fields, never an error
// @Tags         receipts
// @Accept       multipart/form-data
// @Produce      json
// @Param        receipt formData file true "Receipt image or PDF"
// @Success      200 {object} response.APIResponse{data=Fields}
// @Failure      400 {object} response.APIResponse
// @Router       /receipts/scan [post]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptSize)
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		response.BadRequest(w, "Invalid multipart request")
		return
	}

	file, _, err := r.FormFile("receipt")
	if err != nil {
		response.BadRequest(w, "Receipt file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read receipt file")
		return
	}

	fields, err := h.extractor.Extract(data)
	if err != nil {
		// Extraction is best effort: degrade to empty fields.
		h.log.Warn("receipt extraction failed", zap.Error(err))
		fields = &Fields{}
	}

	response.JSON(w, http.StatusOK, fields)
}
