package pricing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/suessland/suessland-platform/internal/platform/httpx"
)

// Enqueuer schedules a background repricing run.
type Enqueuer interface {
	EnqueueBulkReprice(ctx context.Context, runID string, params Params) error
}

// Handler exposes the pricing API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enqueuer Enqueuer
}

// NewHandler builds a Handler instance. enqueuer may be nil; bulk
// reprice requests are rejected then.
func NewHandler(logger *slog.Logger, service *Service, enqueuer Enqueuer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, enqueuer: enqueuer}
}

// MountRoutes registers pricing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/preview", h.preview)
	r.Get("/products/{id}/quote", h.quote)
	r.Get("/rules", h.listRules)
	r.Post("/bulk-reprice", h.bulkReprice)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	breakdown := h.service.Preview(req.Params(), req.PurchaseCostPerBox, req.SliceCount, req.Overrides)
	httpx.JSON(w, http.StatusOK, breakdown)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product ID")
		return
	}

	q := r.URL.Query()
	companyID, _ := strconv.ParseInt(q.Get("company_id"), 10, 64)
	quantity, _ := strconv.Atoi(q.Get("quantity"))

	resolution, err := h.service.Quote(r.Context(), QuoteRequest{
		ProductID: productID,
		CompanyID: companyID,
		Channel:   Channel(q.Get("channel")),
		Quantity:  quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		case errors.Is(err, ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
		default:
			h.logger.Error("quote failed", "error", err, "product_id", productID)
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}
	httpx.JSON(w, http.StatusOK, resolution)
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context())
	if err != nil {
		h.logger.Error("list rules failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (h *Handler) bulkReprice(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "background worker not configured")
		return
	}

	var req BulkRepriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	runID := uuid.NewString()
	if err := h.enqueuer.EnqueueBulkReprice(r.Context(), runID, req.Params()); err != nil {
		h.logger.Error("enqueue bulk reprice failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusAccepted, map[string]string{"run_id": runID})
}
