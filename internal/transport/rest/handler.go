// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	serrors "stockroom/internal/errors"
	"stockroom/internal/service"
	"stockroom/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the inventory service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(api chi.Router) {
		api.NotFound(h.NotFound)
		api.MethodNotAllowed(h.NotFound)

		api.Route("/products", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindByID)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
			})
		})
		api.Get("/stats", h.Stats)
		api.Get("/health", h.Health)
	})
	r.Get("/healthz", h.HealthCheck)
}

// List retrieves all products, filtered by the optional search query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	term := r.URL.Query().Get("search")

	mLogger.DebugContext(r.Context(), "Received request to list products", "search", term)
	list, err := h.service.Search(r.Context(), term)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, list, fmt.Sprintf("fetched %d products", len(list)))
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, found, "")
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	draft, ok := h.decodeDraft(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create product", "name", draft.Name)
	created, err := h.service.Create(r.Context(), *draft)
	if err != nil {
		if errors.Is(err, serrors.ErrDuplicateName) {
			mLogger.WarnContext(r.Context(), "Duplicate product name", "name", draft.Name)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Product name already exists")
			return
		}
		if errors.Is(err, serrors.ErrMissingFields) {
			mLogger.WarnContext(r.Context(), "Incomplete product draft", "name", draft.Name)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to save product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", slog.Int64("ID", created.ID))
	web.RespondData(w, mLogger, http.StatusCreated, created, "product created successfully")
}

// Update handles replacing the mutable fields of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	draft, ok := h.decodeDraft(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	updated, err := h.service.Update(r.Context(), id, *draft)
	if err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		if errors.Is(err, serrors.ErrDuplicateName) {
			mLogger.WarnContext(r.Context(), "Duplicate product name on update", "ID", id, "name", draft.Name)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Product name already exists")
			return
		}
		if errors.Is(err, serrors.ErrMissingFields) {
			mLogger.WarnContext(r.Context(), "Incomplete product draft on update", "ID", id)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", slog.Int64("ID", updated.ID))
	web.RespondData(w, mLogger, http.StatusOK, updated, "product updated successfully")
}

// Delete removes a product by its ID and returns the removed record.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	removed, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for delete", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", slog.Int64("ID", removed.ID))
	web.RespondData(w, mLogger, http.StatusOK, removed, "product deleted successfully")
}

// Stats computes the aggregate statistics report.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error computing statistics", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	web.RespondData(w, mLogger, http.StatusOK, stats, "")
}

// Health reports service availability in the envelope shape. The browser
// client polls it to decide connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	web.RespondData(w, h.loggerWithReqID(r), http.StatusOK, map[string]string{"status": "ok"}, "")
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NotFound answers unknown API routes with a JSON envelope instead of the
// default plain-text body.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	web.RespondError(w, h.loggerWithReqID(r), http.StatusNotFound, "Resource not found")
}

// decodeDraft decodes, normalizes and validates a product draft from the
// request body. On failure it writes the error response and returns false.
func (h *Handler) decodeDraft(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*service.ProductDraft, bool) {
	var draft service.ProductDraft
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	draft.Normalize()

	if err := h.validate.Struct(draft); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "gt", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondValidationErrors(w, mLogger, errorResponse)
			return nil, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &draft, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
