package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	catalog "bazaar/internal/service/catalog/domain"
	"bazaar/internal/service/listing/application"
	"bazaar/internal/service/listing/domain"
)

const serviceName = "listing-service"

// ListingHandler 封装了商品条目服务的 HTTP 处理器
type ListingHandler struct {
	service *application.ListingService
}

// NewListingHandler 创建一个新的 HTTP 处理器实例
func NewListingHandler(service *application.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *ListingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/listings/create", h.createHandler)
	mux.HandleFunc("/listings/get", h.getHandler)
	mux.HandleFunc("/listings/update", h.updateHandler)
	mux.HandleFunc("/listings/delete", h.deleteHandler)
}

func (h *ListingHandler) createHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.CreateListing")
	defer span.End()

	var req application.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.service.Create(ctx, &req)
	if err != nil {
		span.RecordError(err)
		writeListingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(application.View(listing))
}

func (h *ListingHandler) getHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	listing, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeListingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(application.View(listing))
}

func (h *ListingHandler) updateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.UpdateListing")
	defer span.End()

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req application.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	listing, err := h.service.Update(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		writeListingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(application.View(listing))
}

func (h *ListingHandler) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeListingError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeListingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrFactoryNotRegistered), errors.Is(err, catalog.ErrInvalidAttributes):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
