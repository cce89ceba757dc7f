package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
	"github.com/MehediHasan95/tasty-pizza-server/internal/service"
)

type ItemHandler struct {
	catalog *service.CatalogService
}

func NewItemHandler(catalog *service.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

// ListItems serves the public catalog: optional category filter, optional
// result cap. Category "all" means no filter.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	items, err := h.catalog.ListItems(r.Context(), category, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) ItemDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	item, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) AdminListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context(), "all", 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if item.Name == "" || item.Category == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name and category are required")
		return
	}

	result, err := h.catalog.CreateItem(r.Context(), &item)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create item")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// UpdateItem performs a partial merge of the supplied fields.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	delete(fields, "_id")

	result, err := h.catalog.UpdateItem(r.Context(), id, fields)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update item")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	result, err := h.catalog.DeleteItem(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete item")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
