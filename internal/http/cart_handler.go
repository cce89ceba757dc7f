package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

type CartHandler struct {
	carts repository.CartRepository
}

func NewCartHandler(carts repository.CartRepository) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	entries, err := h.carts.ListByOwner(r.Context(), r.URL.Query().Get("uid"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list cart")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// AddToCart inserts a denormalized entry unless the caller already has one
// for the same item. The duplicate answer is a soft flag, not an error.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondUnauthorized(w)
		return
	}

	var entry domain.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if entry.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "itemId is required")
		return
	}
	// The entry belongs to the verified caller whatever the body says.
	entry.UID = claims.UID

	exists, err := h.carts.ExistsForOwner(r.Context(), entry.UID, entry.ItemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to check cart")
		return
	}
	if exists {
		respondJSON(w, http.StatusOK, map[string]bool{"exist": true})
		return
	}

	result, err := h.carts.Insert(r.Context(), &entry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add to cart")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a valid object id")
		return
	}

	result, err := h.carts.DeleteByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove cart item")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
