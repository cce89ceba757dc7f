package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MehediHasan95/tasty-pizza-server/internal/auth"
	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/identity"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

type UserHandler struct {
	users    repository.UserRepository
	tokens   *auth.TokenService
	identity identity.AccountDeleter
}

func NewUserHandler(users repository.UserRepository, tokens *auth.TokenService, id identity.AccountDeleter) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, identity: id}
}

// IssueToken signs whatever claim set the frontend posts after sign-in.
func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.tokens.Issue(payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	user, err := h.users.FindByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to look up role")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"role": user.Role})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// CreateUser inserts a profile on first sign-in. A repeated sign-in for the
// same uid is answered with the matched flag and no insert.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if user.UID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "uid is required")
		return
	}

	_, err := h.users.FindByUID(r.Context(), user.UID)
	if err == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"matched": true})
		return
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to check user")
		return
	}

	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}

	result, err := h.users.Insert(r.Context(), &user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")

	user, err := h.users.FindByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
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
	// uid and role are not patchable through profile edit.
	delete(fields, "_id")
	delete(fields, "uid")
	delete(fields, "role")

	result, err := h.users.UpdateByID(r.Context(), id, fields)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeleteUser removes the identity-provider account first, then the store
// record. fid is the provider's account id, mid the store record id.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	fid := r.URL.Query().Get("fid")
	mid, err := primitive.ObjectIDFromHex(r.URL.Query().Get("mid"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "mid must be a valid object id")
		return
	}

	if err := h.identity.DeleteAccount(r.Context(), fid); err != nil {
		respondError(w, http.StatusBadGateway, "identity_error", "failed to delete identity account")
		return
	}

	result, err := h.users.DeleteByID(r.Context(), mid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete user record")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
