package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
	"github.com/MehediHasan95/tasty-pizza-server/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
	verifier service.CallbackVerifier
}

func NewPaymentHandler(payments *service.PaymentService, verifier service.CallbackVerifier) *PaymentHandler {
	return &PaymentHandler{payments: payments, verifier: verifier}
}

// CreateIntent persists the pending order, opens the gateway session and
// hands the hosted page URL back to the frontend.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var info service.CheckoutInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// The order belongs to the verified caller; the uid query parameter was
	// already matched by the ownership middleware.
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondUnauthorized(w)
		return
	}
	info.UID = claims.UID

	if len(info.Carts) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "cart snapshot is empty")
		return
	}

	url, err := h.payments.CreateIntent(r.Context(), info)
	if err != nil {
		if errors.Is(err, service.ErrGatewayUnavailable) {
			respondError(w, http.StatusBadGateway, "gateway_error", "payment gateway unavailable")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create payment intent")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// PaymentSuccess is the gateway callback. The posted form must carry a
// valid verify_sign; unverifiable callbacks mutate nothing.
func (h *PaymentHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tran_id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}
	if !h.verifier.VerifyIPN(r.PostForm) {
		respondForbidden(w)
		return
	}

	err := h.payments.ConfirmPayment(r.Context(), tranID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrAlreadyPaid):
		// Replayed callback: redirect the browser, touch nothing.
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "unknown transaction id")
		return
	default:
		log.Printf("payment confirm failed for %s: %v", tranID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to confirm payment")
		return
	}

	http.Redirect(w, r, h.payments.SuccessRedirectURL(tranID), http.StatusSeeOther)
}

// CancelPayment serves both the fail and cancel callbacks; the pending
// order stays as-is.
func (h *PaymentHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.payments.CancelRedirectURL(), http.StatusSeeOther)
}
