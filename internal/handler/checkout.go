package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/model"
)

// HandleCheckout accepts a purchase intent and relays the gateway's
// hosted-checkout URL. Validation failures never reach the gateway.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var intent model.PurchaseIntent
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&intent); err != nil {
		writeError(w, apperr.Validation("invalid JSON"))
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, apperr.Validation("invalid JSON"))
		return
	}

	if intent.ProductName == "" || intent.OptionLabel == "" || intent.Amount <= 0 {
		writeError(w, apperr.Validation("invalid payload: productName, optionLabel and a positive amount are required"))
		return
	}

	res, err := h.checkout.CreateTransaction(r.Context(), intent)
	if err != nil {
		writeError(w, err)
		return
	}

	// A 2xx gateway response without a usable URL is still relayed;
	// the caller must treat a null checkoutUrl as a failure.
	resp := model.CheckoutResponse{Raw: res.Raw}
	if res.CheckoutURL != "" {
		resp.CheckoutURL = &res.CheckoutURL
	}
	writeJSON(w, http.StatusOK, resp)
}
