package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/catalog"
)

// adminPasswordHeader carries the shared admin secret.
const adminPasswordHeader = "X-Admin-Password"

// authorized checks the admin password header. An unset server-side
// password locks the admin surface entirely; it never becomes an open
// gate.
func (h *Handler) authorized(r *http.Request) bool {
	if h.adminPassword == "" {
		return false
	}
	got := r.Header.Get(adminPasswordHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.adminPassword)) == 1
}

// HandleProducts serves the public, read-only catalog.
func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Products()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleAdminGet returns the full catalog for the admin editor.
func (h *Handler) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, apperr.Unauthorized())
		return
	}
	products, err := h.store.Products()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleAdminReplace overwrites the catalog wholesale. There is no
// partial update and no concurrency token; the last writer wins.
func (h *Handler) HandleAdminReplace(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, apperr.Unauthorized())
		return
	}

	var products []catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		writeError(w, apperr.Validation("body must be a JSON array of products"))
		return
	}
	// A literal null decodes without error but is not an array; letting
	// it through would silently erase the whole catalog.
	if products == nil {
		writeError(w, apperr.Validation("body must be a JSON array of products"))
		return
	}
	if err := h.store.Replace(products); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleAdminEdit applies an ordered batch of edit actions through the
// catalog reducer and stores the result. An invalid action rejects the
// whole batch, leaving the stored catalog untouched.
func (h *Handler) HandleAdminEdit(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, apperr.Unauthorized())
		return
	}

	var actions []catalog.Action
	if err := json.NewDecoder(r.Body).Decode(&actions); err != nil {
		writeError(w, apperr.Validation("body must be a JSON array of actions"))
		return
	}
	if len(actions) == 0 {
		writeError(w, apperr.Validation("at least one action is required"))
		return
	}

	products, err := h.store.Products()
	if err != nil {
		writeError(w, err)
		return
	}
	next, err := catalog.Apply(products, actions)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Replace(next); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}
