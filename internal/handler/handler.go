// Package handler implements the HTTP transport layer of the
// storefront API: checkout, the chat demo and the admin catalog.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/catalog"
	"github.com/qinzstore/storefront/internal/model"
	"github.com/qinzstore/storefront/internal/quota"
	"github.com/qinzstore/storefront/internal/tripay"
)

// checkoutGateway creates a hosted-checkout transaction for a
// purchase intent.
type checkoutGateway interface {
	CreateTransaction(ctx context.Context, intent model.PurchaseIntent) (tripay.CreateResult, error)
}

// completionClient forwards a transcript to the completion API.
type completionClient interface {
	Configured() bool
	Complete(ctx context.Context, messages []model.ChatTurn) (string, error)
}

// catalogStore reads and wholesale-replaces the product catalog.
type catalogStore interface {
	Products() ([]catalog.Product, error)
	Replace(products []catalog.Product) error
}

// Handler wires HTTP requests to the storefront services.
type Handler struct {
	checkout      checkoutGateway
	chat          completionClient
	quota         *quota.Codec
	store         catalogStore
	adminPassword string
}

// New returns a Handler configured with the given dependencies.
// It panics if any dependency is nil; an empty adminPassword keeps the
// admin endpoints permanently locked rather than open.
func New(checkout checkoutGateway, chat completionClient, quotaCodec *quota.Codec, store catalogStore, adminPassword string) *Handler {
	if checkout == nil {
		panic("handler.New: nil checkout gateway")
	}
	if chat == nil {
		panic("handler.New: nil completion client")
	}
	if quotaCodec == nil {
		panic("handler.New: nil quota codec")
	}
	if store == nil {
		panic("handler.New: nil catalog store")
	}
	return &Handler{
		checkout:      checkout,
		chat:          chat,
		quota:         quotaCodec,
		store:         store,
		adminPassword: adminPassword,
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/checkout", h.HandleCheckout)
	mux.HandleFunc("POST /api/chat-demo", h.HandleChatDemo)
	mux.HandleFunc("GET /api/products", h.HandleProducts)
	mux.HandleFunc("GET /api/admin/products", h.HandleAdminGet)
	mux.HandleFunc("POST /api/admin/products", h.HandleAdminReplace)
	mux.HandleFunc("PATCH /api/admin/products", h.HandleAdminEdit)
}

// writeJSON writes v as a JSON response with the given status code.
// The Content-Type is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError converts err into the structured JSON error body. The
// message of unclassified errors is not leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	resp := model.ErrorResponse{Error: "internal error"}
	var e *apperr.Error
	if errors.As(err, &e) {
		resp.Error = e.Message
		resp.Detail = e.Detail
	}
	writeJSON(w, apperr.HTTPStatus(err), resp)
}
