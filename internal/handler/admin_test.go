package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qinzstore/storefront/internal/catalog"
)

func adminRequest(t *testing.T, h *Handler, method, body, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if password != "" {
		req.Header.Set(adminPasswordHeader, password)
	}
	w := httptest.NewRecorder()
	switch method {
	case http.MethodGet:
		h.HandleAdminGet(w, req)
	case http.MethodPost:
		h.HandleAdminReplace(w, req)
	case http.MethodPatch:
		h.HandleAdminEdit(w, req)
	default:
		t.Fatalf("unsupported method %s", method)
	}
	return w
}

func testProducts() []catalog.Product {
	return []catalog.Product{{
		Name:     "Alight Motion",
		Options:  []catalog.Option{{Label: "30 Hari", DisplayPrice: "Rp15.000", Amount: 15000}},
		Features: []string{"Tanpa watermark"},
	}}
}

func TestAdmin_Unauthorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{name: "missing_header", password: ""},
		{name: "wrong_password", password: "guess"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _, _, _ := newTestHandler()
			for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch} {
				w := adminRequest(t, h, method, "[]", tt.password)
				if w.Code != http.StatusUnauthorized {
					t.Fatalf("%s: expected 401, got %d", method, w.Code)
				}
			}
		})
	}
}

// An unset server password must lock the admin surface, not open it.
func TestAdmin_UnsetServerPasswordLocks(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{}
	chat := &stubChat{configured: true}
	h := New(gw, chat, testCodec(), &memStore{}, "")

	w := adminRequest(t, h, http.MethodGet, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = adminRequest(t, h, http.MethodGet, "", "anything")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with any password, got %d", w.Code)
	}
}

func TestAdmin_GetReturnsCatalog(t *testing.T) {
	t.Parallel()

	h, _, _, store := newTestHandler()
	store.products = testProducts()

	w := adminRequest(t, h, http.MethodGet, "", testAdminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []catalog.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Alight Motion" {
		t.Fatalf("unexpected catalog: %+v", got)
	}
}

func TestAdmin_ReplaceRequiresArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"name":"not an array"}`},
		{name: "null", body: `null`},
		{name: "string", body: `"[]"`},
		{name: "invalid_json", body: `[{"name":`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _, _, store := newTestHandler()
			store.products = testProducts()

			w := adminRequest(t, h, http.MethodPost, tt.body, testAdminPassword)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if len(store.products) != 1 {
				t.Fatal("catalog must be untouched after a rejected replace")
			}
		})
	}
}

func TestAdmin_ReplaceWholesale(t *testing.T) {
	t.Parallel()

	h, _, _, store := newTestHandler()
	store.products = testProducts()

	w := adminRequest(t, h, http.MethodPost, `[{"name":"CapCut Pro","options":[{"label":"30 Hari","displayPrice":"Rp20.000","amount":20000}],"features":["Export 4K"]}]`, testAdminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out["ok"] {
		t.Fatalf("expected {ok:true}, got %v", out)
	}
	if len(store.products) != 1 || store.products[0].Name != "CapCut Pro" {
		t.Fatalf("catalog not replaced: %+v", store.products)
	}
}

func TestAdmin_EditAppliesActions(t *testing.T) {
	t.Parallel()

	h, _, _, store := newTestHandler()
	store.products = testProducts()

	body := `[{"type":"rename","index":0,"name":"Alight Motion Pro"},{"type":"set_stock","index":0,"stock":7}]`
	w := adminRequest(t, h, http.MethodPatch, body, testAdminPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []catalog.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got[0].Name != "Alight Motion Pro" || got[0].Stock != 7 {
		t.Fatalf("actions not applied: %+v", got[0])
	}
	if store.products[0].Name != "Alight Motion Pro" {
		t.Fatal("edited catalog not stored")
	}
}

func TestAdmin_EditInvalidActionLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	h, _, _, store := newTestHandler()
	store.products = testProducts()

	body := `[{"type":"rename","index":0,"name":"Changed"},{"type":"rename","index":9,"name":"x"}]`
	w := adminRequest(t, h, http.MethodPatch, body, testAdminPassword)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if store.products[0].Name != "Alight Motion" {
		t.Fatal("catalog must be untouched after a rejected batch")
	}
}

func TestAdmin_EditEmptyBatchRejected(t *testing.T) {
	t.Parallel()

	h, _, _, _ := newTestHandler()
	w := adminRequest(t, h, http.MethodPatch, `[]`, testAdminPassword)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestProducts_PublicRead(t *testing.T) {
	t.Parallel()

	h, _, _, store := newTestHandler()
	store.products = testProducts()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	h.HandleProducts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []catalog.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected catalog: %+v", got)
	}
}
