// Package app assembles the storefront's dependencies from
// configuration.
package app

import (
	"net/http"
	"time"

	"github.com/qinzstore/storefront/internal/catalog"
	"github.com/qinzstore/storefront/internal/config"
	"github.com/qinzstore/storefront/internal/handler"
	"github.com/qinzstore/storefront/internal/openai"
	"github.com/qinzstore/storefront/internal/quota"
	"github.com/qinzstore/storefront/internal/tripay"
)

// outboundTimeout bounds every gateway call. Completions can be slow,
// so this is deliberately generous; per-request contexts still cut the
// call short when the client goes away.
const outboundTimeout = 60 * time.Second

// App is the wired application.
type App struct {
	Handler *handler.Handler
	Store   *catalog.Store
}

// New builds the catalog store, outbound clients and HTTP handler from
// cfg. The returned App owns the store; call Close when done.
func New(cfg config.Config) (*App, error) {
	store, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.SeedIfEmpty(cfg.CatalogSeed); err != nil {
		_ = store.Close()
		return nil, err
	}

	outbound := &http.Client{Timeout: outboundTimeout}
	h := handler.New(
		tripay.New(cfg.Tripay, outbound),
		openai.New(cfg.OpenAI, outbound),
		quota.NewCodec(cfg.Quota.SigningSecret, cfg.Quota.MaxMessages, cfg.Quota.Window),
		store,
		cfg.AdminPassword,
	)

	return &App{Handler: h, Store: store}, nil
}

// Close releases resources held by the App.
func (a *App) Close() error {
	return a.Store.Close()
}
