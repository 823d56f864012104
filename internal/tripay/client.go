// Package tripay implements the transaction-creation client for the
// Tripay payment gateway: merchant reference generation, request
// signing and response normalization.
package tripay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/config"
	"github.com/qinzstore/storefront/internal/model"
)

const defaultTimeout = 15 * time.Second

// Placeholder customer identity; this flow collects no real customer data.
const (
	customerName  = "Guest"
	customerEmail = "guest@example.com"
	customerPhone = "081234567890"
)

// Client creates hosted-checkout transactions against Tripay.
type Client struct {
	cfg  config.Tripay
	http *http.Client
	now  func() time.Time
}

// New returns a Client for the given gateway settings. A nil httpClient
// gets a default client with a request timeout.
func New(cfg config.Tripay, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{cfg: cfg, http: httpClient, now: time.Now}
}

// CreateResult is the normalized gateway outcome. CheckoutURL is empty
// when the gateway answered success without a usable URL; Raw always
// carries the full gateway payload for inspection.
type CreateResult struct {
	CheckoutURL string
	Raw         json.RawMessage
}

type orderItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type createRequest struct {
	Method        string      `json:"method"`
	MerchantRef   string      `json:"merchant_ref"`
	Amount        int64       `json:"amount"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	OrderItems    []orderItem `json:"order_items"`
	CallbackURL   string      `json:"callback_url"`
	ReturnURL     string      `json:"return_url"`
	Signature     string      `json:"signature"`
}

type createResponse struct {
	Data struct {
		CheckoutURL string `json:"checkout_url"`
		PaymentURL  string `json:"payment_url"`
	} `json:"data"`
}

// CreateTransaction builds a signed transaction-creation request for
// intent and posts it to the gateway. The intent must already be
// validated; configuration is checked here so a partially-configured
// deployment fails before any outbound call.
func (c *Client) CreateTransaction(ctx context.Context, intent model.PurchaseIntent) (CreateResult, error) {
	if c.cfg.APIKey == "" || c.cfg.MerchantCode == "" || c.cfg.PrivateKey == "" {
		return CreateResult{}, apperr.Config("payment gateway configuration incomplete (TRIPAY_API_KEY / TRIPAY_MERCHANT_CODE / TRIPAY_PRIVATE_KEY)")
	}

	ref := c.merchantRef()
	payload := createRequest{
		Method:        c.cfg.DefaultMethod,
		MerchantRef:   ref,
		Amount:        intent.Amount,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
		OrderItems: []orderItem{{
			SKU:      intent.ProductName + "-" + intent.OptionLabel,
			Name:     intent.ProductName + " " + intent.OptionLabel,
			Price:    intent.Amount,
			Quantity: 1,
		}},
		CallbackURL: c.cfg.CallbackURL,
		ReturnURL:   strings.TrimRight(c.cfg.ReturnURLBase, "/") + "/" + ref,
		Signature:   Sign(c.cfg.MerchantCode, ref, intent.Amount, c.cfg.PrivateKey),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return CreateResult{}, fmt.Errorf("marshal transaction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/transaction/create", bytes.NewReader(body))
	if err != nil {
		return CreateResult{}, fmt.Errorf("build transaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return CreateResult{}, apperr.Upstream(0, fmt.Sprintf("tripay request failed: %v", err), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CreateResult{}, apperr.Upstream(resp.StatusCode, "tripay response unreadable", nil)
	}

	var parsed createResponse
	parseErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parseErr != nil {
		return CreateResult{}, apperr.Upstream(resp.StatusCode, "tripay error", raw)
	}

	// The gateway uses either field name depending on the channel.
	url := parsed.Data.CheckoutURL
	if url == "" {
		url = parsed.Data.PaymentURL
	}
	return CreateResult{CheckoutURL: url, Raw: raw}, nil
}

// merchantRef generates a per-request reference: a millisecond
// timestamp plus a short random suffix. Uniqueness is best-effort;
// there is no collision check against the gateway. The suffix is wide
// enough that refs minted within the same millisecond stay distinct.
func (c *Client) merchantRef() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strconv.FormatInt(c.now().UnixMilli(), 10) + "-" + suffix
}

// Sign computes the transaction signature required by Tripay:
// hex HMAC-SHA256 over merchantCode + merchantRef + amount,
// keyed by the merchant's private key.
func Sign(merchantCode, merchantRef string, amount int64, privateKey string) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write([]byte(merchantCode + merchantRef + strconv.FormatInt(amount, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
