// Package model defines the request and response payloads used by the API.
// It keeps transport-level types in one place for reuse.
package model

import "encoding/json"

// PurchaseIntent is the input payload for creating a checkout session.
type PurchaseIntent struct {
	ProductName string `json:"productName"`
	OptionLabel string `json:"optionLabel"`
	Amount      int64  `json:"amount"` // minor currency unit (Rupiah)
}

// CheckoutResponse is the output payload returned by the checkout handler.
// CheckoutURL is null when the gateway answered 2xx without a usable URL;
// callers must treat that as a failure even though the call "succeeded".
type CheckoutResponse struct {
	CheckoutURL *string         `json:"checkoutUrl"`
	Raw         json.RawMessage `json:"raw"`
}

// ChatTurn is a single message in a chat-demo transcript.
type ChatTurn struct {
	Role    string `json:"role"` // "user" | "assistant" | "system"
	Content string `json:"content"`
}

// ChatRequest is the input payload for the chat demo.
type ChatRequest struct {
	Messages []ChatTurn `json:"messages"`
}

// ChatResponse is the output payload for an accepted chat-demo request.
type ChatResponse struct {
	Content   string `json:"content"`
	Remaining int    `json:"remaining"`
}

// ErrorResponse is the body written for any failed request. Detail
// carries the raw upstream payload when one is available.
type ErrorResponse struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail,omitempty"`
}
