// Package catalog holds the product catalog: the product model, the
// bolt-backed store and the pure reducer the admin editor goes through.
package catalog

// Option is a purchasable variant of a product, usually a duration.
// Amount is the checkout price in the minor currency unit; DisplayPrice
// is the human-facing label shown on the storefront.
type Option struct {
	Label        string `json:"label"`
	DisplayPrice string `json:"displayPrice"`
	Amount       int64  `json:"amount"`
}

// Product is a single catalog entry.
type Product struct {
	Name      string   `json:"name"`
	Options   []Option `json:"options"`
	Features  []string `json:"features"`
	Highlight bool     `json:"highlight,omitempty"`
	Stock     int      `json:"stock,omitempty"`
}

// clone returns a deep copy so reducer steps never alias the input.
func clone(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p
		out[i].Options = append([]Option(nil), p.Options...)
		out[i].Features = append([]string(nil), p.Features...)
	}
	return out
}
