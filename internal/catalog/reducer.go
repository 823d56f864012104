package catalog

import (
	"github.com/qinzstore/storefront/internal/apperr"
)

// Action types accepted by Apply.
const (
	ActionRename        = "rename"
	ActionSetStock      = "set_stock"
	ActionSetHighlight  = "set_highlight"
	ActionAddOption     = "add_option"
	ActionUpdateOption  = "update_option"
	ActionRemoveOption  = "remove_option"
	ActionAddFeature    = "add_feature"
	ActionUpdateFeature = "update_feature"
	ActionRemoveFeature = "remove_feature"
	ActionAddProduct    = "add_product"
	ActionRemoveProduct = "remove_product"
)

// Defaults for newly added entries, matching what the admin editor
// inserts before the operator fills them in.
var defaultOption = Option{Label: "Baru", DisplayPrice: "Rp0", Amount: 0}

const defaultFeature = "Fitur baru"

// Action is one discrete catalog edit. Index addresses a product;
// OptionIndex and FeatureIndex address entries within it. The payload
// fields used depend on Type.
type Action struct {
	Type         string   `json:"type"`
	Index        int      `json:"index"`
	OptionIndex  int      `json:"optionIndex,omitempty"`
	FeatureIndex int      `json:"featureIndex,omitempty"`
	Name         string   `json:"name,omitempty"`
	Stock        int      `json:"stock,omitempty"`
	Highlight    bool     `json:"highlight,omitempty"`
	Option       *Option  `json:"option,omitempty"`
	Feature      *string  `json:"feature,omitempty"`
	Product      *Product `json:"product,omitempty"`
}

// Apply runs the actions against products in order and returns the
// resulting catalog. The input is never mutated; an invalid action
// aborts the whole batch with a validation error, leaving the stored
// catalog untouched.
func Apply(products []Product, actions []Action) ([]Product, error) {
	next := clone(products)
	for i, a := range actions {
		var err error
		next, err = applyOne(next, a)
		if err != nil {
			return nil, apperr.Validation("action %d (%s): %v", i, a.Type, err)
		}
	}
	return next, nil
}

func applyOne(products []Product, a Action) ([]Product, error) {
	switch a.Type {
	case ActionAddProduct:
		p := Product{Options: []Option{defaultOption}, Features: []string{}}
		if a.Product != nil {
			p = *a.Product
		}
		return append(products, p), nil

	case ActionRemoveProduct:
		if err := checkIndex(a.Index, len(products)); err != nil {
			return nil, err
		}
		return append(products[:a.Index], products[a.Index+1:]...), nil
	}

	if err := checkIndex(a.Index, len(products)); err != nil {
		return nil, err
	}
	p := &products[a.Index]

	switch a.Type {
	case ActionRename:
		p.Name = a.Name

	case ActionSetStock:
		if a.Stock < 0 {
			return nil, errNegativeStock
		}
		p.Stock = a.Stock

	case ActionSetHighlight:
		p.Highlight = a.Highlight

	case ActionAddOption:
		opt := defaultOption
		if a.Option != nil {
			opt = *a.Option
		}
		p.Options = append(p.Options, opt)

	case ActionUpdateOption:
		if err := checkIndex(a.OptionIndex, len(p.Options)); err != nil {
			return nil, err
		}
		if a.Option == nil {
			return nil, errMissingPayload
		}
		p.Options[a.OptionIndex] = *a.Option

	case ActionRemoveOption:
		if err := checkIndex(a.OptionIndex, len(p.Options)); err != nil {
			return nil, err
		}
		p.Options = append(p.Options[:a.OptionIndex], p.Options[a.OptionIndex+1:]...)
		// A product always keeps at least one purchasable option.
		if len(p.Options) == 0 {
			p.Options = []Option{defaultOption}
		}

	case ActionAddFeature:
		f := defaultFeature
		if a.Feature != nil {
			f = *a.Feature
		}
		p.Features = append(p.Features, f)

	case ActionUpdateFeature:
		if err := checkIndex(a.FeatureIndex, len(p.Features)); err != nil {
			return nil, err
		}
		if a.Feature == nil {
			return nil, errMissingPayload
		}
		p.Features[a.FeatureIndex] = *a.Feature

	case ActionRemoveFeature:
		if err := checkIndex(a.FeatureIndex, len(p.Features)); err != nil {
			return nil, err
		}
		p.Features = append(p.Features[:a.FeatureIndex], p.Features[a.FeatureIndex+1:]...)

	default:
		return nil, errUnknownAction
	}

	return products, nil
}

type reducerError string

func (e reducerError) Error() string { return string(e) }

const (
	errUnknownAction  = reducerError("unknown action type")
	errIndexRange     = reducerError("index out of range")
	errMissingPayload = reducerError("missing payload")
	errNegativeStock  = reducerError("stock must not be negative")
)

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return errIndexRange
	}
	return nil
}
