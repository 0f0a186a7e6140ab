// Package draft turns raw product form input into a creation request.
package draft

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"shopfront/internal/domain"
	"shopfront/internal/validate"
)

const (
	FieldTitle    = "title"
	FieldPrice    = "price"
	FieldDiscount = "discountPercentage"
	FieldBrand    = "brand"

	MaxTitleLen = 15
	MinPrice    = 1000
	MinDiscount = 0
	MaxDiscount = 100
)

const (
	MsgTitleRequired = "Please enter a product name."
	MsgTitleTooLong  = "Product name must be 15 characters or fewer."
	MsgPriceRequired = "Please enter a price."
	MsgPriceMinimum  = "Price must be at least 1000."
	MsgDiscountRange = "Discount must be between 0 and 100."
	MsgBrandRequired = "Please select a brand."
)

// Draft is the product form as typed, before any parsing.
type Draft struct {
	Title              string `form:"title"`
	Description        string `form:"description"`
	Price              string `form:"price"`
	DiscountPercentage string `form:"discountPercentage"`
	Brand              string `form:"brand"`
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

type Result struct {
	Errors FieldErrors
	draft  Draft
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Validated returns the token BuildRequest needs. It is only handed out for a clean result.
func (r Result) Validated() (Validated, bool) {
	if !r.OK() {
		return Validated{}, false
	}
	return Validated{draft: r.draft, ok: true}, true
}

// Validated is a draft that passed Validate. The zero value is not valid.
type Validated struct {
	draft Draft
	ok    bool
}

// Validate checks every field and collects all failures.
func Validate(d Draft) Result {
	errs := FieldErrors{}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs[FieldTitle] = MsgTitleRequired
	} else if utf8.RuneCountInString(title) > MaxTitleLen {
		errs[FieldTitle] = MsgTitleTooLong
	}

	if price, ok := validate.Number(d.Price); !ok {
		errs[FieldPrice] = MsgPriceRequired
	} else if price < MinPrice {
		errs[FieldPrice] = MsgPriceMinimum
	}

	if d.DiscountPercentage != "" {
		discount, ok := validate.Number(d.DiscountPercentage)
		if !ok || discount < MinDiscount || discount > MaxDiscount {
			errs[FieldDiscount] = MsgDiscountRange
		}
	}

	if _, ok := domain.ParseBrand(d.Brand); !ok {
		errs[FieldBrand] = MsgBrandRequired
	}

	return Result{Errors: errs, draft: d}
}

// BuildRequest shapes a validated draft for the catalog API. It does not re-check
// anything and panics when given a Validated that did not come from Validate.
func BuildRequest(v Validated) domain.ProductCreationRequest {
	if !v.ok {
		panic("draft: BuildRequest called without a successful Validate")
	}
	d := v.draft
	price, _ := validate.Number(d.Price)
	brand, _ := domain.ParseBrand(d.Brand)

	req := domain.ProductCreationRequest{
		Title: strings.TrimSpace(d.Title),
		Price: price,
		Brand: brand,
	}
	if desc := strings.TrimSpace(d.Description); desc != "" {
		req.Description = &desc
	}
	if d.DiscountPercentage != "" {
		discount, _ := validate.Number(d.DiscountPercentage)
		req.DiscountPercentage = &discount
	}
	return req
}

var hundred = decimal.NewFromInt(100)

// ComputeFinalPrice returns price - price*discount/100. Inputs that do not parse count as 0.
func ComputeFinalPrice(priceInput, discountInput string) float64 {
	price := decimal.NewFromFloat(validate.NumberOrZero(priceInput))
	discount := decimal.NewFromFloat(validate.NumberOrZero(discountInput))
	return price.Sub(price.Mul(discount).Div(hundred)).InexactFloat64()
}

// Summary is what the live price box under the form shows.
type Summary struct {
	Visible       bool    `json:"visible"`
	OriginalPrice float64 `json:"originalPrice"`
	FinalPrice    float64 `json:"finalPrice"`
	Discount      float64 `json:"discount"`
	ShowDiscount  bool    `json:"showDiscount"`
}

// Summarize computes the live box: it is shown once the price parses, and the
// discount note only for a positive discount.
func Summarize(priceInput, discountInput string) Summary {
	price, ok := validate.Number(priceInput)
	discount := validate.NumberOrZero(discountInput)
	return Summary{
		Visible:       ok,
		OriginalPrice: price,
		FinalPrice:    ComputeFinalPrice(priceInput, discountInput),
		Discount:      discount,
		ShowDiscount:  discount > 0,
	}
}
