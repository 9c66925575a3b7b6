package domain

// NormalizedTotals is the storefront breakdown of a cart's price.
// Total always equals Subtotal + Shipping + Tax.
type NormalizedTotals struct {
	Currency string `json:"currency"`
	Subtotal Money  `json:"subtotal"`
	Shipping Money  `json:"shipping"`
	Tax      Money  `json:"tax"`
	Total    Money  `json:"total"`
}

// ShippingMethodView is a shipping method eligible for a cart.
type ShippingMethodView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       *Money `json:"price"`
	FreeAbove   *Money `json:"freeAbove"`
	MatchesCart bool   `json:"matchesCart"`
}
