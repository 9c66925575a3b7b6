package cart

import (
	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

// NormalizedTotals derives the storefront price breakdown from a cart. A cart
// without items yields zeros everywhere, whatever stale tax or shipping data
// the platform still reports for it.
func NormalizedTotals(c *commercetools.Cart, defaultCurrency string) domain.NormalizedTotals {
	currency := c.TotalPrice.CurrencyCode
	if currency == "" {
		currency = defaultCurrency
	}
	zero := domain.ZeroMoney(currency, c.TotalPrice.DigitsOrDefault())
	out := domain.NormalizedTotals{
		Currency: currency,
		Subtotal: zero,
		Shipping: zero,
		Tax:      zero,
		Total:    zero,
	}
	if len(c.LineItems) == 0 || c.Quantity() == 0 {
		return out
	}

	var subtotal int64
	for _, li := range c.LineItems {
		subtotal += li.TotalPrice.CentAmount
	}
	var shipping int64
	if c.ShippingInfo != nil {
		shipping = c.ShippingInfo.Price.CentAmount
	}
	var tax int64
	if c.TaxedPrice != nil && c.TaxedPrice.TotalTax != nil {
		tax = c.TaxedPrice.TotalTax.CentAmount
	}

	out.Subtotal.CentAmount = subtotal
	out.Shipping.CentAmount = shipping
	out.Tax.CentAmount = tax
	out.Total.CentAmount = subtotal + shipping + tax
	return out
}

func shippingMethodView(m commercetools.ShippingMethod, currency, locale string) domain.ShippingMethodView {
	view := domain.ShippingMethodView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.LocalizedDescription.Pick(locale),
		MatchesCart: true,
	}
	if view.Description == "" {
		view.Description = m.Description
	}

	var price *commercetools.TypedMoney
	for _, zr := range m.ZoneRates {
		for i := range zr.ShippingRates {
			if zr.ShippingRates[i].Price.CurrencyCode == currency {
				price = &zr.ShippingRates[i].Price
				break
			}
		}
		if price != nil {
			break
		}
	}
	if len(m.ZoneRates) > 0 && len(m.ZoneRates[0].ShippingRates) > 0 {
		first := m.ZoneRates[0].ShippingRates[0]
		if price == nil {
			price = &first.Price
		}
		if first.FreeAbove != nil {
			fa := first.FreeAbove.Money()
			view.FreeAbove = &fa
		}
	}
	if price != nil {
		p := price.Money()
		view.Price = &p
	}
	return view
}
