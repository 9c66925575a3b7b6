package cart

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

const (
	DefaultCurrency = "USD"
	expandDiscounts = "discountCodes[*].discountCode"
)

type Service struct {
	gw              gateway
	logger          *log.Logger
	defaultCurrency string
	locale          string
	maxRetries      int
}

type gateway interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Find(ctx context.Context, path string, query url.Values, out interface{}) (bool, error)
	Post(ctx context.Context, path string, query url.Values, body, out interface{}) error
}

// Options configure a Service. A nil MaxRetries means DefaultMaxRetries; zero
// disables retries.
type Options struct {
	DefaultCurrency string
	Locale          string
	MaxRetries      *int
}

func New(gw gateway, logger *log.Logger, opts Options) *Service {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultCurrency
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	maxRetries := DefaultMaxRetries
	if opts.MaxRetries != nil && *opts.MaxRetries >= 0 {
		maxRetries = *opts.MaxRetries
	}
	return &Service{
		gw:              gw,
		logger:          logger,
		defaultCurrency: opts.DefaultCurrency,
		locale:          opts.Locale,
		maxRetries:      maxRetries,
	}
}

func cartPath(id string) string {
	return "/carts/" + url.PathEscape(id)
}

func expandQuery() url.Values {
	return url.Values{"expand": {expandDiscounts}}
}

// Get fetches a cart with its discount codes expanded.
func (s *Service) Get(ctx context.Context, id string) (*commercetools.Cart, error) {
	var out commercetools.Cart
	if err := s.gw.Get(ctx, cartPath(id), expandQuery(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Find returns nil without error when the cart does not exist.
func (s *Service) Find(ctx context.Context, id string) (*commercetools.Cart, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var out commercetools.Cart
	found, err := s.gw.Find(ctx, cartPath(id), nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Create(ctx context.Context, currency string) (*commercetools.Cart, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	var out commercetools.Cart
	if err := s.gw.Post(ctx, "/carts", nil, commercetools.CartDraft{Currency: currency}, &out); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	s.logger.Printf("cart service: created cart id=%s currency=%s", out.ID, currency)
	return &out, nil
}

// Update applies actions to cart, retrying on version conflicts.
func (s *Service) Update(ctx context.Context, cart *commercetools.Cart, actions ...commercetools.CartUpdateAction) (*commercetools.Cart, error) {
	if len(actions) == 0 {
		return nil, domain.NewValidationError("actions", "at least one action is required")
	}
	apply := func(ctx context.Context, latest *commercetools.Cart) (*commercetools.Cart, error) {
		var out commercetools.Cart
		body := commercetools.Update[commercetools.CartUpdateAction]{Version: latest.Version, Actions: actions}
		if err := s.gw.Post(ctx, cartPath(latest.ID), expandQuery(), body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	fetch := func(ctx context.Context, id string) (*commercetools.Cart, error) {
		s.logger.Printf("cart service: version conflict on cart id=%s, refetching", id)
		return s.Get(ctx, id)
	}
	return WithVersionRetry(ctx, cart, s.maxRetries, apply, fetch)
}

func (s *Service) updateByID(ctx context.Context, cartID string, actions ...commercetools.CartUpdateAction) (*commercetools.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, cart, actions...)
}

func (s *Service) AddLineItem(ctx context.Context, cartID, productID string, variantID, quantity int) (*commercetools.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.NewValidationError("productId", "required")
	}
	if variantID <= 0 {
		return nil, domain.NewValidationError("variantId", "required")
	}
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	return s.updateByID(ctx, cartID, commercetools.AddLineItem(productID, variantID, quantity))
}

// ChangeLineItemQuantity sets an absolute quantity; zero removes the line.
func (s *Service) ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) (*commercetools.Cart, error) {
	if strings.TrimSpace(lineItemID) == "" {
		return nil, domain.NewValidationError("lineItemId", "required")
	}
	if quantity < 0 {
		return nil, domain.NewValidationError("quantity", "must not be negative")
	}
	updated, err := s.updateByID(ctx, cartID, commercetools.ChangeLineItemQuantity(lineItemID, quantity))
	if err != nil {
		return nil, err
	}
	return s.clearShippingIfEmpty(ctx, updated)
}

func (s *Service) RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*commercetools.Cart, error) {
	if strings.TrimSpace(lineItemID) == "" {
		return nil, domain.NewValidationError("lineItemId", "required")
	}
	updated, err := s.updateByID(ctx, cartID, commercetools.RemoveLineItem(lineItemID))
	if err != nil {
		return nil, err
	}
	return s.clearShippingIfEmpty(ctx, updated)
}

// clearShippingIfEmpty drops the shipping method from a cart left without units.
func (s *Service) clearShippingIfEmpty(ctx context.Context, cart *commercetools.Cart) (*commercetools.Cart, error) {
	if cart.Quantity() > 0 || cart.ShippingInfo == nil {
		return cart, nil
	}
	s.logger.Printf("cart service: cart id=%s is empty, clearing shipping method", cart.ID)
	return s.Update(ctx, cart, commercetools.SetShippingMethod(""))
}

func (s *Service) ApplyDiscountCode(ctx context.Context, cartID, code string) (*commercetools.Cart, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}
	return s.updateByID(ctx, cartID, commercetools.AddDiscountCode(code))
}

func (s *Service) RemoveDiscountCode(ctx context.Context, cartID, codeID string) (*commercetools.Cart, error) {
	if strings.TrimSpace(codeID) == "" {
		return nil, domain.NewValidationError("codeId", "required")
	}
	return s.updateByID(ctx, cartID, commercetools.RemoveDiscountCode(codeID))
}

// SetShippingAddress requires a country and submits it upper-cased.
func (s *Service) SetShippingAddress(ctx context.Context, cartID string, addr commercetools.Address) (*commercetools.Cart, error) {
	addr.Country = strings.ToUpper(strings.TrimSpace(addr.Country))
	if addr.Country == "" {
		return nil, domain.NewValidationError("address.country", "required")
	}
	return s.updateByID(ctx, cartID, commercetools.SetShippingAddress(&addr))
}

func (s *Service) UnsetShippingAddress(ctx context.Context, cartID string) (*commercetools.Cart, error) {
	return s.updateByID(ctx, cartID, commercetools.SetShippingAddress(nil))
}

// MatchingShippingMethods lists the methods the platform deems eligible for the cart.
func (s *Service) MatchingShippingMethods(ctx context.Context, cartID string) ([]domain.ShippingMethodView, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.matchingShippingMethods(ctx, cart)
}

func (s *Service) matchingShippingMethods(ctx context.Context, cart *commercetools.Cart) ([]domain.ShippingMethodView, error) {
	if cart.ShippingAddress == nil || strings.TrimSpace(cart.ShippingAddress.Country) == "" {
		return nil, domain.NewValidationError("shippingAddress.country", "set shipping address first (country is required)")
	}

	var res commercetools.PagedQueryResponse[commercetools.ShippingMethod]
	if err := s.gw.Get(ctx, "/shipping-methods/matching-cart", url.Values{"cartId": {cart.ID}}, &res); err != nil {
		return nil, fmt.Errorf("matching shipping methods: %w", err)
	}

	currency := cart.TotalPrice.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}
	out := make([]domain.ShippingMethodView, 0, len(res.Results))
	for _, m := range res.Results {
		out = append(out, shippingMethodView(m, currency, s.locale))
	}
	return out, nil
}

// SetShippingMethod accepts only a method currently eligible for the cart.
// An ineligible id fails with a ValidationError carrying the eligible methods
// and leaves the cart untouched.
func (s *Service) SetShippingMethod(ctx context.Context, cartID, methodID string) (*commercetools.Cart, error) {
	methodID = strings.TrimSpace(methodID)
	if methodID == "" {
		return nil, domain.NewValidationError("shippingMethodId", "required")
	}
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	methods, err := s.matchingShippingMethods(ctx, cart)
	if err != nil {
		return nil, err
	}
	eligible := false
	for _, m := range methods {
		if m.ID == methodID && m.MatchesCart {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, &domain.ValidationError{
			Field:   "shippingMethodId",
			Reason:  "selected shipping method does not match this cart",
			Details: methods,
		}
	}
	return s.Update(ctx, cart, commercetools.SetShippingMethod(methodID))
}

func (s *Service) UnsetShippingMethod(ctx context.Context, cartID string) (*commercetools.Cart, error) {
	return s.updateByID(ctx, cartID, commercetools.SetShippingMethod(""))
}

func (s *Service) Totals(ctx context.Context, cartID string) (domain.NormalizedTotals, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.NormalizedTotals{}, err
	}
	return NormalizedTotals(cart, s.defaultCurrency), nil
}
