package product

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

const (
	DefaultLimit    = 20
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
	untitled        = "Untitled"
)

type gateway interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Find(ctx context.Context, path string, query url.Values, out interface{}) (bool, error)
	Post(ctx context.Context, path string, query url.Values, body, out interface{}) error
	Delete(ctx context.Context, path string, query url.Values, out interface{}) error
}

// Filters narrow a catalog read and select the price scope.
type Filters struct {
	Limit           int
	Offset          int
	Locale          string
	Currency        string
	Country         string
	CustomerGroupID string
	ChannelID       string
	Staged          bool
}

// Service reads product projections for the storefront.
type Service struct {
	gw       gateway
	logger   *log.Logger
	locale   string
	currency string
}

func New(gw gateway, logger *log.Logger, locale, currency string) *Service {
	if locale == "" {
		locale = DefaultLocale
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Service{gw: gw, logger: logger, locale: locale, currency: currency}
}

func (s *Service) withDefaults(f Filters) Filters {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Locale == "" {
		f.Locale = s.locale
	}
	if f.Currency == "" {
		f.Currency = s.currency
	}
	return f
}

func priceQuery(f Filters) url.Values {
	q := url.Values{}
	q.Set("staged", strconv.FormatBool(f.Staged))
	if f.Currency != "" {
		q.Set("priceCurrency", f.Currency)
	}
	if f.Country != "" {
		q.Set("priceCountry", f.Country)
	}
	if f.CustomerGroupID != "" {
		q.Set("priceCustomerGroup", f.CustomerGroupID)
	}
	if f.ChannelID != "" {
		q.Set("priceChannel", f.ChannelID)
	}
	return q
}

func (s *Service) List(ctx context.Context, f Filters) (*domain.ProductPage, error) {
	f = s.withDefaults(f)
	q := priceQuery(f)
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("offset", strconv.Itoa(f.Offset))

	var res commercetools.PagedQueryResponse[commercetools.ProductProjection]
	if err := s.gw.Get(ctx, "/product-projections", q, &res); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	page := &domain.ProductPage{
		Count:   res.Count,
		Offset:  res.Offset,
		Results: make([]domain.ProductListItem, 0, len(res.Results)),
	}
	if res.Total != nil {
		page.Total = *res.Total
	}
	for _, p := range res.Results {
		page.Results = append(page.Results, listItem(p, f.Locale))
	}
	return page, nil
}

// lookup resolves a key to a projection. (nil, nil) is a miss.
type lookup struct {
	name string
	find func(ctx context.Context, key string) (*commercetools.ProductProjection, error)
}

// GetByIDOrSlug tries the key as a product id and then as a slug in the
// requested locale.
func (s *Service) GetByIDOrSlug(ctx context.Context, idOrSlug string, f Filters) (*domain.ProductDetail, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, domain.NewValidationError("idOrSlug", "required")
	}
	f = s.withDefaults(f)
	q := priceQuery(f)

	p, err := resolve(ctx, idOrSlug, []lookup{
		{name: "id", find: func(ctx context.Context, key string) (*commercetools.ProductProjection, error) {
			return s.byID(ctx, key, q)
		}},
		{name: "slug", find: func(ctx context.Context, key string) (*commercetools.ProductProjection, error) {
			return s.bySlug(ctx, key, f.Locale, q)
		}},
	})
	if err != nil {
		return nil, err
	}
	return detail(*p, f.Locale), nil
}

func resolve(ctx context.Context, key string, lookups []lookup) (*commercetools.ProductProjection, error) {
	tried := make([]string, 0, len(lookups))
	for _, l := range lookups {
		p, err := l.find(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("product lookup by %s: %w", l.name, err)
		}
		if p != nil {
			return p, nil
		}
		tried = append(tried, l.name)
	}
	return nil, &domain.NotFoundError{Resource: "product", Key: key, Tried: tried}
}

// byID treats 404 and 400 as a miss: a slug is not a well-formed id.
func (s *Service) byID(ctx context.Context, id string, q url.Values) (*commercetools.ProductProjection, error) {
	var p commercetools.ProductProjection
	err := s.gw.Get(ctx, "/product-projections/"+url.PathEscape(id), q, &p)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusBadRequest) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) bySlug(ctx context.Context, slug, locale string, common url.Values) (*commercetools.ProductProjection, error) {
	q := url.Values{}
	for k, v := range common {
		q[k] = v
	}
	q.Set("where", slugPredicate(locale, slug))
	q.Set("limit", "1")

	var res commercetools.PagedQueryResponse[commercetools.ProductProjection]
	if err := s.gw.Get(ctx, "/product-projections", q, &res); err != nil {
		return nil, err
	}
	if res.Count == 0 || len(res.Results) == 0 {
		return nil, nil
	}
	return &res.Results[0], nil
}

// slugPredicate quotes the value but not the locale.
func slugPredicate(locale, slug string) string {
	escaped := strings.ReplaceAll(slug, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return fmt.Sprintf(`slug(%s="%s")`, locale, escaped)
}

func moneyView(m *commercetools.TypedMoney) *domain.MoneyView {
	if m == nil {
		return nil
	}
	return m.Money().View()
}

// priceView prefers the scoped price the platform selected for the request.
func priceView(v commercetools.ProductVariant) domain.PriceView {
	if sp := v.ScopedPrice; sp != nil {
		out := domain.PriceView{Price: moneyView(&sp.Value)}
		if sp.Discounted != nil {
			out.Discounted = moneyView(&sp.Discounted.Value)
		}
		return out
	}
	if len(v.Prices) > 0 {
		return domain.PriceView{Price: moneyView(&v.Prices[0].Value)}
	}
	return domain.PriceView{}
}

func variantView(v commercetools.ProductVariant) domain.VariantView {
	images := make([]string, 0, len(v.Images))
	for _, img := range v.Images {
		images = append(images, img.URL)
	}
	return domain.VariantView{ID: v.ID, SKU: v.SKU, Images: images, Price: priceView(v)}
}

func nameAndSlug(p commercetools.ProductProjection, locale string) (string, string) {
	name := p.Name.Pick(locale)
	if name == "" {
		name = untitled
	}
	slug := p.Slug.Pick(locale)
	if slug == "" {
		slug = p.ID
	}
	return name, slug
}

func listItem(p commercetools.ProductProjection, locale string) domain.ProductListItem {
	name, slug := nameAndSlug(p, locale)
	mv := p.MasterVariant
	item := domain.ProductListItem{
		ID:        p.ID,
		Slug:      slug,
		Name:      name,
		VariantID: mv.ID,
		SKU:       mv.SKU,
		Price:     priceView(mv),
	}
	if len(mv.Images) > 0 {
		item.Thumbnail = mv.Images[0].URL
	}
	return item
}

func detail(p commercetools.ProductProjection, locale string) *domain.ProductDetail {
	name, slug := nameAndSlug(p, locale)
	out := &domain.ProductDetail{
		ID:            p.ID,
		Slug:          slug,
		Name:          name,
		Description:   p.Description.Pick(locale),
		MasterVariant: variantView(p.MasterVariant),
		Variants:      make([]domain.VariantView, 0, len(p.Variants)),
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, variantView(v))
	}
	return out
}
