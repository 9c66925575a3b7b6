package product

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"testing"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

type call struct {
	method string
	path   string
	query  url.Values
	body   interface{}
}

// stubGateway answers from per-path handlers and records every call.
type stubGateway struct {
	calls    []call
	handlers map[string]func(c call, out interface{}) error
}

func newStubGateway() *stubGateway {
	return &stubGateway{handlers: map[string]func(call, interface{}) error{}}
}

func (g *stubGateway) on(method, path string, h func(c call, out interface{}) error) {
	g.handlers[method+" "+path] = h
}

func (g *stubGateway) dispatch(c call, out interface{}) error {
	g.calls = append(g.calls, c)
	h, ok := g.handlers[c.method+" "+c.path]
	if !ok {
		return &domain.APIError{Method: c.method, Path: c.path, Status: http.StatusNotFound}
	}
	return h(c, out)
}

func (g *stubGateway) Get(_ context.Context, path string, query url.Values, out interface{}) error {
	return g.dispatch(call{method: http.MethodGet, path: path, query: query}, out)
}

func (g *stubGateway) Find(ctx context.Context, path string, query url.Values, out interface{}) (bool, error) {
	err := g.Get(ctx, path, query, out)
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return false, nil
	}
	return err == nil, err
}

func (g *stubGateway) Post(_ context.Context, path string, query url.Values, body, out interface{}) error {
	return g.dispatch(call{method: http.MethodPost, path: path, query: query, body: body}, out)
}

func (g *stubGateway) Delete(_ context.Context, path string, query url.Values, out interface{}) error {
	return g.dispatch(call{method: http.MethodDelete, path: path, query: query}, out)
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func shirt() commercetools.ProductProjection {
	return commercetools.ProductProjection{
		ID:   "prod-1",
		Name: commercetools.LocalizedString{"en-IN": "Red Shirt", "de": "Rotes Hemd"},
		Slug: commercetools.LocalizedString{"en-IN": "red-shirt"},
		MasterVariant: commercetools.ProductVariant{
			ID:     1,
			SKU:    "SHIRT-RED",
			Images: []commercetools.Image{{URL: "https://img/1.png"}, {URL: "https://img/2.png"}},
			Prices: []commercetools.Price{{Value: commercetools.TypedMoney{CurrencyCode: "INR", CentAmount: 99900, FractionDigits: commercetools.Digits(2)}}},
			ScopedPrice: &commercetools.ScopedPrice{
				Value:      commercetools.TypedMoney{CurrencyCode: "INR", CentAmount: 89900, FractionDigits: commercetools.Digits(2)},
				Discounted: &commercetools.DiscountedPrice{Value: commercetools.TypedMoney{CurrencyCode: "INR", CentAmount: 79900, FractionDigits: commercetools.Digits(2)}},
			},
		},
		Variants: []commercetools.ProductVariant{{
			ID:     2,
			SKU:    "SHIRT-BLUE",
			Prices: []commercetools.Price{{Value: commercetools.TypedMoney{CurrencyCode: "INR", CentAmount: 99900, FractionDigits: commercetools.Digits(2)}}},
		}},
	}
}

func TestList_AppliesDefaultsAndMapsItems(t *testing.T) {
	g := newStubGateway()
	total := 41
	g.on(http.MethodGet, "/product-projections", func(c call, out interface{}) error {
		res := out.(*commercetools.PagedQueryResponse[commercetools.ProductProjection])
		res.Count = 1
		res.Total = &total
		res.Offset = 0
		res.Results = []commercetools.ProductProjection{shirt(), {ID: "prod-2"}}
		return nil
	})
	svc := New(g, logDiscard(), "", "")

	page, err := svc.List(context.Background(), Filters{Country: "IN"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	q := g.calls[0].query
	for key, want := range map[string]string{
		"limit":         "20",
		"offset":        "0",
		"staged":        "false",
		"priceCurrency": "INR",
		"priceCountry":  "IN",
	} {
		if got := q.Get(key); got != want {
			t.Fatalf("query %s = %q, want %q", key, got, want)
		}
	}
	if q.Has("priceChannel") || q.Has("priceCustomerGroup") {
		t.Fatalf("unexpected price scope params %v", q)
	}

	if page.Total != 41 || len(page.Results) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	item := page.Results[0]
	if item.Name != "Red Shirt" || item.Slug != "red-shirt" || item.Thumbnail != "https://img/1.png" || item.VariantID != 1 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Price.Price == nil || item.Price.Price.CentAmount != 89900 || item.Price.Price.Amount != 899 {
		t.Fatalf("expected scoped price, got %+v", item.Price.Price)
	}
	if item.Price.Discounted == nil || item.Price.Discounted.Amount != 799 {
		t.Fatalf("expected discounted scoped price, got %+v", item.Price.Discounted)
	}

	bare := page.Results[1]
	if bare.Name != "Untitled" || bare.Slug != "prod-2" || bare.Price.Price != nil {
		t.Fatalf("unexpected fallbacks %+v", bare)
	}
}

func TestGetByIDOrSlug_IDHitSkipsSlugQuery(t *testing.T) {
	g := newStubGateway()
	g.on(http.MethodGet, "/product-projections/prod-1", func(c call, out interface{}) error {
		*out.(*commercetools.ProductProjection) = shirt()
		return nil
	})
	svc := New(g, logDiscard(), "", "")

	got, err := svc.GetByIDOrSlug(context.Background(), "prod-1", Filters{})
	if err != nil {
		t.Fatalf("GetByIDOrSlug: %v", err)
	}
	if len(g.calls) != 1 {
		t.Fatalf("expected a single lookup, got %d", len(g.calls))
	}
	if got.ID != "prod-1" || len(got.Variants) != 1 || got.Variants[0].Price.Price.CentAmount != 99900 {
		t.Fatalf("unexpected detail %+v", got)
	}
	if len(got.MasterVariant.Images) != 2 {
		t.Fatalf("expected image urls, got %v", got.MasterVariant.Images)
	}
}

func TestGetByIDOrSlug_FallsBackToSlug(t *testing.T) {
	g := newStubGateway()
	g.on(http.MethodGet, "/product-projections/red-shirt", func(c call, out interface{}) error {
		return &domain.APIError{Method: http.MethodGet, Path: c.path, Status: http.StatusBadRequest}
	})
	g.on(http.MethodGet, "/product-projections", func(c call, out interface{}) error {
		res := out.(*commercetools.PagedQueryResponse[commercetools.ProductProjection])
		if c.query.Get("where") == `slug(en-IN="red-shirt")` && c.query.Get("limit") == "1" {
			res.Count = 1
			res.Results = []commercetools.ProductProjection{shirt()}
		}
		return nil
	})
	svc := New(g, logDiscard(), "", "")

	got, err := svc.GetByIDOrSlug(context.Background(), "red-shirt", Filters{})
	if err != nil {
		t.Fatalf("GetByIDOrSlug: %v", err)
	}
	if got.ID != "prod-1" || got.Slug != "red-shirt" {
		t.Fatalf("unexpected detail %+v", got)
	}
	if len(g.calls) != 2 {
		t.Fatalf("expected id then slug lookups, got %d", len(g.calls))
	}
	if g.calls[1].query.Get("priceCurrency") != "INR" {
		t.Fatalf("slug query lost price scope: %v", g.calls[1].query)
	}
}

func TestGetByIDOrSlug_NotFoundNamesStrategies(t *testing.T) {
	g := newStubGateway()
	g.on(http.MethodGet, "/product-projections", func(c call, out interface{}) error {
		return nil
	})
	svc := New(g, logDiscard(), "", "")

	_, err := svc.GetByIDOrSlug(context.Background(), "ghost", Filters{})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.Tried) != 2 || nf.Tried[0] != "id" || nf.Tried[1] != "slug" {
		t.Fatalf("unexpected strategies %v", nf.Tried)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("NotFoundError should match ErrNotFound")
	}
}

func TestGetByIDOrSlug_UpstreamFailurePropagates(t *testing.T) {
	g := newStubGateway()
	g.on(http.MethodGet, "/product-projections/prod-1", func(c call, out interface{}) error {
		return &domain.APIError{Method: http.MethodGet, Path: c.path, Status: http.StatusServiceUnavailable}
	})
	svc := New(g, logDiscard(), "", "")

	_, err := svc.GetByIDOrSlug(context.Background(), "prod-1", Filters{})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(g.calls) != 1 {
		t.Fatalf("slug lookup should not run after a hard failure")
	}
}

func TestSlugPredicate_EscapesQuotes(t *testing.T) {
	got := slugPredicate("en", `say "hi"`)
	want := `slug(en="say \"hi\"")`
	if got != want {
		t.Fatalf("slugPredicate = %s, want %s", got, want)
	}
}

func TestList_ZeroDecimalCurrencyKeepsAmount(t *testing.T) {
	g := newStubGateway()
	g.on(http.MethodGet, "/product-projections", func(c call, out interface{}) error {
		res := out.(*commercetools.PagedQueryResponse[commercetools.ProductProjection])
		res.Count = 1
		res.Results = []commercetools.ProductProjection{{
			ID: "prod-jp",
			MasterVariant: commercetools.ProductVariant{
				ID:     1,
				Prices: []commercetools.Price{{Value: commercetools.TypedMoney{CurrencyCode: "JPY", CentAmount: 1500, FractionDigits: commercetools.Digits(0)}}},
			},
		}}
		return nil
	})
	svc := New(g, logDiscard(), "", "JPY")

	page, err := svc.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	price := page.Results[0].Price.Price
	if price == nil || price.FractionDigits != 0 || price.Amount != 1500 {
		t.Fatalf("expected 1500 JPY with 0 fraction digits, got %+v", price)
	}
}
