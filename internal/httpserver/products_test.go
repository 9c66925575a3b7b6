package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

func TestListProducts_PassesFilters(t *testing.T) {
	catalog := &stubCatalog{page: &domain.ProductPage{Count: 1, Total: 1, Results: []domain.ProductListItem{{ID: "p1", Name: "Shirt"}}}}
	deps := testDeps()
	deps.Catalog = catalog
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products?limit=5&offset=10&locale=de&currency=EUR&country=DE&customerGroupId=g1&channelId=ch1&staged=true", nil)
	rec := serve(router, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Shirt"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	f := catalog.filters
	if f.Limit != 5 || f.Offset != 10 || f.Locale != "de" || f.Currency != "EUR" || f.Country != "DE" ||
		f.CustomerGroupID != "g1" || f.ChannelID != "ch1" || !f.Staged {
		t.Fatalf("unexpected filters %+v", f)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	catalog := &stubCatalog{err: &domain.NotFoundError{Resource: "product", Key: "ghost", Tried: []string{"id", "slug"}}}
	deps := testDeps()
	deps.Catalog = catalog
	router := newTestRouter(t, deps)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/storefront/products/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if catalog.key != "ghost" || !strings.Contains(rec.Body.String(), "id, slug") {
		t.Fatalf("unexpected lookup %q body=%s", catalog.key, rec.Body.String())
	}
}

func TestGetProduct_UpstreamFailure(t *testing.T) {
	deps := testDeps()
	deps.Catalog = &stubCatalog{err: &domain.AuthError{Status: http.StatusUnauthorized}}
	router := newTestRouter(t, deps)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/storefront/products/p1", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func adminRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateProduct(t *testing.T) {
	admin := &stubAdmin{product: &commercetools.Product{ID: "prod-1", Version: 2}}
	deps := testDeps()
	deps.Admin = admin
	router := newTestRouter(t, deps)

	rec := serve(router, adminRequest(http.MethodPost, "/api/products", `{"name":"Mug","currencyCode":"USD","centAmount":1299,"sku":"MUG-1"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) || !strings.Contains(rec.Body.String(), `"id":"prod-1"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if admin.input.Name != "Mug" || *admin.input.CentAmount != 1299 {
		t.Fatalf("unexpected input %+v", admin.input)
	}

	rec = serve(router, adminRequest(http.MethodPost, "/api/products", `{"name":"Mug","currencyCode":"USD"}`))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"ok":false`) {
		t.Fatalf("expected 400 without centAmount, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateProduct_ValidationFromService(t *testing.T) {
	deps := testDeps()
	deps.Admin = &stubAdmin{err: domain.NewValidationError("sku", "required")}
	router := newTestRouter(t, deps)

	rec := serve(router, adminRequest(http.MethodPost, "/api/products", `{"name":"Mug","currencyCode":"USD","centAmount":1}`))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "sku: required") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateAndPublishProduct(t *testing.T) {
	admin := &stubAdmin{product: &commercetools.Product{ID: "prod-1", Version: 4}}
	deps := testDeps()
	deps.Admin = admin
	router := newTestRouter(t, deps)

	rec := serve(router, adminRequest(http.MethodPatch, "/api/products/prod-1", `{"version":3,"actions":[{"action":"changeName","name":{"en":"New"}}]}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if admin.id != "prod-1" || admin.version != 3 || admin.actions[0]["action"] != "changeName" {
		t.Fatalf("unexpected update %s/%d %v", admin.id, admin.version, admin.actions)
	}

	rec = serve(router, adminRequest(http.MethodPost, "/api/products/prod-1/publish", `{"version":4}`))
	if rec.Code != http.StatusOK || !admin.published || admin.version != 4 {
		t.Fatalf("unexpected publish %d published=%v version=%d", rec.Code, admin.published, admin.version)
	}

	rec = serve(router, adminRequest(http.MethodPost, "/api/products/prod-1/unpublish", `{"version":5}`))
	if rec.Code != http.StatusOK || admin.published || admin.version != 5 {
		t.Fatalf("unexpected unpublish %d published=%v version=%d", rec.Code, admin.published, admin.version)
	}
}

func TestDeleteProduct(t *testing.T) {
	admin := &stubAdmin{product: &commercetools.Product{ID: "prod-1"}}
	deps := testDeps()
	deps.Admin = admin
	router := newTestRouter(t, deps)

	rec := serve(router, httptest.NewRequest(http.MethodDelete, "/api/products/prod-1?version=7", nil))
	if rec.Code != http.StatusOK || admin.version != 7 {
		t.Fatalf("unexpected delete %d version=%d", rec.Code, admin.version)
	}

	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/api/products/prod-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without version, got %d", rec.Code)
	}

	admin.err = &domain.APIError{Method: http.MethodDelete, Path: "/products/prod-1", Status: http.StatusConflict}
	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/api/products/prod-1?version=1", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict passthrough, got %d", rec.Code)
	}
}
