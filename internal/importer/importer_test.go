package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

type stubCreator struct {
	items []domain.ProductInput
	err   error
}

func (s *stubCreator) CreateProduct(_ context.Context, in domain.ProductInput) (*commercetools.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, in)
	return &commercetools.Product{ID: "id-" + in.Key}, nil
}

const exportCSV = `key,name.en,description.en,slug.en,variants.sku,variants.prices.value.centAmount,variants.prices.value.currencyCode,variants.images.url
prod-1,Prod One,Desc one,prod-one,SKU-1,100,EUR,https://example.com/img1.jpg
,,,,,,,https://example.com/img2.jpg
,,,,SKU-1B,150,EUR,https://example.com/img3.jpg
,,,,,,,https://example.com/img4.jpg
prod-2,Prod Two,Desc two,,SKU-2,200,USD,
`

func TestCSVImporter_Run(t *testing.T) {
	creator := &stubCreator{}
	imp := NewCSVImporter(strings.NewReader(exportCSV), creator, "apparel")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(creator.items) != 2 {
		t.Fatalf("expected 2 products created, got %d/%d", count, len(creator.items))
	}

	first := creator.items[0]
	if first.Key != "prod-1" || first.SKU != "SKU-1" || *first.CentAmount != 100 || first.CurrencyCode != "EUR" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.Slug != "prod-one" || first.Locale != "en" || first.ProductTypeKey != "apparel" {
		t.Fatalf("unexpected product metadata: %+v", first)
	}
	if len(first.Images) != 2 {
		t.Fatalf("expected 2 master images, got %d", len(first.Images))
	}
	if len(first.Variants) != 1 || first.Variants[0].SKU != "SKU-1B" || len(first.Variants[0].Images) != 2 {
		t.Fatalf("unexpected variants %+v", first.Variants)
	}
	if creator.items[1].Slug != "" || len(creator.items[1].Images) != 0 {
		t.Fatalf("unexpected second product %+v", creator.items[1])
	}
}

func TestCSVImporter_DryRunCreatesNothing(t *testing.T) {
	creator := &stubCreator{}
	imp := NewCSVImporter(strings.NewReader(exportCSV), creator, "").DryRun()

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if count != 2 || len(imp.Parsed()) != 2 || len(creator.items) != 0 {
		t.Fatalf("dry run should parse without creating: count=%d parsed=%d created=%d", count, len(imp.Parsed()), len(creator.items))
	}
}

func TestCSVImporter_MissingFields(t *testing.T) {
	csvData := "key,name.en,variants.sku\nprod-1,Prod One,SKU-1\n"
	_, err := NewCSVImporter(strings.NewReader(csvData), &stubCreator{}, "").Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "prod-1") {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestCSVImporter_StopsOnCreateError(t *testing.T) {
	boom := errors.New("upstream down")
	count, err := NewCSVImporter(strings.NewReader(exportCSV), &stubCreator{err: boom}, "").Run(context.Background())
	if !errors.Is(err, boom) || count != 0 {
		t.Fatalf("expected create error after 0 imports, got %d %v", count, err)
	}
}
