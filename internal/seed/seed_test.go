package seed

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

type stubCreator struct {
	inputs []domain.ProductInput
	failAt int
}

func (s *stubCreator) CreateProduct(_ context.Context, in domain.ProductInput) (*commercetools.Product, error) {
	if s.failAt > 0 && len(s.inputs)+1 == s.failAt {
		return nil, errors.New("boom")
	}
	s.inputs = append(s.inputs, in)
	return &commercetools.Product{ID: "id-" + in.Key, Version: 1}, nil
}

func TestApply(t *testing.T) {
	creator := &stubCreator{}
	products, err := Apply(context.Background(), creator, log.New(io.Discard, "", 0), "AB12C")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(products) != 2 || len(creator.inputs) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	phone := creator.inputs[0]
	if phone.Key != "prod-smartphone-alpha-ab12c" || phone.SKU != "PHONE-ALPHA-AB12C" || phone.Slug != "smartphone-alpha-ab12c" {
		t.Fatalf("unexpected identifiers %+v", phone)
	}
	if phone.ProductTypeConfig == nil || phone.ProductTypeConfig.Key != "electronics-type" || len(phone.Variants) != 2 {
		t.Fatalf("unexpected phone %+v", phone)
	}
}

func TestApply_StopsOnError(t *testing.T) {
	creator := &stubCreator{failAt: 2}
	products, err := Apply(context.Background(), creator, log.New(io.Discard, "", 0), "X")
	if err == nil || !strings.Contains(err.Error(), "prod-laptop-nova-x") {
		t.Fatalf("expected laptop failure, got %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected the phone to be returned, got %d", len(products))
	}
}

func TestNewSuffix(t *testing.T) {
	a, b := NewSuffix(), NewSuffix()
	if len(a) != 5 || strings.ToUpper(a) != a {
		t.Fatalf("unexpected suffix %q", a)
	}
	if a == b {
		t.Fatalf("suffixes should differ")
	}
}
