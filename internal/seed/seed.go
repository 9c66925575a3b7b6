package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*commercetools.Product, error)
}

const locale = "en-US"

var electronicsType = domain.ProductTypeConfig{
	Key: "electronics-type",
	Attributes: []domain.AttributeSpec{
		{Name: "brand", Type: "enum", Values: []domain.EnumValue{
			{Key: "google", Label: "Google"},
			{Key: "apple", Label: "Apple"},
			{Key: "samsung", Label: "Samsung"},
		}},
		{Name: "model", Type: "text"},
		{Name: "warrantyYears", Type: "number"},
		{Name: "color", Type: "enum", Values: []domain.EnumValue{
			{Key: "black", Label: "Black"},
			{Key: "white", Label: "White"},
			{Key: "blue", Label: "Blue"},
			{Key: "silver", Label: "Silver"},
			{Key: "gray", Label: "Gray"},
		}},
		{Name: "storage", Type: "enum", Values: []domain.EnumValue{
			{Key: "128gb", Label: "128 GB"},
			{Key: "256gb", Label: "256 GB"},
			{Key: "512gb", Label: "512 GB"},
		}},
		{Name: "is5g", Type: "boolean"},
	},
}

func cents(v int64) *int64 {
	return &v
}

// Products returns the demo catalog. Keys, slugs and skus carry suffix so
// repeated runs never collide upstream.
func Products(suffix string) []domain.ProductInput {
	lower := strings.ToLower(suffix)
	return []domain.ProductInput{
		{
			Key:               "prod-smartphone-alpha-" + lower,
			Name:              "Smartphone Alpha",
			Slug:              "smartphone-alpha-" + lower,
			Description:       "A sleek 5G smartphone with long battery life.",
			Locale:            locale,
			CurrencyCode:      "USD",
			CentAmount:        cents(49900),
			SKU:               "PHONE-ALPHA-" + suffix,
			ProductTypeConfig: &electronicsType,
			Attributes: map[string]interface{}{
				"brand": "google", "model": "Alpha", "warrantyYears": 2,
				"color": "black", "storage": "128gb", "is5g": true,
			},
			Variants: []domain.VariantInput{
				{
					SKU:        "PHONE-ALPHA-BLUE-" + suffix,
					Attributes: map[string]interface{}{"color": "blue", "storage": "128gb", "is5g": true},
					Images:     []domain.ImageInput{{URL: "https://images.example.com/alpha-blue-front.jpg", W: 800, H: 800}},
				},
				{
					SKU:        "PHONE-ALPHA-WHITE-" + suffix,
					Attributes: map[string]interface{}{"color": "white", "storage": "256gb", "is5g": true},
					CentAmount: cents(54900),
					Images:     []domain.ImageInput{{URL: "https://images.example.com/alpha-white-front.jpg", W: 800, H: 800}},
				},
			},
		},
		{
			Key:               "prod-laptop-nova-" + lower,
			Name:              "Laptop Nova",
			Slug:              "laptop-nova-" + lower,
			Description:       "Lightweight laptop with powerful performance.",
			Locale:            locale,
			CurrencyCode:      "USD",
			CentAmount:        cents(119900),
			SKU:               "LAPTOP-NOVA-" + suffix,
			ProductTypeConfig: &electronicsType,
			Attributes: map[string]interface{}{
				"brand": "apple", "model": "Nova", "warrantyYears": 1,
				"color": "silver", "storage": "512gb", "is5g": false,
			},
			Images: []domain.ImageInput{{URL: "https://images.example.com/nova-front.jpg", W: 1200, H: 800}},
		},
	}
}

// NewSuffix returns a short upper-case token for seed keys.
func NewSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
}

// Apply creates the demo catalog upstream.
func Apply(ctx context.Context, creator ProductCreator, logger *log.Logger, suffix string) ([]*commercetools.Product, error) {
	var created []*commercetools.Product
	for _, in := range Products(suffix) {
		p, err := creator.CreateProduct(ctx, in)
		if err != nil {
			return created, fmt.Errorf("create product %s: %w", in.Key, err)
		}
		logger.Printf("seed: created product key=%s id=%s version=%d", in.Key, p.ID, p.Version)
		created = append(created, p)
	}
	return created, nil
}
