package product

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

const DefaultProductTypeKey = "default-product-type"

// DefaultProductTypeAttributes is the schema used when a request brings none.
var DefaultProductTypeAttributes = []domain.AttributeSpec{
	{Name: "color", Type: "enum", Values: []domain.EnumValue{{Key: "black", Label: "Black"}}},
	{Name: "size", Type: "enum", Values: []domain.EnumValue{{Key: "m", Label: "M"}}},
}

// Admin manages product types and products upstream.
type Admin struct {
	gw     gateway
	logger *log.Logger
}

func NewAdmin(gw gateway, logger *log.Logger) *Admin {
	return &Admin{gw: gw, logger: logger}
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace   = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// ToSlug lower-cases s, drops anything but letters, digits, spaces and dashes,
// and joins words with single dashes.
func ToSlug(s string) string {
	out := strings.TrimSpace(strings.ToLower(s))
	out = slugInvalid.ReplaceAllString(out, "")
	out = slugSpace.ReplaceAllString(out, "-")
	return slugDashes.ReplaceAllString(out, "-")
}

func attributeDefinition(a domain.AttributeSpec) commercetools.AttributeDefinition {
	label := a.Name
	if r, size := utf8.DecodeRuneInString(label); r != utf8.RuneError {
		label = string(unicode.ToUpper(r)) + label[size:]
	}
	searchable := true
	if a.Searchable != nil {
		searchable = *a.Searchable
	}
	def := commercetools.AttributeDefinition{
		Name:                a.Name,
		Label:               commercetools.LocalizedString{"en": label},
		IsRequired:          a.Required,
		IsSearchable:        searchable,
		AttributeConstraint: "None",
		InputHint:           "SingleLine",
	}
	switch a.Type {
	case "enum":
		def.Type = commercetools.AttributeType{Name: "enum", Values: enumValues(a.Values)}
	case "number", "boolean":
		def.Type = commercetools.AttributeType{Name: a.Type}
	default:
		def.Type = commercetools.AttributeType{Name: "text"}
	}
	return def
}

func enumValues(in []domain.EnumValue) []commercetools.EnumValue {
	out := make([]commercetools.EnumValue, 0, len(in))
	for _, v := range in {
		out = append(out, commercetools.EnumValue{Key: v.Key, Label: v.Label})
	}
	return out
}

func validateAttributes(attrs []domain.AttributeSpec) error {
	for _, a := range attrs {
		if strings.TrimSpace(a.Name) == "" {
			return domain.NewValidationError("attributes", "attribute name required")
		}
		switch a.Type {
		case "", "text", "number", "boolean":
		case "enum":
			if len(a.Values) == 0 {
				return domain.NewValidationError("attributes", fmt.Sprintf("enum attribute %q needs values", a.Name))
			}
		default:
			return domain.NewValidationError("attributes", fmt.Sprintf("unsupported attribute type %q", a.Type))
		}
	}
	return nil
}

// EnsureProductType creates the product type or adds whatever attributes and
// enum values it lacks, in a single update. Existing definitions are never
// changed or removed.
func (a *Admin) EnsureProductType(ctx context.Context, key string, attrs []domain.AttributeSpec) (*commercetools.ProductType, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.NewValidationError("productTypeKey", "required")
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	var existing commercetools.ProductType
	found, err := a.gw.Find(ctx, "/product-types/key="+url.PathEscape(key), nil, &existing)
	if err != nil {
		return nil, fmt.Errorf("get product type %s: %w", key, err)
	}

	if !found {
		draft := commercetools.ProductTypeDraft{
			Key:         key,
			Name:        key,
			Description: "Product type for " + key,
			Attributes:  make([]commercetools.AttributeDefinition, 0, len(attrs)),
		}
		for _, attr := range attrs {
			draft.Attributes = append(draft.Attributes, attributeDefinition(attr))
		}
		var created commercetools.ProductType
		if err := a.gw.Post(ctx, "/product-types", nil, draft, &created); err != nil {
			return nil, fmt.Errorf("create product type %s: %w", key, err)
		}
		a.logger.Printf("product admin: created product type key=%s", key)
		return &created, nil
	}

	var actions []commercetools.ProductTypeUpdateAction
	for _, attr := range attrs {
		have, ok := existing.Attribute(attr.Name)
		if !ok {
			actions = append(actions, commercetools.AddAttributeDefinition(attributeDefinition(attr)))
			continue
		}
		if attr.Type != "enum" || have.Type.Name != "enum" {
			continue
		}
		known := make(map[string]bool, len(have.Type.Values))
		for _, v := range have.Type.Values {
			known[v.Key] = true
		}
		for _, v := range attr.Values {
			if !known[v.Key] {
				actions = append(actions, commercetools.AddPlainEnumValue(attr.Name, commercetools.EnumValue{Key: v.Key, Label: v.Label}))
			}
		}
	}
	if len(actions) == 0 {
		return &existing, nil
	}

	var updated commercetools.ProductType
	body := commercetools.Update[commercetools.ProductTypeUpdateAction]{Version: existing.Version, Actions: actions}
	if err := a.gw.Post(ctx, "/product-types/"+url.PathEscape(existing.ID), nil, body, &updated); err != nil {
		return nil, fmt.Errorf("update product type %s: %w", key, err)
	}
	a.logger.Printf("product admin: updated product type key=%s actions=%d", key, len(actions))
	return &updated, nil
}

func attributesFromMap(m map[string]interface{}) []commercetools.Attribute {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]commercetools.Attribute, 0, len(names))
	for _, name := range names {
		out = append(out, commercetools.Attribute{Name: name, Value: m[name]})
	}
	return out
}

func images(in []domain.ImageInput) []commercetools.Image {
	if len(in) == 0 {
		return nil
	}
	out := make([]commercetools.Image, 0, len(in))
	for _, img := range in {
		out = append(out, commercetools.Image{URL: img.URL, Dimensions: &commercetools.ImageDimensions{W: img.W, H: img.H}})
	}
	return out
}

func validateProductInput(in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	if strings.TrimSpace(in.CurrencyCode) == "" {
		return domain.NewValidationError("currencyCode", "required")
	}
	if in.CentAmount == nil {
		return domain.NewValidationError("centAmount", "required")
	}
	if *in.CentAmount < 0 {
		return domain.NewValidationError("centAmount", "must not be negative")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return domain.NewValidationError("sku", "required")
	}
	for i, v := range in.Variants {
		if strings.TrimSpace(v.SKU) == "" {
			return domain.NewValidationError(fmt.Sprintf("variants[%d].sku", i), "required")
		}
	}
	return nil
}

// BuildProductDraft turns an admin request into a product draft for productTypeID.
func BuildProductDraft(in domain.ProductInput, productTypeID string) commercetools.ProductDraft {
	locale := in.Locale
	if locale == "" {
		locale = "en"
	}
	slug := in.Slug
	if slug == "" {
		slug = ToSlug(in.Name)
	}
	publish := true
	if in.Publish != nil {
		publish = *in.Publish
	}
	currency := strings.ToUpper(in.CurrencyCode)
	price := func(cur string, cents int64) []commercetools.PriceDraft {
		return []commercetools.PriceDraft{{Value: commercetools.TypedMoney{CurrencyCode: cur, CentAmount: cents}}}
	}

	draft := commercetools.ProductDraft{
		Key:         in.Key,
		ProductType: commercetools.Reference{TypeID: "product-type", ID: productTypeID},
		Name:        commercetools.LocalizedString{locale: in.Name},
		Slug:        commercetools.LocalizedString{locale: slug},
		MasterVariant: commercetools.ProductVariantDraft{
			SKU:        in.SKU,
			Attributes: attributesFromMap(in.Attributes),
			Prices:     price(currency, *in.CentAmount),
			Images:     images(in.Images),
		},
		Publish: publish,
	}
	if in.Description != "" {
		draft.Description = commercetools.LocalizedString{locale: in.Description}
	}
	for _, v := range in.Variants {
		cur := currency
		if v.CurrencyCode != "" {
			cur = strings.ToUpper(v.CurrencyCode)
		}
		cents := *in.CentAmount
		if v.CentAmount != nil {
			cents = *v.CentAmount
		}
		draft.Variants = append(draft.Variants, commercetools.ProductVariantDraft{
			SKU:        v.SKU,
			Attributes: attributesFromMap(v.Attributes),
			Prices:     price(cur, cents),
			Images:     images(v.Images),
		})
	}
	return draft
}

// CreateProduct ensures the product type and creates the product, published
// unless the request says otherwise. A product the platform left unpublished
// is published with a follow-up update.
func (a *Admin) CreateProduct(ctx context.Context, in domain.ProductInput) (*commercetools.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	typeKey := in.ProductTypeKey
	if typeKey == "" {
		typeKey = DefaultProductTypeKey
	}
	attrs := DefaultProductTypeAttributes
	if in.ProductTypeConfig != nil {
		typeKey = in.ProductTypeConfig.Key
		attrs = in.ProductTypeConfig.Attributes
	}
	pt, err := a.EnsureProductType(ctx, typeKey, attrs)
	if err != nil {
		return nil, err
	}

	var created commercetools.Product
	if err := a.gw.Post(ctx, "/products", nil, BuildProductDraft(in, pt.ID), &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	a.logger.Printf("product admin: created product id=%s sku=%s", created.ID, in.SKU)

	if (in.Publish == nil || *in.Publish) && !created.MasterData.Published {
		return a.Publish(ctx, created.ID, created.Version)
	}
	return &created, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, version int64, actions []commercetools.ProductUpdateAction) (*commercetools.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if version <= 0 {
		return nil, domain.NewValidationError("version", "required")
	}
	if len(actions) == 0 {
		return nil, domain.NewValidationError("actions", "at least one action is required")
	}
	for i, act := range actions {
		if name, _ := act["action"].(string); name == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("actions[%d].action", i), "required")
		}
	}

	var out commercetools.Product
	body := commercetools.Update[commercetools.ProductUpdateAction]{Version: version, Actions: actions}
	if err := a.gw.Post(ctx, "/products/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &out, nil
}

func (a *Admin) Publish(ctx context.Context, id string, version int64) (*commercetools.Product, error) {
	return a.UpdateProduct(ctx, id, version, []commercetools.ProductUpdateAction{commercetools.Publish()})
}

func (a *Admin) Unpublish(ctx context.Context, id string, version int64) (*commercetools.Product, error) {
	return a.UpdateProduct(ctx, id, version, []commercetools.ProductUpdateAction{commercetools.Unpublish()})
}

func (a *Admin) DeleteProduct(ctx context.Context, id string, version int64) (*commercetools.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	if version <= 0 {
		return nil, domain.NewValidationError("version", "required")
	}
	var out commercetools.Product
	q := url.Values{"version": {strconv.FormatInt(version, 10)}}
	if err := a.gw.Delete(ctx, "/products/"+url.PathEscape(id), q, &out); err != nil {
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}
	a.logger.Printf("product admin: deleted product id=%s", id)
	return &out, nil
}
