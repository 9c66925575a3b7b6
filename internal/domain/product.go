package domain

type PriceView struct {
	Price      *MoneyView `json:"price"`
	Discounted *MoneyView `json:"discounted,omitempty"`
}

type VariantView struct {
	ID     int       `json:"id"`
	SKU    string    `json:"sku,omitempty"`
	Images []string  `json:"images"`
	Price  PriceView `json:"price"`
}

type ProductListItem struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	VariantID int       `json:"variantId"`
	SKU       string    `json:"sku,omitempty"`
	Price     PriceView `json:"price"`
}

type ProductDetail struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	MasterVariant VariantView   `json:"masterVariant"`
	Variants      []VariantView `json:"variants"`
}

type ProductPage struct {
	Count   int               `json:"count"`
	Total   int               `json:"total"`
	Offset  int               `json:"offset"`
	Results []ProductListItem `json:"results"`
}

// AttributeSpec describes one product-type attribute. Type is text, number, boolean or enum.
type AttributeSpec struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Values     []EnumValue `json:"values,omitempty"`
	Required   bool        `json:"required,omitempty"`
	Searchable *bool       `json:"searchable,omitempty"`
}

type EnumValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ProductTypeConfig struct {
	Key        string          `json:"key"`
	Attributes []AttributeSpec `json:"attributes"`
}

type ImageInput struct {
	URL string `json:"url"`
	W   int    `json:"w"`
	H   int    `json:"h"`
}

type VariantInput struct {
	SKU          string                 `json:"sku"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
	CentAmount   *int64                 `json:"centAmount,omitempty"`
	CurrencyCode string                 `json:"currencyCode,omitempty"`
	Images       []ImageInput           `json:"images,omitempty"`
}

// ProductInput is the admin request to create a product with its variants.
type ProductInput struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description,omitempty"`
	CurrencyCode      string                 `json:"currencyCode"`
	CentAmount        *int64                 `json:"centAmount"`
	SKU               string                 `json:"sku"`
	Slug              string                 `json:"slug,omitempty"`
	Locale            string                 `json:"locale,omitempty"`
	Key               string                 `json:"key,omitempty"`
	Publish           *bool                  `json:"publish,omitempty"`
	ProductTypeKey    string                 `json:"productTypeKey,omitempty"`
	ProductTypeConfig *ProductTypeConfig     `json:"productTypeConfig,omitempty"`
	Attributes        map[string]interface{} `json:"attributes,omitempty"`
	Images            []ImageInput           `json:"images,omitempty"`
	Variants          []VariantInput         `json:"variants,omitempty"`
}
