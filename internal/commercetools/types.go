package commercetools

import (
	"sort"
	"time"

	"storefront-bff/internal/domain"
)

// LocalizedString maps locale tags to values.
type LocalizedString map[string]string

// Pick returns the value for locale, else the value of the alphabetically first locale.
func (l LocalizedString) Pick(locale string) string {
	if len(l) == 0 {
		return ""
	}
	if v, ok := l[locale]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if l[k] != "" {
			return l[k]
		}
	}
	return ""
}

// TypedMoney is the platform money representation. Type and FractionDigits are
// omitted on drafts. Zero-decimal currencies report fractionDigits 0, so an
// absent value is nil rather than 0.
type TypedMoney struct {
	Type           string `json:"type,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits *int   `json:"fractionDigits,omitempty"`
}

// Digits returns a FractionDigits value.
func Digits(n int) *int {
	return &n
}

// DigitsOrDefault reports the fraction digits, 2 when the platform sent none.
func (m TypedMoney) DigitsOrDefault() int {
	if m.FractionDigits == nil || *m.FractionDigits < 0 {
		return domain.DefaultFractionDigits
	}
	return *m.FractionDigits
}

func (m TypedMoney) Money() domain.Money {
	return domain.Money{CentAmount: m.CentAmount, CurrencyCode: m.CurrencyCode, FractionDigits: m.DigitsOrDefault()}
}

// Reference doubles as a ResourceIdentifier on drafts and update actions.
type Reference struct {
	TypeID string `json:"typeId,omitempty"`
	ID     string `json:"id,omitempty"`
	Key    string `json:"key,omitempty"`
}

// Update is the versioned body of every update endpoint.
type Update[A any] struct {
	Version int64 `json:"version"`
	Actions []A   `json:"actions"`
}

// PagedQueryResponse is the envelope of every query endpoint.
type PagedQueryResponse[T any] struct {
	Limit   int  `json:"limit"`
	Count   int  `json:"count"`
	Total   *int `json:"total,omitempty"`
	Offset  int  `json:"offset"`
	Results []T  `json:"results"`
}

type Address struct {
	ID           string `json:"id,omitempty"`
	Key          string `json:"key,omitempty"`
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	StreetName   string `json:"streetName,omitempty"`
	StreetNumber string `json:"streetNumber,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country"`
	Company      string `json:"company,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
}

type Image struct {
	URL        string           `json:"url"`
	Label      string           `json:"label,omitempty"`
	Dimensions *ImageDimensions `json:"dimensions,omitempty"`
}

type ImageDimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Attribute struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type DiscountedPrice struct {
	Value    TypedMoney `json:"value"`
	Discount Reference  `json:"discount"`
}

type Price struct {
	ID            string           `json:"id,omitempty"`
	Value         TypedMoney       `json:"value"`
	Country       string           `json:"country,omitempty"`
	CustomerGroup *Reference       `json:"customerGroup,omitempty"`
	Channel       *Reference       `json:"channel,omitempty"`
	Discounted    *DiscountedPrice `json:"discounted,omitempty"`
}

// ScopedPrice is the price the platform selected for the request's price scope.
type ScopedPrice struct {
	ID           string           `json:"id,omitempty"`
	Value        TypedMoney       `json:"value"`
	CurrentValue TypedMoney       `json:"currentValue"`
	Country      string           `json:"country,omitempty"`
	Discounted   *DiscountedPrice `json:"discounted,omitempty"`
}

type ProductVariant struct {
	ID                    int          `json:"id"`
	SKU                   string       `json:"sku,omitempty"`
	Key                   string       `json:"key,omitempty"`
	Prices                []Price      `json:"prices,omitempty"`
	Images                []Image      `json:"images,omitempty"`
	Attributes            []Attribute  `json:"attributes,omitempty"`
	ScopedPrice           *ScopedPrice `json:"scopedPrice,omitempty"`
	ScopedPriceDiscounted bool         `json:"scopedPriceDiscounted,omitempty"`
}

type ProductProjection struct {
	ID               string           `json:"id"`
	Key              string           `json:"key,omitempty"`
	Version          int64            `json:"version"`
	ProductType      Reference        `json:"productType"`
	Name             LocalizedString  `json:"name"`
	Description      LocalizedString  `json:"description,omitempty"`
	Slug             LocalizedString  `json:"slug"`
	MasterVariant    ProductVariant   `json:"masterVariant"`
	Variants         []ProductVariant `json:"variants"`
	Published        bool             `json:"published"`
	HasStagedChanges bool             `json:"hasStagedChanges"`
	CreatedAt        time.Time        `json:"createdAt"`
	LastModifiedAt   time.Time        `json:"lastModifiedAt"`
}

type Project struct {
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Version    int64     `json:"version"`
	Countries  []string  `json:"countries"`
	Currencies []string  `json:"currencies"`
	Languages  []string  `json:"languages"`
	TrialUntil string    `json:"trialUntil,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
