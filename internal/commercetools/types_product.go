package commercetools

import "time"

type Product struct {
	ID             string             `json:"id"`
	Key            string             `json:"key,omitempty"`
	Version        int64              `json:"version"`
	ProductType    Reference          `json:"productType"`
	MasterData     ProductCatalogData `json:"masterData"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastModifiedAt time.Time          `json:"lastModifiedAt"`
}

type ProductCatalogData struct {
	Published        bool        `json:"published"`
	HasStagedChanges bool        `json:"hasStagedChanges"`
	Current          ProductData `json:"current"`
	Staged           ProductData `json:"staged"`
}

type ProductData struct {
	Name          LocalizedString  `json:"name"`
	Description   LocalizedString  `json:"description,omitempty"`
	Slug          LocalizedString  `json:"slug"`
	MasterVariant ProductVariant   `json:"masterVariant"`
	Variants      []ProductVariant `json:"variants"`
}

type ProductDraft struct {
	Key           string                `json:"key,omitempty"`
	ProductType   Reference             `json:"productType"`
	Name          LocalizedString       `json:"name"`
	Slug          LocalizedString       `json:"slug"`
	Description   LocalizedString       `json:"description,omitempty"`
	MasterVariant ProductVariantDraft   `json:"masterVariant"`
	Variants      []ProductVariantDraft `json:"variants,omitempty"`
	Publish       bool                  `json:"publish"`
}

type ProductVariantDraft struct {
	SKU        string       `json:"sku,omitempty"`
	Key        string       `json:"key,omitempty"`
	Prices     []PriceDraft `json:"prices,omitempty"`
	Attributes []Attribute  `json:"attributes,omitempty"`
	Images     []Image      `json:"images,omitempty"`
}

type PriceDraft struct {
	Value   TypedMoney `json:"value"`
	Country string     `json:"country,omitempty"`
}

type ProductType struct {
	ID          string                `json:"id"`
	Key         string                `json:"key,omitempty"`
	Version     int64                 `json:"version"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Attributes  []AttributeDefinition `json:"attributes"`
}

// Attribute returns the definition named name, if present.
func (pt *ProductType) Attribute(name string) (AttributeDefinition, bool) {
	for _, a := range pt.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDefinition{}, false
}

type ProductTypeDraft struct {
	Key         string                `json:"key"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Attributes  []AttributeDefinition `json:"attributes"`
}

type AttributeDefinition struct {
	Name                string          `json:"name"`
	Label               LocalizedString `json:"label"`
	Type                AttributeType   `json:"type"`
	IsRequired          bool            `json:"isRequired"`
	IsSearchable        bool            `json:"isSearchable"`
	AttributeConstraint string          `json:"attributeConstraint,omitempty"`
	InputHint           string          `json:"inputHint,omitempty"`
}

type AttributeType struct {
	Name   string      `json:"name"`
	Values []EnumValue `json:"values,omitempty"`
}

type EnumValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ProductTypeUpdateAction struct {
	Action        string               `json:"action"`
	Attribute     *AttributeDefinition `json:"attribute,omitempty"`
	AttributeName string               `json:"attributeName,omitempty"`
	Value         *EnumValue           `json:"value,omitempty"`
}

func AddAttributeDefinition(def AttributeDefinition) ProductTypeUpdateAction {
	return ProductTypeUpdateAction{Action: "addAttributeDefinition", Attribute: &def}
}

func AddPlainEnumValue(attributeName string, value EnumValue) ProductTypeUpdateAction {
	return ProductTypeUpdateAction{Action: "addPlainEnumValue", AttributeName: attributeName, Value: &value}
}

// ProductUpdateAction is kept untyped so callers can pass any platform action through.
type ProductUpdateAction map[string]interface{}

func Publish() ProductUpdateAction {
	return ProductUpdateAction{"action": "publish", "scope": "All"}
}

func Unpublish() ProductUpdateAction {
	return ProductUpdateAction{"action": "unpublish"}
}
