package commercetools

import "time"

type Cart struct {
	ID                    string             `json:"id"`
	Version               int64              `json:"version"`
	Key                   string             `json:"key,omitempty"`
	CustomerID            string             `json:"customerId,omitempty"`
	AnonymousID           string             `json:"anonymousId,omitempty"`
	CartState             string             `json:"cartState,omitempty"`
	Country               string             `json:"country,omitempty"`
	Locale                string             `json:"locale,omitempty"`
	LineItems             []LineItem         `json:"lineItems"`
	DiscountCodes         []DiscountCodeInfo `json:"discountCodes"`
	ShippingAddress       *Address           `json:"shippingAddress,omitempty"`
	ShippingInfo          *ShippingInfo      `json:"shippingInfo,omitempty"`
	TaxedPrice            *TaxedPrice        `json:"taxedPrice,omitempty"`
	TotalPrice            TypedMoney         `json:"totalPrice"`
	TotalLineItemQuantity int                `json:"totalLineItemQuantity,omitempty"`
	CreatedAt             time.Time          `json:"createdAt"`
	LastModifiedAt        time.Time          `json:"lastModifiedAt"`
}

func (c *Cart) GetID() string {
	return c.ID
}

// Quantity sums line item quantities.
func (c *Cart) Quantity() int {
	total := 0
	for _, li := range c.LineItems {
		total += li.Quantity
	}
	return total
}

type LineItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductKey  string          `json:"productKey,omitempty"`
	Name        LocalizedString `json:"name"`
	ProductSlug LocalizedString `json:"productSlug,omitempty"`
	Variant     ProductVariant  `json:"variant"`
	Price       Price           `json:"price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  TypedMoney      `json:"totalPrice"`
	AddedAt     *time.Time      `json:"addedAt,omitempty"`
}

type DiscountCodeInfo struct {
	DiscountCode DiscountCodeRef `json:"discountCode"`
	State        string          `json:"state,omitempty"`
}

// DiscountCodeRef carries the expanded discount code when the cart was fetched with expand.
type DiscountCodeRef struct {
	TypeID string        `json:"typeId"`
	ID     string        `json:"id"`
	Obj    *DiscountCode `json:"obj,omitempty"`
}

type DiscountCode struct {
	ID   string          `json:"id"`
	Code string          `json:"code"`
	Name LocalizedString `json:"name,omitempty"`
}

type ShippingInfo struct {
	ShippingMethodName  string          `json:"shippingMethodName"`
	Price               TypedMoney      `json:"price"`
	ShippingRate        *ShippingRate   `json:"shippingRate,omitempty"`
	ShippingMethod      *Reference      `json:"shippingMethod,omitempty"`
	TaxedPrice          *TaxedItemPrice `json:"taxedPrice,omitempty"`
	ShippingMethodState string          `json:"shippingMethodState,omitempty"`
}

type TaxedPrice struct {
	TotalNet   TypedMoney  `json:"totalNet"`
	TotalGross TypedMoney  `json:"totalGross"`
	TotalTax   *TypedMoney `json:"totalTax,omitempty"`
}

type TaxedItemPrice struct {
	TotalNet   TypedMoney  `json:"totalNet"`
	TotalGross TypedMoney  `json:"totalGross"`
	TotalTax   *TypedMoney `json:"totalTax,omitempty"`
}

type CartDraft struct {
	Currency        string   `json:"currency"`
	Country         string   `json:"country,omitempty"`
	Locale          string   `json:"locale,omitempty"`
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
}

// CartUpdateAction covers every cart action the storefront issues. Fields not
// used by an action stay empty and are omitted on the wire.
type CartUpdateAction struct {
	Action         string     `json:"action"`
	ProductID      string     `json:"productId,omitempty"`
	VariantID      int        `json:"variantId,omitempty"`
	SKU            string     `json:"sku,omitempty"`
	LineItemID     string     `json:"lineItemId,omitempty"`
	Quantity       *int       `json:"quantity,omitempty"`
	Code           string     `json:"code,omitempty"`
	DiscountCode   *Reference `json:"discountCode,omitempty"`
	Address        *Address   `json:"address,omitempty"`
	ShippingMethod *Reference `json:"shippingMethod,omitempty"`
}

func AddLineItem(productID string, variantID, quantity int) CartUpdateAction {
	return CartUpdateAction{Action: "addLineItem", ProductID: productID, VariantID: variantID, Quantity: &quantity}
}

func ChangeLineItemQuantity(lineItemID string, quantity int) CartUpdateAction {
	return CartUpdateAction{Action: "changeLineItemQuantity", LineItemID: lineItemID, Quantity: &quantity}
}

func RemoveLineItem(lineItemID string) CartUpdateAction {
	return CartUpdateAction{Action: "removeLineItem", LineItemID: lineItemID}
}

func AddDiscountCode(code string) CartUpdateAction {
	return CartUpdateAction{Action: "addDiscountCode", Code: code}
}

func RemoveDiscountCode(id string) CartUpdateAction {
	return CartUpdateAction{Action: "removeDiscountCode", DiscountCode: &Reference{TypeID: "discount-code", ID: id}}
}

// SetShippingAddress with a nil address unsets it.
func SetShippingAddress(addr *Address) CartUpdateAction {
	return CartUpdateAction{Action: "setShippingAddress", Address: addr}
}

// SetShippingMethod with an empty id unsets it.
func SetShippingMethod(id string) CartUpdateAction {
	a := CartUpdateAction{Action: "setShippingMethod"}
	if id != "" {
		a.ShippingMethod = &Reference{TypeID: "shipping-method", ID: id}
	}
	return a
}

type ShippingMethod struct {
	ID                   string          `json:"id"`
	Key                  string          `json:"key,omitempty"`
	Version              int64           `json:"version,omitempty"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	LocalizedDescription LocalizedString `json:"localizedDescription,omitempty"`
	IsDefault            bool            `json:"isDefault"`
	ZoneRates            []ZoneRate      `json:"zoneRates"`
}

type ZoneRate struct {
	Zone          Reference      `json:"zone"`
	ShippingRates []ShippingRate `json:"shippingRates"`
}

type ShippingRate struct {
	Price      TypedMoney  `json:"price"`
	FreeAbove  *TypedMoney `json:"freeAbove,omitempty"`
	IsMatching *bool       `json:"isMatching,omitempty"`
}
