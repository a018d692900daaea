package payment

import "context"

// Provider is the external payment service. It owns all payment state; this
// system only writes a payment at create time and reads it back at execute
// time.
type Provider interface {
	Create(ctx context.Context, req *PaymentRequest) (*Payment, error)
	Get(ctx context.Context, paymentID string) (*Payment, error)
	Execute(ctx context.Context, paymentID, payerID string) (*Payment, error)
}

// PaymentRequest mirrors the provider's v1 payment object for the "sale"
// intent.
type PaymentRequest struct {
	Intent       string        `json:"intent"`
	Payer        Payer         `json:"payer"`
	RedirectURLs RedirectURLs  `json:"redirect_urls"`
	Transactions []Transaction `json:"transactions"`
}

type Payer struct {
	PaymentMethod string `json:"payment_method"`
}

type RedirectURLs struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type Transaction struct {
	ItemList    *ItemList `json:"item_list,omitempty"`
	Amount      Amount    `json:"amount"`
	Description string    `json:"description,omitempty"`
	// Custom carries the encoded purchase context through the provider's
	// redirect round-trip. It is the only place order state survives
	// between create and execute.
	Custom string `json:"custom,omitempty"`
}

type ItemList struct {
	Items []Item `json:"items"`
}

type Item struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

type Amount struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type Payment struct {
	ID           string        `json:"id"`
	Intent       string        `json:"intent"`
	State        string        `json:"state"`
	Payer        Payer         `json:"payer"`
	Transactions []Transaction `json:"transactions"`
	Links        []Link        `json:"links"`
}
