package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thescrapshop/backend/internal/catalog"
	"github.com/thescrapshop/backend/internal/notify"
)

const (
	defaultUsername = "Anonymous"
	currencyUSD     = "USD"
	intentSale      = "sale"
	methodPayPal    = "paypal"
	approvalRel     = "approval_url"
)

// Receipt is what the payer gets back after a successful execution. Read from
// the provider's record once, then discarded.
type Receipt struct {
	Username      string
	Product       string
	Amount        decimal.Decimal
	TransactionID string
}

type Service interface {
	CreatePayment(ctx context.Context, productName, username string) (string, error)
	ExecutePayment(ctx context.Context, paymentID, payerID string) (*Receipt, error)
}

type service struct {
	provider Provider
	catalog  *catalog.Catalog
	notifier notify.Notifier
	ledger   *ExecutedLedger
	baseURL  string
}

func NewService(provider Provider, cat *catalog.Catalog, notifier notify.Notifier, ledger *ExecutedLedger, publicBaseURL string) Service {
	return &service{
		provider: provider,
		catalog:  cat,
		notifier: notifier,
		ledger:   ledger,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

// CreatePayment builds a single-item sale for the product and returns the
// provider's approval URL for the payer redirect.
func (s *service) CreatePayment(ctx context.Context, productName, username string) (string, error) {
	if username == "" {
		username = defaultUsername
	}

	product, ok := s.catalog.Get(productName)
	if !ok {
		return "", ErrInvalidProduct
	}

	custom, err := EncodeCustom(username, product.Name)
	if err != nil {
		return "", err
	}

	price := product.Price.StringFixed(2)
	req := &PaymentRequest{
		Intent: intentSale,
		Payer:  Payer{PaymentMethod: methodPayPal},
		RedirectURLs: RedirectURLs{
			ReturnURL: s.baseURL + "/execute-payment",
			CancelURL: s.baseURL + "/cancel-payment",
		},
		Transactions: []Transaction{{
			ItemList: &ItemList{Items: []Item{{
				Name:        product.Name,
				SKU:         skuFor(product.Name),
				Price:       price,
				Currency:    currencyUSD,
				Quantity:    1,
				Description: product.Description,
			}}},
			Amount:      Amount{Total: price, Currency: currencyUSD},
			Description: fmt.Sprintf("%s purchase for %s", product.Name, username),
			Custom:      custom,
		}},
	}

	created, err := s.provider.Create(ctx, req)
	if err != nil {
		log.Printf("PayPal payment creation failed: %v", err)
		return "", &CreationError{Err: err}
	}

	for _, link := range created.Links {
		if link.Rel == approvalRel {
			return link.Href, nil
		}
	}

	log.Printf("PayPal payment %s returned no approval link", created.ID)
	return "", ErrNoApprovalLink
}

// ExecutePayment finalizes an approved payment and announces it on the
// webhook. Notification failures never fail the execution.
func (s *service) ExecutePayment(ctx context.Context, paymentID, payerID string) (*Receipt, error) {
	if paymentID == "" || payerID == "" {
		return nil, ErrMissingPaymentInfo
	}

	if _, err := s.provider.Get(ctx, paymentID); err != nil {
		log.Printf("PayPal payment lookup failed for %s: %v", paymentID, err)
		return nil, &ExecutionError{Err: err}
	}

	executed, err := s.provider.Execute(ctx, paymentID, payerID)
	if err != nil {
		log.Printf("PayPal payment execution failed for %s: %v", paymentID, err)
		return nil, &ExecutionError{Err: err}
	}

	if len(executed.Transactions) == 0 {
		log.Printf("PayPal payment %s executed without transactions", executed.ID)
		return nil, ErrMalformedCustomData
	}
	tx := executed.Transactions[0]

	username, productName, err := DecodeCustom(tx.Custom)
	if err != nil {
		log.Printf("Could not decode purchase metadata for payment %s: %q", executed.ID, tx.Custom)
		return nil, err
	}

	amount, err := decimal.NewFromString(tx.Amount.Total)
	if err != nil {
		log.Printf("Invalid executed total for payment %s: %q", executed.ID, tx.Amount.Total)
		return nil, fmt.Errorf("%w: invalid transaction total %q", ErrMalformedCustomData, tx.Amount.Total)
	}

	receipt := &Receipt{
		Username:      username,
		Product:       productName,
		Amount:        amount,
		TransactionID: executed.ID,
	}

	// At most one notification per payment id, even if the provider redirect
	// is replayed.
	if s.ledger.MarkExecuted(executed.ID) {
		s.notifySuccess(ctx, receipt)
	}

	return receipt, nil
}

func (s *service) notifySuccess(ctx context.Context, receipt *Receipt) {
	content := fmt.Sprintf(
		"💰 **Payment Successful!**\n👤 **Username:** %s\n📦 **Product:** %s\n💳 **Amount:** $%s\n🆔 **PayPal Transaction:** %s",
		receipt.Username, receipt.Product, receipt.Amount.StringFixed(2), receipt.TransactionID,
	)
	if err := s.notifier.Notify(ctx, content); err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			return
		}
		log.Printf("Payment notification failed for %s: %v", receipt.TransactionID, err)
	}
}

func skuFor(productName string) string {
	return strings.ReplaceAll(strings.ToLower(productName), " ", "_")
}
