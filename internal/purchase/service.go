package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thescrapshop/backend/internal/notify"
)

var (
	ErrEmptyUsername = errors.New("Username cannot be empty")
	ErrEmptyItem     = errors.New("Item cannot be empty")
	ErrNegativePrice = errors.New("Price cannot be negative")
	ErrInvalidPrice  = errors.New("Price must be a valid number")
)

// MissingFieldsError lists the required request fields that were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func IsValidationError(err error) bool {
	var missingErr *MissingFieldsError
	if errors.As(err, &missingErr) {
		return true
	}
	return errors.Is(err, ErrEmptyUsername) ||
		errors.Is(err, ErrEmptyItem) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrInvalidPrice)
}

// Report is the validated purchase data echoed back to the caller. It is never
// persisted.
type Report struct {
	Username string          `json:"username"`
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
}

type Service interface {
	Record(ctx context.Context, username, item string, price interface{}) (*Report, error)
}

type service struct {
	notifier notify.Notifier
}

func NewService(notifier notify.Notifier) Service {
	return &service{notifier: notifier}
}

// Record validates a manual purchase report and announces it on the webhook.
// A missing webhook configuration is fatal on this path.
func (s *service) Record(ctx context.Context, username, item string, price interface{}) (*Report, error) {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if item == "" {
		missing = append(missing, "item")
	}
	if price == nil || price == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, ErrEmptyItem
	}

	amount, err := parsePrice(price)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, ErrNegativePrice
	}

	content := fmt.Sprintf(
		"🛒 **Purchase Made!**\n👤 **Username:** %s\n📦 **Item:** %s\n💰 **Price:** $%s",
		username, item, amount.StringFixed(2),
	)
	if err := s.notifier.Notify(ctx, content); err != nil {
		return nil, err
	}

	return &Report{Username: username, Item: item, Price: amount}, nil
}

func parsePrice(price interface{}) (decimal.Decimal, error) {
	switch p := price.(type) {
	case float64:
		return decimal.NewFromFloat(p), nil
	case json.Number:
		d, err := decimal.NewFromString(p.String())
		if err != nil {
			return decimal.Zero, ErrInvalidPrice
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return decimal.Zero, ErrInvalidPrice
		}
		return d, nil
	default:
		return decimal.Zero, ErrInvalidPrice
	}
}
