package payment

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
)

var successTemplate = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><title>Payment Successful - The Scrap Shop</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px; background: #1a1a1a; color: white;">
    <h1 style="color: #28a745;">✅ Payment Successful!</h1>
    <p>Thank you <strong>{{.Username}}</strong>!</p>
    <p>Your purchase of <strong>{{.Product}}</strong> for <strong>${{.Amount}}</strong> has been processed.</p>
    <p>You will receive your items in-game shortly.</p>
    <a href="/" style="color: #007bff; text-decoration: none;">&larr; Back to Shop</a>
</body>
</html>
`))

const cancelPage = `<!DOCTYPE html>
<html>
<head><title>Payment Cancelled - The Scrap Shop</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px; background: #1a1a1a; color: white;">
    <h1 style="color: #ffc107;">⚠️ Payment Cancelled</h1>
    <p>Your payment was cancelled. No charges were made.</p>
    <a href="/" style="color: #007bff; text-decoration: none;">&larr; Back to Shop</a>
</body>
</html>
`

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleCreatePayment starts a payment with the provider and returns the
// approval URL for the client-side redirect.
func (h *Handler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product  string `json:"product"`
		Username string `json:"username"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	approvalURL, err := h.service.CreatePayment(r.Context(), req.Product, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProduct):
			h.respondError(w, http.StatusBadRequest, "Invalid product")
		case errors.Is(err, ErrReservedDelimiter):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			// Provider detail is already logged by the service.
			h.respondError(w, http.StatusInternalServerError, "Payment creation failed")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"approval_url": approvalURL,
	})
}

// HandleExecutePayment is the provider's return redirect. It answers the payer
// directly with HTML, not JSON.
func (h *Handler) HandleExecutePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	payerID := r.URL.Query().Get("PayerID")

	receipt, err := h.service.ExecutePayment(r.Context(), paymentID, payerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPaymentInfo):
			http.Error(w, "Payment execution failed: Missing payment information", http.StatusBadRequest)
		case errors.Is(err, ErrMalformedCustomData):
			http.Error(w, "Payment execution error", http.StatusInternalServerError)
		default:
			http.Error(w, "Payment execution failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = successTemplate.Execute(w, map[string]string{
		"Username": receipt.Username,
		"Product":  receipt.Product,
		"Amount":   receipt.Amount.StringFixed(2),
	})
	if err != nil {
		log.Printf("Failed to render confirmation page: %v", err)
	}
}

// HandleCancelPayment renders the static cancellation page.
func (h *Handler) HandleCancelPayment(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(cancelPage)); err != nil {
		log.Printf("Failed to write cancellation page: %v", err)
	}
}
