package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/thescrapshop/backend/internal/config"
)

const (
	sandboxBaseURL = "https://api.sandbox.paypal.com"
	liveBaseURL    = "https://api.paypal.com"

	clientTimeout   = 30 * time.Second
	tokenExpirySkew = 60 * time.Second
)

// APIError is a structured rejection from PayPal.
type APIError struct {
	Status  int
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Name != "" || e.Message != "" {
		return fmt.Sprintf("paypal: %s (%s), status %d", e.Message, e.Name, e.Status)
	}
	return fmt.Sprintf("paypal: unexpected status %d", e.Status)
}

// PayPalClient talks to the PayPal REST v1 payments API. It caches the OAuth
// access token until shortly before expiry.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewPayPalClient(clientID, clientSecret, mode string) *PayPalClient {
	baseURL := sandboxBaseURL
	if mode == config.ModeLive {
		baseURL = liveBaseURL
	}
	return &PayPalClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: clientTimeout},
	}
}

func (c *PayPalClient) Create(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	var created Payment
	if err := c.do(ctx, http.MethodPost, "/v1/payments/payment", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *PayPalClient) Get(ctx context.Context, paymentID string) (*Payment, error) {
	var found Payment
	path := "/v1/payments/payment/" + url.PathEscape(paymentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

func (c *PayPalClient) Execute(ctx context.Context, paymentID, payerID string) (*Payment, error) {
	var executed Payment
	path := "/v1/payments/payment/" + url.PathEscape(paymentID) + "/execute"
	body := map[string]string{"payer_id": payerID}
	if err := c.do(ctx, http.MethodPost, path, body, &executed); err != nil {
		return nil, err
	}
	return &executed, nil
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("paypal: empty access token")
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpirySkew)
	return c.token, nil
}

func (c *PayPalClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil {
		_ = json.Unmarshal(raw, apiErr)
	}
	return apiErr
}
