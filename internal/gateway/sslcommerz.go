// Package gateway talks to the SSLCommerz hosted-payment API: one call to
// open a payment session and one check to authenticate the IPN callback.
package gateway

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	sandboxBaseURL = "https://sandbox.sslcommerz.com"
	liveBaseURL    = "https://securepay.sslcommerz.com"
)

var ErrSessionRefused = errors.New("gateway refused payment session")

// SessionRequest carries the fields the session-init endpoint requires.
// Amounts are formatted by the caller; currency is fixed upstream.
type SessionRequest struct {
	TotalAmount string
	Currency    string
	TranID      string
	SuccessURL  string
	FailURL     string
	CancelURL   string
	IPNURL      string

	CustomerName     string
	CustomerEmail    string
	CustomerAddress  string
	CustomerCity     string
	CustomerPostcode string
	CustomerCountry  string
	CustomerPhone    string

	ProductName     string
	ProductCategory string
	ProductProfile  string
	ShippingMethod  string
}

// SessionResponse is the subset of the init response the server acts on.
type SessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// SessionInitiator is what the payment workflow depends on.
type SessionInitiator interface {
	InitiateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	storeID    string
	storePass  string
}

func NewClient(storeID, storePass string, sandbox bool) *Client {
	baseURL := liveBaseURL
	if sandbox {
		baseURL = sandboxBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		storeID:    storeID,
		storePass:  storePass,
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// InitiateSession posts the form-encoded session request and returns the
// hosted page URL the buyer is redirected to.
func (c *Client) InitiateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePass)
	form.Set("total_amount", req.TotalAmount)
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TranID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)
	form.Set("shipping_method", req.ShippingMethod)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", req.ProductCategory)
	form.Set("product_profile", req.ProductProfile)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_add1", req.CustomerAddress)
	form.Set("cus_city", req.CustomerCity)
	form.Set("cus_postcode", req.CustomerPostcode)
	form.Set("cus_country", req.CustomerCountry)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("ship_name", req.CustomerName)
	form.Set("ship_add1", req.CustomerAddress)
	form.Set("ship_city", req.CustomerCity)
	form.Set("ship_postcode", req.CustomerPostcode)
	form.Set("ship_country", req.CustomerCountry)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/gwprocess/v4/api.php", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway session call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway session call returned status %d", resp.StatusCode)
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	if session.Status != "SUCCESS" || session.GatewayPageURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrSessionRefused, session.FailedReason)
	}
	return &session, nil
}

// VerifyIPN authenticates a gateway callback. The gateway posts verify_key
// (the comma-separated field names it signed) and verify_sign (md5 over
// those fields sorted, plus store_passwd=md5(password)). A callback without
// a valid signature must not mutate anything.
func (c *Client) VerifyIPN(form url.Values) bool {
	verifySign := form.Get("verify_sign")
	verifyKey := form.Get("verify_key")
	if verifySign == "" || verifyKey == "" {
		return false
	}

	keys := strings.Split(verifyKey, ",")
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		pairs = append(pairs, k+"="+form.Get(k))
	}
	pairs = append(pairs, "store_passwd="+md5hex(c.storePass))

	signed := md5hex(strings.Join(pairs, "&"))
	return strings.EqualFold(signed, verifySign)
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
