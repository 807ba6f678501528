// Package simplepay implements the checksum protocol of the external Simple
// Payments service. Outbound requests and inbound callbacks are authenticated
// with an MD5 digest keyed with a shared secret, matching the provider's
// documented scheme.
package simplepay

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"

	"albumizer/internal/domain"
)

// CallbackStatus is the provider's verdict on a payment attempt.
type CallbackStatus string

const (
	StatusSuccessful   CallbackStatus = "successful"
	StatusCanceled     CallbackStatus = "canceled"
	StatusUnsuccessful CallbackStatus = "unsuccessful"
)

// Config carries the provider parameters: the seller id registered with the
// service, the shared secret and the service endpoint.
type Config struct {
	SellerID   string
	Secret     string
	ServiceURL string
}

// Client builds payment requests and verifies callback checksums.
type Client struct {
	cfg Config
}

// New builds a Client with the given configuration.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Request is the redirect payload that sends the user to the provider.
type Request struct {
	URL      string `json:"url"`
	Pid      int64  `json:"pid"`
	Sid      string `json:"sid"`
	Amount   string `json:"amount"`
	Checksum string `json:"checksum"`
}

// PaymentRequest builds the redirect for paying the given amount. Pid is the
// order id; the provider echoes it back in the callback.
func (c *Client) PaymentRequest(pid int64, amount domain.Cents) Request {
	amountStr := amount.String()
	return Request{
		URL:      c.cfg.ServiceURL,
		Pid:      pid,
		Sid:      c.cfg.SellerID,
		Amount:   amountStr,
		Checksum: md5hex(fmt.Sprintf("pid=%d&sid=%s&amount=%s&token=%s",
			pid, c.cfg.SellerID, amountStr, c.cfg.Secret)),
	}
}

// RedirectURL renders the full provider URL with query parameters.
func (r Request) RedirectURL() string {
	q := url.Values{}
	q.Set("pid", fmt.Sprintf("%d", r.Pid))
	q.Set("sid", r.Sid)
	q.Set("amount", r.Amount)
	q.Set("checksum", r.Checksum)
	return r.URL + "?" + q.Encode()
}

// VerifyCallback checks the checksum of a provider callback carrying the
// order id and the provider's reference code. A mismatch fails with
// ErrInvalidCallback and must abort the operation.
func (c *Client) VerifyCallback(pid int64, ref, checksum string) error {
	if ref == "" || checksum == "" {
		return domain.ErrInvalidCallback
	}
	expected := md5hex(fmt.Sprintf("pid=%d&ref=%s&token=%s", pid, ref, c.cfg.Secret))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(checksum)) != 1 {
		return domain.ErrInvalidCallback
	}
	return nil
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
