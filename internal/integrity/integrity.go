// Package integrity produces and checks the tamper-evidence hash that binds a
// user's session and cart contents across the multi-step checkout wizard.
package integrity

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"albumizer/internal/domain"
)

// Wizard step keys. Each step hashes with its own key, so a hash issued for
// one step can never be replayed on another.
const (
	StepAddresses = "sc_addresses"
	StepSummary   = "sc_summary"
	StepConfirm   = "sc_confirm"
)

// Session identifies the client the hash is bound to.
type Session struct {
	Username   string
	ClientIP   string
	ClientHost string
	UserAgent  string
}

// Guard computes validation hashes keyed with a server-side secret.
type Guard struct {
	secret string
}

// NewGuard builds a Guard with the given secret.
func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// Hash digests the session, the secret, the step key and a canonical
// serialization of the cart lines. Identical input always yields an identical
// hash; any change to a quantity, album or delivery address changes it.
func (g *Guard) Hash(sess Session, step string, lines []domain.CartLine) string {
	var sb strings.Builder
	sb.WriteString(sess.Username)
	sb.WriteByte('\n')
	sb.WriteString(sess.ClientIP)
	sb.WriteByte('\n')
	sb.WriteString(sess.ClientHost)
	sb.WriteByte('\n')
	sb.WriteString(sess.UserAgent)
	sb.WriteByte('\n')
	sb.WriteString(g.secret)
	sb.WriteByte('\n')
	sb.WriteString(step)
	sb.WriteByte('\n')
	sb.WriteString(serializeLines(lines))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Validate recomputes the hash for the current cart state and compares it
// with the submitted one. A missing or differing hash fails with
// ErrIntegrityViolation; the caller must route the user back to the cart.
func (g *Guard) Validate(sess Session, step string, lines []domain.CartLine, hash string) error {
	if hash == "" {
		return domain.ErrIntegrityViolation
	}
	expected := g.Hash(sess, step, lines)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) != 1 {
		return domain.ErrIntegrityViolation
	}
	return nil
}

// serializeLines renders cart lines as "album:quantity[:address]" segments in
// input order. The address part appears only once an address is assigned, so
// hashes issued before the address step stay valid until the cart changes.
func serializeLines(lines []domain.CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		part := fmt.Sprintf("%d:%d", line.AlbumID, line.Quantity)
		if line.AddressID != nil {
			part = fmt.Sprintf("%s:%d", part, *line.AddressID)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ";")
}
