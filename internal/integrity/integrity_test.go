package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albumizer/internal/domain"
)

func testSession() Session {
	return Session{
		Username:   "lisa",
		ClientIP:   "192.0.2.17",
		ClientHost: "albumizer.example",
		UserAgent:  "Mozilla/5.0",
	}
}

func testLines() []domain.CartLine {
	addrID := int64(4)
	return []domain.CartLine{
		{AlbumID: 1, Quantity: 2},
		{AlbumID: 9, Quantity: 1, AddressID: &addrID},
	}
}

func TestHashDeterminism(t *testing.T) {
	guard := NewGuard("server-secret")

	first := guard.Hash(testSession(), StepSummary, testLines())
	second := guard.Hash(testSession(), StepSummary, testLines())

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestHashSensitivity(t *testing.T) {
	guard := NewGuard("server-secret")
	base := guard.Hash(testSession(), StepSummary, testLines())

	changedQty := testLines()
	changedQty[0].Quantity = 3
	assert.NotEqual(t, base, guard.Hash(testSession(), StepSummary, changedQty))

	changedAlbum := testLines()
	changedAlbum[0].AlbumID = 2
	assert.NotEqual(t, base, guard.Hash(testSession(), StepSummary, changedAlbum))

	changedAddr := testLines()
	other := int64(5)
	changedAddr[1].AddressID = &other
	assert.NotEqual(t, base, guard.Hash(testSession(), StepSummary, changedAddr))
}

func TestValidateStepIsolation(t *testing.T) {
	guard := NewGuard("server-secret")

	hash := guard.Hash(testSession(), StepAddresses, testLines())

	require.NoError(t, guard.Validate(testSession(), StepAddresses, testLines(), hash))
	assert.ErrorIs(t,
		guard.Validate(testSession(), StepSummary, testLines(), hash),
		domain.ErrIntegrityViolation)
	assert.ErrorIs(t,
		guard.Validate(testSession(), StepConfirm, testLines(), hash),
		domain.ErrIntegrityViolation)
}

func TestValidateRejectsMissingHash(t *testing.T) {
	guard := NewGuard("server-secret")

	err := guard.Validate(testSession(), StepConfirm, testLines(), "")
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestValidateRejectsDifferentSecret(t *testing.T) {
	hash := NewGuard("one-secret").Hash(testSession(), StepConfirm, testLines())

	err := NewGuard("other-secret").Validate(testSession(), StepConfirm, testLines(), hash)
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestValidateRejectsStaleCart(t *testing.T) {
	guard := NewGuard("server-secret")
	hash := guard.Hash(testSession(), StepSummary, testLines())

	// a line was removed between steps
	err := guard.Validate(testSession(), StepSummary, testLines()[:1], hash)
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}
