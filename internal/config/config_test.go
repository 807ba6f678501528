package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albumizer/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, domain.Cents(500), cfg.Pricing().BaseAlbumFee)
	assert.Equal(t, domain.Cents(50), cfg.Pricing().PerPageFee)
	assert.Equal(t, domain.Cents(800), cfg.Pricing().ShippingFee)
	assert.Equal(t, int64(24), cfg.Pricing().VATPercent)
	assert.Equal(t, "albumizer", cfg.Payment().SellerID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("VAT_PERCENT", "10")
	t.Setenv("PAYMENT_SELLER_ID", "shop-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, int64(10), cfg.Pricing().VATPercent)
	assert.Equal(t, "shop-1", cfg.Payment().SellerID)
}
