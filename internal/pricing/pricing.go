// Package pricing computes album, cart and order prices. The engine is a pure
// function of its inputs: it never touches storage and has no side effects.
package pricing

import (
	"albumizer/internal/domain"
)

// Config carries the pricing parameters. Fees are exact cents, VATPercent is
// a whole percentage applied over items plus shipping.
type Config struct {
	BaseAlbumFee domain.Cents
	PerPageFee   domain.Cents
	ShippingFee  domain.Cents
	VATPercent   int64
}

// Engine computes prices from album page counts and cart quantities.
type Engine struct {
	cfg Config
}

// New builds an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Item is one priced input line. AddressID is nil until the checkout wizard
// assigns a delivery address; shipping grouping skips nil addresses.
type Item struct {
	AlbumID   int64
	Title     string
	PageCount int
	Quantity  int
	AddressID *int64
}

// LinePrice is the priced form of one input line.
type LinePrice struct {
	AlbumID   int64        `json:"albumId"`
	Title     string       `json:"title"`
	Quantity  int          `json:"quantity"`
	UnitPrice domain.Cents `json:"-"`
	Subtotal  domain.Cents `json:"-"`
}

// CartSummary is the VAT- and shipping-free price of a cart. Lines keep the
// input order so the presentation is reproducible.
type CartSummary struct {
	Lines         []LinePrice
	ItemsSubtotal domain.Cents
}

// ShippingGroup is the set of lines delivered to one address, billed one flat
// shipping fee together. Groups appear in first-reference order.
type ShippingGroup struct {
	AddressID int64
	AlbumIDs  []int64
	Fee       domain.Cents
}

// Breakdown is the full order price: items, shipping groups, VAT and total.
type Breakdown struct {
	Lines            []LinePrice
	ItemsSubtotal    domain.Cents
	Groups           []ShippingGroup
	ShippingSubtotal domain.Cents
	VATPercent       int64
	VAT              domain.Cents
	Total            domain.Cents
}

// UnitPrice returns the price of a single album copy. An album without pages
// costs nothing; otherwise the base fee plus the per-page fee applies.
func (e *Engine) UnitPrice(pageCount int) domain.Cents {
	if pageCount <= 0 {
		return 0
	}
	return e.cfg.BaseAlbumFee + domain.Cents(pageCount)*e.cfg.PerPageFee
}

// Summarize prices the given lines without shipping or VAT.
// A negative quantity is rejected with ErrInvalidQuantity.
func (e *Engine) Summarize(items []Item) (*CartSummary, error) {
	summary := &CartSummary{Lines: make([]LinePrice, 0, len(items))}
	for _, item := range items {
		if item.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		unit := e.UnitPrice(item.PageCount)
		subtotal := unit * domain.Cents(item.Quantity)
		summary.Lines = append(summary.Lines, LinePrice{
			AlbumID:   item.AlbumID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
		summary.ItemsSubtotal += subtotal
	}
	return summary, nil
}

// Breakdown prices the given lines as a complete order: the cart summary plus
// one flat shipping fee per distinct delivery address and VAT over the sum.
func (e *Engine) Breakdown(items []Item) (*Breakdown, error) {
	summary, err := e.Summarize(items)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		Lines:         summary.Lines,
		ItemsSubtotal: summary.ItemsSubtotal,
		VATPercent:    e.cfg.VATPercent,
	}

	seen := make(map[int64]int)
	for _, item := range items {
		if item.AddressID == nil {
			continue
		}
		idx, ok := seen[*item.AddressID]
		if !ok {
			idx = len(b.Groups)
			seen[*item.AddressID] = idx
			b.Groups = append(b.Groups, ShippingGroup{
				AddressID: *item.AddressID,
				Fee:       e.cfg.ShippingFee,
			})
			b.ShippingSubtotal += e.cfg.ShippingFee
		}
		b.Groups[idx].AlbumIDs = append(b.Groups[idx].AlbumIDs, item.AlbumID)
	}

	b.VAT = vatOf(e.cfg.VATPercent, b.ItemsSubtotal+b.ShippingSubtotal)
	b.Total = b.ItemsSubtotal + b.ShippingSubtotal + b.VAT
	return b, nil
}

// vatOf computes percent/100 of the amount, rounding half up on the cent.
func vatOf(percent int64, amount domain.Cents) domain.Cents {
	raw := int64(amount) * percent
	return domain.Cents((raw + 50) / 100)
}
