package httpserver

import (
	"albumizer/internal/pricing"
)

// Money is rendered as a string with exactly two decimals so clients never
// see binary-float artifacts.

type lineView struct {
	AlbumID   int64  `json:"albumId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

type summaryView struct {
	Lines         []lineView `json:"lines"`
	ItemsSubtotal string     `json:"itemsSubtotal"`
}

type shippingGroupView struct {
	AddressID int64   `json:"addressId"`
	AlbumIDs  []int64 `json:"albumIds"`
	Fee       string  `json:"fee"`
}

type breakdownView struct {
	Lines            []lineView          `json:"lines"`
	ItemsSubtotal    string              `json:"itemsSubtotal"`
	ShippingGroups   []shippingGroupView `json:"shippingGroups"`
	ShippingSubtotal string              `json:"shippingSubtotal"`
	VATPercent       int64               `json:"vatPercent"`
	VAT              string              `json:"vat"`
	Total            string              `json:"total"`
}

func toLineViews(lines []pricing.LinePrice) []lineView {
	views := make([]lineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, lineView{
			AlbumID:   line.AlbumID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.String(),
			Subtotal:  line.Subtotal.String(),
		})
	}
	return views
}

func toSummaryView(s *pricing.CartSummary) summaryView {
	return summaryView{
		Lines:         toLineViews(s.Lines),
		ItemsSubtotal: s.ItemsSubtotal.String(),
	}
}

func toBreakdownView(b *pricing.Breakdown) breakdownView {
	groups := make([]shippingGroupView, 0, len(b.Groups))
	for _, g := range b.Groups {
		groups = append(groups, shippingGroupView{
			AddressID: g.AddressID,
			AlbumIDs:  g.AlbumIDs,
			Fee:       g.Fee.String(),
		})
	}
	return breakdownView{
		Lines:            toLineViews(b.Lines),
		ItemsSubtotal:    b.ItemsSubtotal.String(),
		ShippingGroups:   groups,
		ShippingSubtotal: b.ShippingSubtotal.String(),
		VATPercent:       b.VATPercent,
		VAT:              b.VAT.String(),
		Total:            b.Total.String(),
	}
}
