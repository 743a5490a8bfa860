package pdfkit

import (
	"fmt"
	"io"

	"github.com/homies-gc/homies-api/internal/domain"
)

// A4 portrait.
const (
	voucherWidthMM  = 210
	voucherHeightMM = 297

	// voucherTableBottomMM is the lowest y at which a table row may still
	// start; anything past it continues on a follow-on page.
	voucherTableBottomMM = 264
	voucherTableTopMM    = 20
)

type VoucherLine struct {
	Name           string
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64
}

type VoucherData struct {
	SaleID    uint
	Reference string
	BuyerName string
	Seller    string
	IssuedAt  string

	Lines []VoucherLine

	TotalCents     int64
	PaidCents      int64
	InReviewCents  int64
	RemainingCents int64
}

// Title derives the document heading from the outstanding balance at
// render time.
func (d VoucherData) Title() string {
	if d.RemainingCents > 0 {
		return "RESERVATION RECEIPT"
	}

	return "DELIVERY NOTE"
}

// BuildVoucher lays out the sale voucher: heading, parties, the line-item
// table, the totals block and a QR carrying the sale reference.
func BuildVoucher(data VoucherData) Document {
	doc := Document{
		WidthMM:  voucherWidthMM,
		HeightMM: voucherHeightMM,
	}

	doc.Regions = append(doc.Regions,
		Region{Kind: RegionFill, X: 0, Y: 0, W: voucherWidthMM, H: 24, Fill: ColorBand},
		Region{
			Kind: RegionText, X: 15, Y: 6, W: 120, H: 8,
			Text: "HOMIES G.C.", FontSize: 16, FontStyle: "B", Color: ColorWhite,
		},
		Region{
			Kind: RegionText, X: 15, Y: 14, W: 120, H: 6,
			Text: data.Title(), FontSize: 10, Color: ColorWhite,
		},
		Region{
			Kind: RegionText, X: 135, Y: 8, W: 60, H: 6, Align: "RM",
			Text: fmt.Sprintf("Venta #%d", data.SaleID), FontSize: 11, FontStyle: "B", Color: ColorWhite,
		},
		Region{
			Kind: RegionText, X: 15, Y: 32, W: 120, H: 5,
			Text: fmt.Sprintf("Miembro: %s", data.BuyerName), FontSize: 10, Color: ColorInk,
		},
		Region{
			Kind: RegionText, X: 15, Y: 38, W: 120, H: 5,
			Text: fmt.Sprintf("Vendedor: %s", data.Seller), FontSize: 10, Color: ColorInk,
		},
		Region{
			Kind: RegionText, X: 15, Y: 44, W: 120, H: 5,
			Text: fmt.Sprintf("Fecha: %s", data.IssuedAt), FontSize: 10, Color: ColorInk,
		},
		Region{
			Kind: RegionQR, X: 170, Y: 30, W: 25, H: 25,
			QRContent: data.Reference,
		},
	)

	y := 58.0
	doc.Regions = append(doc.Regions, voucherTableHeader(y)...)
	y += 7

	for _, line := range data.Lines {
		if y+6 > voucherTableBottomMM {
			doc.Regions = append(doc.Regions, Region{Kind: RegionPageBreak})
			y = voucherTableTopMM
			doc.Regions = append(doc.Regions, voucherTableHeader(y)...)
			y += 7
		}

		doc.Regions = append(doc.Regions,
			Region{Kind: RegionText, X: 17, Y: y, W: 88, H: 6, Text: line.Name, FontSize: 9, Color: ColorInk},
			Region{Kind: RegionText, X: 105, Y: y, W: 20, H: 6, Align: "RM", Text: fmt.Sprintf("%d", line.Quantity), FontSize: 9, Color: ColorInk},
			Region{Kind: RegionText, X: 125, Y: y, W: 30, H: 6, Align: "RM", Text: domain.FormatCents(line.UnitPriceCents), FontSize: 9, Color: ColorInk},
			Region{Kind: RegionText, X: 155, Y: y, W: 38, H: 6, Align: "RM", Text: domain.FormatCents(line.SubtotalCents), FontSize: 9, Color: ColorInk},
		)
		y += 6
	}

	y += 6
	// The totals block stays together on one page.
	if y+24 > voucherTableBottomMM {
		doc.Regions = append(doc.Regions, Region{Kind: RegionPageBreak})
		y = voucherTableTopMM
	}
	totals := []struct {
		label string
		cents int64
		bold  bool
	}{
		{"Total", data.TotalCents, true},
		{"Pagado", data.PaidCents, false},
		{"En revisión", data.InReviewCents, false},
		{"Saldo", data.RemainingCents, true},
	}
	for _, t := range totals {
		style := ""
		if t.bold {
			style = "B"
		}
		doc.Regions = append(doc.Regions,
			Region{Kind: RegionText, X: 125, Y: y, W: 30, H: 6, Align: "RM", Text: t.label, FontSize: 10, FontStyle: style, Color: ColorInk},
			Region{Kind: RegionText, X: 155, Y: y, W: 38, H: 6, Align: "RM", Text: domain.FormatCents(t.cents), FontSize: 10, FontStyle: style, Color: ColorInk},
		)
		y += 6
	}

	return doc
}

func voucherTableHeader(y float64) []Region {
	return []Region{
		{Kind: RegionFill, X: 15, Y: y, W: 180, H: 7, Fill: ColorBand},
		{Kind: RegionText, X: 17, Y: y, W: 88, H: 7, Text: "Producto", FontSize: 9, FontStyle: "B", Color: ColorWhite},
		{Kind: RegionText, X: 105, Y: y, W: 20, H: 7, Align: "RM", Text: "Cant.", FontSize: 9, FontStyle: "B", Color: ColorWhite},
		{Kind: RegionText, X: 125, Y: y, W: 30, H: 7, Align: "RM", Text: "P. Unit.", FontSize: 9, FontStyle: "B", Color: ColorWhite},
		{Kind: RegionText, X: 155, Y: y, W: 38, H: 7, Align: "RM", Text: "Subtotal", FontSize: 9, FontStyle: "B", Color: ColorWhite},
	}
}

func RenderVoucher(data VoucherData, w io.Writer) error {
	if err := Render(BuildVoucher(data), w); err != nil {
		return fmt.Errorf("pdfkit.Render -> %w", err)
	}

	return nil
}
