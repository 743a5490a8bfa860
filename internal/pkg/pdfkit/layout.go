// Package pdfkit renders credential cards and sale vouchers. Documents are
// declarative region trees; a single walker turns them into PDF drawing
// calls, so every document shares one rendering path.
package pdfkit

type RegionKind int

const (
	RegionFill RegionKind = iota
	RegionText
	RegionImage
	RegionQR
	RegionBadge
	// RegionPageBreak starts a follow-on page of the same size; the
	// regions after it draw on the new page.
	RegionPageBreak
)

type Color struct {
	R, G, B int
}

var (
	ColorWhite = Color{R: 255, G: 255, B: 255}
	ColorInk   = Color{R: 33, G: 37, B: 41}
	ColorBand  = Color{R: 17, G: 45, B: 78}
	ColorMuted = Color{R: 108, G: 117, B: 125}
	ColorGreen = Color{R: 25, G: 135, B: 84}
	ColorRed   = Color{R: 220, G: 53, B: 69}
)

// Region is one box on the page. Coordinates and sizes are in millimeters
// from the top-left corner. Which fields matter depends on Kind.
type Region struct {
	Kind RegionKind

	X, Y, W, H float64

	// Text and Badge regions.
	Text      string
	FontSize  float64
	FontStyle string // "" regular, "B" bold, "I" italic
	Align     string // fpdf alignment string, e.g. "CM", "L"
	Color     Color

	// Fill and Badge regions.
	Fill Color

	// Image regions. FallbackText is drawn as an initials placeholder
	// when the image cannot be loaded.
	ImagePath    string
	FallbackText string
	Alpha        float64 // 0 means opaque

	// QR regions.
	QRContent string
}

// Document is a sequence of fixed-size pages. It starts with one page;
// every RegionPageBreak region opens another.
type Document struct {
	WidthMM  float64
	HeightMM float64
	Regions  []Region
}
