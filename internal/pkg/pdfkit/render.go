package pdfkit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const fontFamily = "Helvetica"

// Render walks the document's regions in order and writes the PDF to w.
func Render(doc Document, w io.Writer) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size: fpdf.SizeType{
			Wd: doc.WidthMM,
			Ht: doc.HeightMM,
		},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, region := range doc.Regions {
		switch region.Kind {
		case RegionFill:
			renderFill(pdf, region)
		case RegionText:
			renderText(pdf, region)
		case RegionImage:
			renderImage(pdf, region)
		case RegionQR:
			if err := renderQR(pdf, region); err != nil {
				return fmt.Errorf("renderQR -> %w", err)
			}
		case RegionBadge:
			renderBadge(pdf, region)
		case RegionPageBreak:
			pdf.AddPage()
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf.Output -> %w", err)
	}

	return nil
}

func renderFill(pdf *fpdf.Fpdf, region Region) {
	pdf.SetFillColor(region.Fill.R, region.Fill.G, region.Fill.B)
	pdf.Rect(region.X, region.Y, region.W, region.H, "F")
}

func renderText(pdf *fpdf.Fpdf, region Region) {
	pdf.SetFont(fontFamily, region.FontStyle, region.FontSize)
	pdf.SetTextColor(region.Color.R, region.Color.G, region.Color.B)
	pdf.SetXY(region.X, region.Y)

	align := region.Align
	if align == "" {
		align = "LM"
	}

	pdf.CellFormat(region.W, region.H, region.Text, "", 0, align, false, 0, "")
}

// renderImage places the file at ImagePath. A missing or unreadable file
// degrades to the initials placeholder instead of aborting the document.
func renderImage(pdf *fpdf.Fpdf, region Region) {
	f, err := os.Open(region.ImagePath)
	if err != nil {
		renderPlaceholder(pdf, region)

		return
	}
	defer f.Close()

	imageType := strings.ToUpper(strings.TrimPrefix(filepath.Ext(region.ImagePath), "."))
	opts := fpdf.ImageOptions{ImageType: imageType}

	name := uuid.NewString()
	pdf.RegisterImageOptionsReader(name, opts, f)
	if pdf.Err() {
		pdf.ClearError()
		renderPlaceholder(pdf, region)

		return
	}

	if region.Alpha > 0 {
		pdf.SetAlpha(region.Alpha, "Normal")
		defer pdf.SetAlpha(1, "Normal")
	}

	pdf.ImageOptions(name, region.X, region.Y, region.W, region.H, false, opts, 0, "")
}

// renderPlaceholder draws the two-letter initials block used when a photo
// is absent or broken.
func renderPlaceholder(pdf *fpdf.Fpdf, region Region) {
	pdf.SetFillColor(ColorMuted.R, ColorMuted.G, ColorMuted.B)
	pdf.Rect(region.X, region.Y, region.W, region.H, "F")

	pdf.SetFont(fontFamily, "B", region.H*1.4)
	pdf.SetTextColor(ColorWhite.R, ColorWhite.G, ColorWhite.B)
	pdf.SetXY(region.X, region.Y)
	pdf.CellFormat(region.W, region.H, region.FallbackText, "", 0, "CM", false, 0, "")
}

func renderQR(pdf *fpdf.Fpdf, region Region) error {
	png, err := qrcode.Encode(region.QRContent, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qrcode.Encode -> %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := uuid.NewString()
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, region.X, region.Y, region.W, region.H, false, opts, 0, "")

	return nil
}

func renderBadge(pdf *fpdf.Fpdf, region Region) {
	pdf.SetFillColor(region.Fill.R, region.Fill.G, region.Fill.B)
	pdf.Rect(region.X, region.Y, region.W, region.H, "F")

	pdf.SetFont(fontFamily, "B", region.FontSize)
	pdf.SetTextColor(region.Color.R, region.Color.G, region.Color.B)
	pdf.SetXY(region.X, region.Y)
	pdf.CellFormat(region.W, region.H, region.Text, "", 0, "CM", false, 0, "")
}
