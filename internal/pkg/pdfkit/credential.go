package pdfkit

import (
	"fmt"
	"io"
)

// Standard ID-1 card size.
const (
	credentialWidthMM  = 54
	credentialHeightMM = 85.6
)

type CredentialData struct {
	FullName  string
	CI        string
	Initials  string
	PhotoPath string
	LogoPath  string
	VerifyURL string
	Active    bool
}

// BuildCredential lays out the membership card: header band, watermark
// logo, photo (or initials), identity lines, verification QR and the
// activity badge.
func BuildCredential(data CredentialData) Document {
	doc := Document{
		WidthMM:  credentialWidthMM,
		HeightMM: credentialHeightMM,
	}

	doc.Regions = append(doc.Regions,
		Region{Kind: RegionFill, X: 0, Y: 0, W: credentialWidthMM, H: credentialHeightMM, Fill: ColorWhite},
		Region{Kind: RegionFill, X: 0, Y: 0, W: credentialWidthMM, H: 16, Fill: ColorBand},
		Region{
			Kind: RegionText, X: 0, Y: 3, W: credentialWidthMM, H: 6,
			Text: "HOMIES G.C.", FontSize: 12, FontStyle: "B", Align: "CM", Color: ColorWhite,
		},
		Region{
			Kind: RegionText, X: 0, Y: 9, W: credentialWidthMM, H: 5,
			Text: "CREDENCIAL DE MIEMBRO", FontSize: 6.5, Align: "CM", Color: ColorWhite,
		},
	)

	if data.LogoPath != "" {
		doc.Regions = append(doc.Regions, Region{
			Kind: RegionImage, X: 12, Y: 28, W: 30, H: 30,
			ImagePath: data.LogoPath, FallbackText: "", Alpha: 0.08,
		})
	}

	doc.Regions = append(doc.Regions,
		Region{
			Kind: RegionImage, X: 16, Y: 19, W: 22, H: 28,
			ImagePath: data.PhotoPath, FallbackText: data.Initials,
		},
		Region{
			Kind: RegionText, X: 2, Y: 49, W: 50, H: 6,
			Text: data.FullName, FontSize: 9, FontStyle: "B", Align: "CM", Color: ColorInk,
		},
		Region{
			Kind: RegionText, X: 2, Y: 55, W: 50, H: 4,
			Text: fmt.Sprintf("C.I. %s", data.CI), FontSize: 7, Align: "CM", Color: ColorMuted,
		},
		Region{
			Kind: RegionQR, X: 17, Y: 60, W: 20, H: 20,
			QRContent: data.VerifyURL,
		},
	)

	badge := Region{
		Kind: RegionBadge, X: 15, Y: 81, W: 24, H: 4,
		Text: "ACTIVO", FontSize: 6, Color: ColorWhite, Fill: ColorGreen,
	}
	if !data.Active {
		badge.Text = "INACTIVO"
		badge.Fill = ColorRed
	}
	doc.Regions = append(doc.Regions, badge)

	return doc
}

func RenderCredential(data CredentialData, w io.Writer) error {
	if err := Render(BuildCredential(data), w); err != nil {
		return fmt.Errorf("pdfkit.Render -> %w", err)
	}

	return nil
}
