package pdfkit_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/pkg/pdfkit"
)

func TestRenderCredential(t *testing.T) {
	t.Run("produces a PDF", func(t *testing.T) {
		var buf bytes.Buffer

		err := pdfkit.RenderCredential(pdfkit.CredentialData{
			FullName:  "Juan Pérez",
			CI:        "1234567 LP",
			Initials:  "JP",
			VerifyURL: "https://homies.example.com/verificar/abc",
			Active:    true,
		}, &buf)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	})

	t.Run("missing photo falls back to initials without failing", func(t *testing.T) {
		var buf bytes.Buffer

		err := pdfkit.RenderCredential(pdfkit.CredentialData{
			FullName:  "Juan Pérez",
			CI:        "1234567 LP",
			Initials:  "JP",
			PhotoPath: "/nonexistent/photo.jpg",
			VerifyURL: "https://homies.example.com/verificar/abc",
			Active:    false,
		}, &buf)

		require.NoError(t, err)
		assert.NotZero(t, buf.Len())
	})
}

func TestRenderVoucher(t *testing.T) {
	var buf bytes.Buffer

	err := pdfkit.RenderVoucher(pdfkit.VoucherData{
		SaleID:    12,
		Reference: "venta:12",
		BuyerName: "Juan Pérez",
		Seller:    "María López",
		IssuedAt:  "2026-08-28",
		Lines: []pdfkit.VoucherLine{
			{Name: "Pulsera", Quantity: 2, UnitPriceCents: 1500, SubtotalCents: 3000},
			{Name: "Polera", Quantity: 1, UnitPriceCents: 8000, SubtotalCents: 8000},
		},
		TotalCents:     11000,
		PaidCents:      4000,
		InReviewCents:  5000,
		RemainingCents: 2000,
	}, &buf)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Contains(t, buf.String(), "/Count 1")
}

func TestRenderVoucher_ManyLines(t *testing.T) {
	lines := make([]pdfkit.VoucherLine, 0, 40)
	var total int64
	for i := 0; i < 40; i++ {
		lines = append(lines, pdfkit.VoucherLine{
			Name: fmt.Sprintf("Producto %d", i+1), Quantity: 1,
			UnitPriceCents: 1500, SubtotalCents: 1500,
		})
		total += 1500
	}

	var buf bytes.Buffer
	err := pdfkit.RenderVoucher(pdfkit.VoucherData{
		SaleID:         13,
		Reference:      "venta:13",
		BuyerName:      "Juan Pérez",
		Seller:         "María López",
		IssuedAt:       "2026-08-28",
		Lines:          lines,
		TotalCents:     total,
		RemainingCents: total,
	}, &buf)

	require.NoError(t, err)
	// The table overflows A4 and must continue on a second page.
	assert.Contains(t, buf.String(), "/Count 2")
}

func TestVoucherData_Title(t *testing.T) {
	assert.Equal(t, "RESERVATION RECEIPT", pdfkit.VoucherData{RemainingCents: 100}.Title())
	assert.Equal(t, "DELIVERY NOTE", pdfkit.VoucherData{RemainingCents: 0}.Title())
}
