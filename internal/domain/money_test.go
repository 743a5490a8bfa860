package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/domain"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "40.50", domain.FormatCents(4050))
	assert.Equal(t, "40.00", domain.FormatCents(4000))
	assert.Equal(t, "0.05", domain.FormatCents(5))
	assert.Equal(t, "-12.34", domain.FormatCents(-1234))
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"40", 4000},
		{"40.5", 4050},
		{"40.50", 4050},
		{"0.05", 5},
		{".5", 50},
		{"-12.34", -1234},
		{" 100 ", 10000},
	}
	for _, tt := range tests {
		got, err := domain.ParseCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"", "abc", "1.234", "1.", "1,5"} {
		_, err := domain.ParseCents(in)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, in)
	}
}
