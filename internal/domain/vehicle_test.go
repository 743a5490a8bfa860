package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homies-gc/homies-api/internal/domain"
)

func TestVehicle_MatchesSearch(t *testing.T) {
	vehicle := domain.Vehicle{
		Plate:      "ABC-123",
		Brand:      "Toyota",
		Model:      "Hilux",
		Type:       "Camioneta",
		Status:     domain.VehicleOperational,
		Nomination: "Unidad Uno",
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches all", "", true},
		{"plate lowercase", "abc", true},
		{"plate uppercase", "ABC", true},
		{"brand and model", "toyota hilux", true},
		{"type", "camioneta", true},
		{"nomination", "unidad", true},
		{"whitespace trimmed", "  abc  ", true},
		{"no match", "mercedes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vehicle.MatchesSearch(tt.query))
		})
	}
}

func TestVehicleStatus_IsValid(t *testing.T) {
	assert.True(t, domain.VehicleOperational.IsValid())
	assert.True(t, domain.VehicleOutOfService.IsValid())
	assert.True(t, domain.VehicleInEmergency.IsValid())
	assert.False(t, domain.VehicleStatus("Parked").IsValid())
}
