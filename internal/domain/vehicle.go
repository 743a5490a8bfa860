package domain

import (
	"strings"
	"time"
)

type VehicleStatus string

const (
	VehicleOperational  VehicleStatus = "Operational"
	VehicleOutOfService VehicleStatus = "Out of Service"
	VehicleInEmergency  VehicleStatus = "In Emergency"
)

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleOperational, VehicleOutOfService, VehicleInEmergency:
		return true
	}
	return false
}

type Vehicle struct {
	ID         uint          `json:"id"`
	Plate      string        `json:"plate"`
	Brand      string        `json:"brand"`
	Model      string        `json:"model"`
	Type       string        `json:"type"`
	Status     VehicleStatus `json:"status"`
	Nomination string        `json:"nomination"`
	PhotoPath  string        `json:"photo_path,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// VehicleInventoryItem assigns a quantity of a product to a vehicle.
type VehicleInventoryItem struct {
	ID          uint   `json:"id"`
	VehicleID   uint   `json:"vehicle_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

type MaintenanceRecord struct {
	ID             uint      `json:"id"`
	VehicleID      uint      `json:"vehicle_id"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// VehicleReport summarizes a vehicle's maintenance and inventory load.
type VehicleReport struct {
	VehicleID        uint   `json:"vehicle_id"`
	Plate            string `json:"plate"`
	MaintenanceCount int64  `json:"maintenance_count"`
	InventoryUnits   int64  `json:"inventory_units"`
	LastMaintenance  string `json:"last_maintenance,omitempty"`
}

// MatchesSearch reports whether the query matches the plate, brand+model,
// type or nomination, case-insensitively.
func (v Vehicle) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		v.Plate,
		v.Brand + " " + v.Model,
		v.Type,
		v.Nomination,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}

	return false
}
