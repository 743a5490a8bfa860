package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/homies-gc/homies-api/internal/domain"
)

var errInvalidMaintenanceDate = errors.New("date must use the YYYY-MM-DD format")

type VehicleRequest struct {
	Plate      string `form:"plate"`
	Brand      string `form:"brand"`
	Model      string `form:"model"`
	Type       string `form:"type"`
	Status     string `form:"status"`
	Nomination string `form:"nomination"`
}

func (req *VehicleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Plate, validation.Required, validation.Length(2, 20)),
		validation.Field(&req.Brand, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Model, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Type, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Status, validation.Required, validation.In(
			string(domain.VehicleOperational),
			string(domain.VehicleOutOfService),
			string(domain.VehicleInEmergency),
		)),
		validation.Field(&req.Nomination, validation.Length(0, 100)),
	)
}

// MaintenanceRequest binds the multipart form. The optional PDF attachment
// travels separately in the form.
type MaintenanceRequest struct {
	Date        string `form:"date"`
	Description string `form:"description"`
}

func (req *MaintenanceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
	)
	if err != nil {
		return err
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return errInvalidMaintenanceDate
	}

	return nil
}

// ParsedDate assumes Validate has already accepted the date.
func (req *MaintenanceRequest) ParsedDate() time.Time {
	t, _ := time.Parse(dateLayout, req.Date)

	return t
}

type AssignInventoryRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (req *AssignInventoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}
