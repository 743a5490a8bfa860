package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const dateLayout = "2006-01-02"

var errInvalidBirthDate = errors.New("birth_date must use the YYYY-MM-DD format")

// MemberRequest binds the multipart form for member create and update. The
// optional photo file travels separately in the form.
type MemberRequest struct {
	FirstName    string `form:"first_name"`
	LastName     string `form:"last_name"`
	CI           string `form:"ci"`
	CIExpedition string `form:"ci_expedition"`
	BirthDate    string `form:"birth_date"`
	Phone        string `form:"phone"`
}

func (req *MemberRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.CI, validation.Required, validation.Length(4, 20)),
		validation.Field(&req.CIExpedition, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	if req.BirthDate != "" {
		if _, err := time.Parse(dateLayout, req.BirthDate); err != nil {
			return errInvalidBirthDate
		}
	}

	return nil
}

// ParsedBirthDate returns nil when the field was left empty.
func (req *MemberRequest) ParsedBirthDate() *time.Time {
	if req.BirthDate == "" {
		return nil
	}

	t, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return nil
	}

	return &t
}
