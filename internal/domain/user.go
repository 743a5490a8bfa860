package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleDirectiva = "directiva"
	RoleRPP       = "rpp"
	RoleVendedor  = "vendedor"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
