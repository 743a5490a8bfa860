package service

import "github.com/homies-gc/homies-api/internal/domain"

// Capabilities is the single source of truth for what a role may do.
// Handlers consult it instead of re-deriving role combinations per route.
type Capabilities struct {
	CanManageMembers  bool `json:"can_manage_members"`
	CanManageProducts bool `json:"can_manage_products"`
	CanSell           bool `json:"can_sell"`
	CanReviewPayments bool `json:"can_review_payments"`
	CanManageVehicles bool `json:"can_manage_vehicles"`
	CanViewReports    bool `json:"can_view_reports"`
}

// EvaluatePolicy maps a role to its capability record. Unknown roles get
// nothing. rpp is read-only apart from reports.
func EvaluatePolicy(role string) Capabilities {
	switch role {
	case domain.RoleAdmin:
		return Capabilities{
			CanManageMembers:  true,
			CanManageProducts: true,
			CanSell:           true,
			CanReviewPayments: true,
			CanManageVehicles: true,
			CanViewReports:    true,
		}
	case domain.RoleDirectiva:
		return Capabilities{
			CanManageMembers:  true,
			CanReviewPayments: true,
			CanManageVehicles: true,
			CanViewReports:    true,
		}
	case domain.RoleVendedor:
		return Capabilities{
			CanManageProducts: true,
			CanSell:           true,
		}
	case domain.RoleRPP:
		return Capabilities{
			CanViewReports: true,
		}
	}

	return Capabilities{}
}
