package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homies-gc/homies-api/internal/domain"
	"github.com/homies-gc/homies-api/internal/service"
)

func TestEvaluatePolicy(t *testing.T) {
	t.Run("admin can do everything", func(t *testing.T) {
		caps := service.EvaluatePolicy(domain.RoleAdmin)

		assert.Equal(t, service.Capabilities{
			CanManageMembers:  true,
			CanManageProducts: true,
			CanSell:           true,
			CanReviewPayments: true,
			CanManageVehicles: true,
			CanViewReports:    true,
		}, caps)
	})

	t.Run("directiva reviews payments but does not sell", func(t *testing.T) {
		caps := service.EvaluatePolicy(domain.RoleDirectiva)

		assert.True(t, caps.CanReviewPayments)
		assert.True(t, caps.CanManageMembers)
		assert.False(t, caps.CanSell)
		assert.False(t, caps.CanManageProducts)
	})

	t.Run("vendedor sells but never reviews", func(t *testing.T) {
		caps := service.EvaluatePolicy(domain.RoleVendedor)

		assert.True(t, caps.CanSell)
		assert.True(t, caps.CanManageProducts)
		assert.False(t, caps.CanReviewPayments)
		assert.False(t, caps.CanViewReports)
	})

	t.Run("rpp only views reports", func(t *testing.T) {
		caps := service.EvaluatePolicy(domain.RoleRPP)

		assert.Equal(t, service.Capabilities{CanViewReports: true}, caps)
	})

	t.Run("unknown roles get nothing", func(t *testing.T) {
		assert.Equal(t, service.Capabilities{}, service.EvaluatePolicy("intern"))
	})
}
