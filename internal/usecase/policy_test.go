package usecase

import (
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIdentityRole(t *testing.T) {
	assert.Equal(t, RoleAnonymous, Identity{}.Role())
	assert.Equal(t, RoleCustomer, Identity{UserID: 7}.Role())
	assert.Equal(t, RoleAdmin, Identity{UserID: 7, IsAdmin: true}.Role())
}

func TestIdentityOwns(t *testing.T) {
	order := &domain.Order{ID: "o1", UserID: 7}

	assert.Equal(t, OwnershipOwner, Identity{UserID: 7}.Owns(order))
	assert.Equal(t, OwnershipOther, Identity{UserID: 8}.Owns(order))
}

func TestAllowedProductAccess(t *testing.T) {
	// Чтение каталога открыто всем
	assert.True(t, Allowed(OpProductRead, RoleAnonymous, OwnershipAny))
	assert.True(t, Allowed(OpProductRead, RoleCustomer, OwnershipAny))
	assert.True(t, Allowed(OpProductRead, RoleAdmin, OwnershipAny))

	// Запись — только администратору
	assert.False(t, Allowed(OpProductWrite, RoleAnonymous, OwnershipAny))
	assert.False(t, Allowed(OpProductWrite, RoleCustomer, OwnershipAny))
	assert.True(t, Allowed(OpProductWrite, RoleAdmin, OwnershipAny))
}

func TestAllowedOrderAccess(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		role Role
		own  Ownership
		want bool
	}{
		{"anonymous cannot create", OpOrderCreate, RoleAnonymous, OwnershipAny, false},
		{"customer creates own", OpOrderCreate, RoleCustomer, OwnershipAny, true},
		{"admin creates", OpOrderCreate, RoleAdmin, OwnershipAny, true},

		{"customer reads own", OpOrderRead, RoleCustomer, OwnershipOwner, true},
		{"customer cannot read foreign", OpOrderRead, RoleCustomer, OwnershipOther, false},
		{"anonymous cannot read", OpOrderRead, RoleAnonymous, OwnershipOwner, false},
		{"admin reads foreign", OpOrderRead, RoleAdmin, OwnershipOther, true},

		{"customer updates own", OpOrderWrite, RoleCustomer, OwnershipOwner, true},
		{"customer cannot update foreign", OpOrderWrite, RoleCustomer, OwnershipOther, false},
		{"admin updates foreign", OpOrderWrite, RoleAdmin, OwnershipOther, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.op, tt.role, tt.own))
		})
	}
}
