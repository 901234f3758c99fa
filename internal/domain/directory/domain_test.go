package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIndex_FiltersInactive(t *testing.T) {
	active := uuid.New()
	inactive := uuid.New()

	ix := NewIndex([]Recipient{
		{ID: active, Role: RoleTechnician, Active: true},
		{ID: inactive, Role: RoleTechnician, Active: false},
	})

	assert.Len(t, ix.ByRole(RoleTechnician), 1)

	_, ok := ix.Lookup(active)
	assert.True(t, ok)
	_, ok = ix.Lookup(inactive)
	assert.False(t, ok)
}

func TestIndex_UnknownRoleEmpty(t *testing.T) {
	ix := NewIndex(nil)
	assert.Empty(t, ix.ByRole(RoleAdmin))
}
