package domain_test

import (
	"testing"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestApprovalPolicy(t *testing.T) {
	colaborador := domain.NewRoleSet(domain.RoleColaborador)
	aprobador := domain.NewRoleSet(domain.RoleAprobador)
	responsable := domain.NewRoleSet(domain.RoleResponsable)
	admin := domain.NewRoleSet(domain.RoleAdmin)
	nobody := domain.NewRoleSet()

	tests := []struct {
		name      string
		predicate func(domain.RoleSet) bool
		allowed   []domain.RoleSet
		denied    []domain.RoleSet
	}{
		{
			name:      "approve",
			predicate: domain.CanApprove,
			allowed:   []domain.RoleSet{aprobador, responsable, admin},
			denied:    []domain.RoleSet{colaborador, nobody},
		},
		{
			name:      "reject",
			predicate: domain.CanReject,
			allowed:   []domain.RoleSet{aprobador, responsable, admin},
			denied:    []domain.RoleSet{colaborador, nobody},
		},
		{
			name:      "mark paid",
			predicate: domain.CanMarkPaid,
			allowed:   []domain.RoleSet{aprobador, responsable, admin},
			denied:    []domain.RoleSet{colaborador, nobody},
		},
		{
			name:      "annul",
			predicate: domain.CanAnnul,
			allowed:   []domain.RoleSet{colaborador, aprobador, responsable, admin},
			denied:    []domain.RoleSet{nobody},
		},
		{
			name:      "delete",
			predicate: domain.CanDelete,
			allowed:   []domain.RoleSet{responsable, admin},
			denied:    []domain.RoleSet{colaborador, aprobador, nobody},
		},
		{
			name:      "assign funds",
			predicate: domain.CanAssignFunds,
			allowed:   []domain.RoleSet{responsable, admin},
			denied:    []domain.RoleSet{colaborador, aprobador, nobody},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, set := range tt.allowed {
				assert.True(t, tt.predicate(set), "roles %v should be allowed to %s", set.Slice(), tt.name)
			}
			for _, set := range tt.denied {
				assert.False(t, tt.predicate(set), "roles %v should be denied to %s", set.Slice(), tt.name)
			}
		})
	}
}

func TestRoleSet_MultipleRoles(t *testing.T) {
	set := domain.NewRoleSet(domain.RoleColaborador, domain.RoleAprobador)
	assert.True(t, set.Has(domain.RoleColaborador))
	assert.True(t, domain.CanApprove(set))
	assert.False(t, domain.CanDelete(set))
}
