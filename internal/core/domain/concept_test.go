package domain_test

import (
	"testing"

	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpenseConcept_NeedsApproval(t *testing.T) {
	threshold := decimal.NewFromInt(500)

	tests := []struct {
		name    string
		concept domain.ExpenseConcept
		amount  decimal.Decimal
		want    bool
	}{
		{
			name:    "flag set always requires approval",
			concept: domain.ExpenseConcept{RequiresApproval: true},
			amount:  decimal.NewFromInt(1),
			want:    true,
		},
		{
			name:    "no flag no threshold",
			concept: domain.ExpenseConcept{},
			amount:  decimal.NewFromInt(100000),
			want:    false,
		},
		{
			name:    "amount above threshold forces approval",
			concept: domain.ExpenseConcept{ApprovalThreshold: &threshold},
			amount:  decimal.NewFromFloat(500.01),
			want:    true,
		},
		{
			name:    "amount at threshold passes",
			concept: domain.ExpenseConcept{ApprovalThreshold: &threshold},
			amount:  decimal.NewFromInt(500),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.concept.NeedsApproval(tt.amount))
		})
	}
}

func TestChecklistCompleteness(t *testing.T) {
	requirements := []domain.DocumentRequirement{
		{Name: "Factura del proveedor", DocumentType: domain.DocFactura, Mandatory: true, Position: 1},
		{Name: "Ticket de caja", DocumentType: domain.DocTicket, Mandatory: false, Position: 2},
		{Name: "Declaración jurada", DocumentType: domain.DocDeclaracion, Mandatory: true, Position: 3},
	}

	t.Run("all mandatory attached", func(t *testing.T) {
		attached := map[domain.DocumentType]struct{}{
			domain.DocFactura:     {},
			domain.DocDeclaracion: {},
		}
		assert.True(t, domain.IsChecklistComplete(requirements, attached))
		assert.Empty(t, domain.MissingMandatoryTypes(requirements, attached))
	})

	t.Run("optional missing is still complete", func(t *testing.T) {
		attached := map[domain.DocumentType]struct{}{
			domain.DocFactura:     {},
			domain.DocDeclaracion: {},
		}
		assert.True(t, domain.IsChecklistComplete(requirements, attached))
	})

	t.Run("mandatory missing reported in order", func(t *testing.T) {
		attached := map[domain.DocumentType]struct{}{domain.DocTicket: {}}
		missing := domain.MissingMandatoryTypes(requirements, attached)
		assert.Equal(t, []domain.DocumentType{domain.DocFactura, domain.DocDeclaracion}, missing)
		assert.False(t, domain.IsChecklistComplete(requirements, attached))
	})

	t.Run("empty checklist is complete", func(t *testing.T) {
		assert.True(t, domain.IsChecklistComplete(nil, nil))
	})
}
