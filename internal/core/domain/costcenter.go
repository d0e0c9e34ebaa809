package domain

import "github.com/shopspring/decimal"

// CostCenter holds a budget consumed by approved expenses.
// Invariant: PresupuestoAsignado is never set below PresupuestoConsumido.
type CostCenter struct {
	CostCenterID         string          `json:"costCenterID"` // Primary Key (UUID)
	CompanyID            string          `json:"companyID"`
	Code                 string          `json:"code"` // e.g. "CC-LOG"
	Name                 string          `json:"name"`
	PresupuestoAsignado  decimal.Decimal `json:"presupuestoAsignado"`
	PresupuestoConsumido decimal.Decimal `json:"presupuestoConsumido"` // Accumulated from approved expenses, base currency
	IsActive             bool            `json:"isActive"`
	AuditFields
}

// Disponible is the remaining budget: asignado - consumido.
func (c *CostCenter) Disponible() decimal.Decimal {
	return c.PresupuestoAsignado.Sub(c.PresupuestoConsumido)
}

// CanSetBudget reports whether the assigned budget may be changed to the
// given value without dropping below what is already consumed.
func (c *CostCenter) CanSetBudget(newAsignado decimal.Decimal) bool {
	return newAsignado.GreaterThanOrEqual(c.PresupuestoConsumido)
}
