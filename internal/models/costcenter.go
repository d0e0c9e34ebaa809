package models

import "github.com/shopspring/decimal"

// CostCenter is the DB shape of a cost_centers row.
type CostCenter struct {
	CostCenterID         string          `db:"cost_center_id"`
	CompanyID            string          `db:"company_id"`
	Code                 string          `db:"code"`
	Name                 string          `db:"name"`
	PresupuestoAsignado  decimal.Decimal `db:"presupuesto_asignado"`
	PresupuestoConsumido decimal.Decimal `db:"presupuesto_consumido"`
	IsActive             bool            `db:"is_active"`
	AuditFields
}
