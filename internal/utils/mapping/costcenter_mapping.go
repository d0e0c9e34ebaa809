package mapping

import (
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	"github.com/gastosapp/gastos_backend/internal/models"
)

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID:         d.CostCenterID,
		CompanyID:            d.CompanyID,
		Code:                 d.Code,
		Name:                 d.Name,
		PresupuestoAsignado:  d.PresupuestoAsignado,
		PresupuestoConsumido: d.PresupuestoConsumido,
		IsActive:             d.IsActive,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID:         m.CostCenterID,
		CompanyID:            m.CompanyID,
		Code:                 m.Code,
		Name:                 m.Name,
		PresupuestoAsignado:  m.PresupuestoAsignado,
		PresupuestoConsumido: m.PresupuestoConsumido,
		IsActive:             m.IsActive,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCostCenterSlice converts a slice of model CostCenters to domain CostCenters
func ToDomainCostCenterSlice(ms []models.CostCenter) []domain.CostCenter {
	ds := make([]domain.CostCenter, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCostCenter(m)
	}
	return ds
}
