package models

// Company is the DB shape of a companies row.
type Company struct {
	CompanyID string `db:"company_id"`
	RUC       string `db:"ruc"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// Branch is the DB shape of a branches row.
type Branch struct {
	BranchID  string `db:"branch_id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Address   string `db:"address"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
