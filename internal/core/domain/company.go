package domain

// Company is the top-level tenant owning branches, cost centers and funds.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	RUC       string `json:"ruc"`       // Tax ID
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Branch is a physical location of a company.
type Branch struct {
	BranchID  string `json:"branchID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
