package domain

// DimensionKey identifies one of the master-data dimensions claims are
// captured against.
type DimensionKey string

const (
	DimDepartment DimensionKey = "department"
	DimCompany    DimensionKey = "company"
	DimBudgetItem DimensionKey = "budget_item"
	DimEmployee   DimensionKey = "employee"
)

// ValidDimensionKey reports whether key names a known dimension.
func ValidDimensionKey(key DimensionKey) bool {
	switch key {
	case DimDepartment, DimCompany, DimBudgetItem, DimEmployee:
		return true
	}
	return false
}

// MasterRecord is one master-data entry: a stable internal code with its
// human-readable description plus the SAP-facing code pair used on journal lines.
type MasterRecord struct {
	Key            DimensionKey `json:"key"`
	Code           string       `json:"code"`
	Description    string       `json:"description"`
	SAPCode        string       `json:"sapCode"`
	SAPDescription string       `json:"sapDescription"`
}

// BookingCodes carries the SAP account and cost-center codes a debit line is
// seeded with. The account pair comes from the claim's budget item, the
// cost-center pair from its department.
type BookingCodes struct {
	AccountCode    string `json:"accountCode"`
	AccountDesc    string `json:"accountDesc"`
	CostCenterCode string `json:"costCenterCode"`
	CostCenterDesc string `json:"costCenterDesc"`
}

// EmployeeCodes carries the SAP employee code pair for a claim's employee.
type EmployeeCodes struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}
