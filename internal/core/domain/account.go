package domain

// AccountCategory classifies an account within the chart of accounts.
// The values follow the Indonesian chart the system was built around.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "ASET"
	CategoryLiability AccountCategory = "KEWAJIBAN"
	CategoryEquity    AccountCategory = "MODAL"
	CategoryRevenue   AccountCategory = "PENDAPATAN"
	CategoryCOGS      AccountCategory = "HPP"
	CategoryExpense   AccountCategory = "BEBAN"
)

// IsValid reports whether c is one of the known categories.
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity, CategoryRevenue, CategoryCOGS, CategoryExpense:
		return true
	}
	return false
}

// NormalBalance indicates whether an account's balance increases with debits or credits.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// IsValid reports whether n is a known normal balance side.
func (n NormalBalance) IsValid() bool {
	return n == NormalDebit || n == NormalCredit
}

// Account represents a ledger account within the chart of accounts.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	Code          string          `json:"code"`      // Unique user-facing code (e.g., "11101")
	Name          string          `json:"name"`
	Category      AccountCategory `json:"category"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	AuditFields
}
