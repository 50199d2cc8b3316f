package finsheet

import "github.com/hgabor/finsheet/date"

// Budget is a decoded YNAB Budget.yfull snapshot, reduced to the entities
// the sync cares about. The snapshot is the holdings source: security trades
// are encoded in transaction check numbers.
type Budget struct {
	MasterCategories []MasterCategory `json:"masterCategories"`
	Transactions     []Transaction    `json:"transactions"`
	Accounts         []Account        `json:"accounts"`
	Payees           []Payee          `json:"payees"`
}

// MasterCategory groups subcategories under one header cell on the
// categories tab.
type MasterCategory struct {
	EntityID      string        `json:"entityId"`
	Name          string        `json:"name"`
	IsTombstone   bool          `json:"isTombstone"`
	SubCategories []SubCategory `json:"subCategories"`
}

// LiveSubCategories returns the subcategories that are not tombstoned.
func (mc MasterCategory) LiveSubCategories() []SubCategory {
	var live []SubCategory
	for _, sc := range mc.SubCategories {
		if !sc.IsTombstone {
			live = append(live, sc)
		}
	}
	return live
}

type SubCategory struct {
	EntityID    string `json:"entityId"`
	Name        string `json:"name"`
	IsTombstone bool   `json:"isTombstone"`
}

type Account struct {
	EntityID    string `json:"entityId"`
	AccountName string `json:"accountName"`
	IsTombstone bool   `json:"isTombstone"`
}

type Payee struct {
	EntityID    string `json:"entityId"`
	Name        string `json:"name"`
	IsTombstone bool   `json:"isTombstone"`
}

// Transaction is a single budget transaction record. CheckNumber is the
// free-text field that may carry a "<qty> <TICKER>" trade annotation.
type Transaction struct {
	EntityID    string    `json:"entityId"`
	Date        date.Date `json:"date"`
	Amount      float64   `json:"amount"`
	Memo        string    `json:"memo"`
	CheckNumber string    `json:"checkNumber"`
	AccountID   string    `json:"accountId"`
	PayeeID     string    `json:"payeeId"`
	CategoryID  string    `json:"categoryId"`
	IsTombstone bool      `json:"isTombstone"`
}
