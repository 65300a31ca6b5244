package entity

import "github.com/shopspring/decimal"

// Report is the filtered, ordered view of a month's costs.
// Total always includes every fetched account, even the ones below the threshold.
type Report struct {
	Window    TimeWindow      `json:"window"`
	AccountID string          `json:"payer_account_id,omitempty"`
	Records   []CostRecord    `json:"records"`
	Total     decimal.Decimal `json:"total"`
	Threshold int64           `json:"threshold"`
	Fetched   int             `json:"fetched_accounts"`
	Order     string          `json:"order"`
	Budgets   []BudgetInfo    `json:"budgets,omitempty"`
}

// Filtered returns how many accounts were dropped by the threshold.
func (r Report) Filtered() int {
	return r.Fetched - len(r.Records)
}
