package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout é o formato de data aceito pelo Cost Explorer.
const DateLayout = "2006-01-02"

// TimeWindow is the billing period covered by a report: [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PreviousMonth retorna a janela do primeiro dia do mês anterior até o primeiro dia do mês corrente.
func PreviousMonth(now time.Time) TimeWindow {
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return TimeWindow{
		Start: end.AddDate(0, -1, 0),
		End:   end,
	}
}

// StartDate returns Start formatted as YYYY-MM-DD.
func (w TimeWindow) StartDate() string { return w.Start.Format(DateLayout) }

// EndDate returns End formatted as YYYY-MM-DD.
func (w TimeWindow) EndDate() string { return w.End.Format(DateLayout) }

// CostGroup é um grupo bruto do Cost Explorer (uma linked account).
type CostGroup struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Unit      string `json:"unit,omitempty"`
}

// CostResult is the raw output of the cost fetch: one group per linked account plus the id→name map.
type CostResult struct {
	Window       TimeWindow        `json:"window"`
	Groups       []CostGroup       `json:"groups"`
	AccountNames map[string]string `json:"account_names"`
}

// CostRecord represents the cost of a single linked account.
type CostRecord struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Cost        decimal.Decimal `json:"cost"`
}
