package entity

// BudgetInfo is a cost budget of the payer account, shown in the report email.
type BudgetInfo struct {
	Name     string  `json:"name"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// UsedPercent retorna o gasto atual como percentual do limite.
func (b BudgetInfo) UsedPercent() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Actual / b.Limit * 100
}
