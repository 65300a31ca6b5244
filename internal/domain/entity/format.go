package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// FormatCost renders a rounded cost for the report files.
// Legacy reports print the shortest float representation ("9.5", "100.0"); the default prints two decimals.
func FormatCost(d decimal.Decimal, order string) string {
	if order != types.OrderLegacy {
		return d.StringFixed(2)
	}
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatCost formata um custo segundo a ordenação do relatório.
func (r Report) FormatCost(d decimal.Decimal) string {
	return FormatCost(d, r.Order)
}

// ReportBaseName é o nome base dos arquivos do relatório: cost-report-<start>-<end>.
func (w TimeWindow) ReportBaseName() string {
	return "cost-report-" + w.StartDate() + "-" + w.EndDate()
}
