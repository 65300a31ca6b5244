package usecase

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// BuildReport rounds every account cost to cents, totals all of them, keeps the accounts
// strictly above threshold and orders the kept rows. Every kept account must have a name
// in result.AccountNames.
func BuildReport(result entity.CostResult, threshold int64, order string) (entity.Report, error) {
	report := entity.Report{
		Window:    result.Window,
		Total:     decimal.Zero,
		Threshold: threshold,
		Fetched:   len(result.Groups),
		Order:     order,
		Records:   []entity.CostRecord{},
	}
	cutoff := decimal.NewFromInt(threshold)
	legacy := order == types.OrderLegacy
	var legacyTotal float64

	for _, g := range result.Groups {
		cost, err := roundCost(g.Amount, order)
		if err != nil {
			return entity.Report{}, fmt.Errorf("account %s: %w", g.AccountID, err)
		}

		// o total inclui também as contas abaixo do limite
		report.Total = report.Total.Add(cost)
		if legacy {
			legacyTotal += cost.InexactFloat64()
		}

		if !cost.GreaterThan(cutoff) {
			continue
		}

		name, ok := result.AccountNames[g.AccountID]
		if !ok {
			return entity.Report{}, fmt.Errorf("%w: %s", types.ErrAccountNameNotFound, g.AccountID)
		}

		report.Records = append(report.Records, entity.CostRecord{
			AccountID:   g.AccountID,
			AccountName: name,
			Cost:        cost,
		})
	}

	if legacy && len(result.Groups) > 0 {
		// soma em float64, como os relatórios antigos: 0.1 + 0.2 vira 0.30000000000000004
		report.Total = decimal.NewFromFloat(legacyTotal)
	}

	sortRecords(report.Records, order)
	return report, nil
}

func sortRecords(records []entity.CostRecord, order string) {
	if order == types.OrderLegacy {
		// "<custo>_<id>" comparado como texto, do maior para o menor: "9.5_A" vem antes de "10.2_B".
		sort.SliceStable(records, func(i, j int) bool {
			return legacySortKey(records[i]) > legacySortKey(records[j])
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		if c := records[i].Cost.Cmp(records[j].Cost); c != 0 {
			return c > 0
		}
		return records[i].AccountID < records[j].AccountID
	})
}

func legacySortKey(rec entity.CostRecord) string {
	return entity.FormatCost(rec.Cost, types.OrderLegacy) + "_" + rec.AccountID
}

// roundCost arredonda o valor para centavos. No modo legacy o valor passa por float64 e
// empata para o par, como os relatórios antigos; caso contrário, arredonda o decimal exato.
func roundCost(amount string, order string) (decimal.Decimal, error) {
	if order != types.OrderLegacy {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w %q: %v", types.ErrInvalidCost, amount, err)
		}
		return d.Round(2), nil
	}

	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", types.ErrInvalidCost, amount, err)
	}
	exact := new(big.Rat).SetFloat64(f)
	if exact == nil {
		return decimal.Zero, fmt.Errorf("%w %q: not a finite number", types.ErrInvalidCost, amount)
	}
	d, err := decimal.NewFromString(exact.FloatString(20))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", types.ErrInvalidCost, amount, err)
	}
	return d.RoundBank(2), nil
}
