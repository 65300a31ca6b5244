package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

const (
	costMetric         = "UnblendedCost"
	linkedAccountKey   = "LINKED_ACCOUNT"
	accountDescription = "description"
)

// AWSRepositoryImpl implementa o AWSRepository sobre Cost Explorer, STS e Budgets.
type AWSRepositoryImpl struct {
	clients *ClientFactory
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository(clients *ClientFactory) repository.AWSRepository {
	return &AWSRepositoryImpl{clients: clients}
}

// GetLinkedAccountCosts fetches the window's unblended cost grouped by linked account,
// following NextPageToken until every group and account attribute has been read.
func (r *AWSRepositoryImpl) GetLinkedAccountCosts(ctx context.Context, window entity.TimeWindow) (entity.CostResult, error) {
	client, err := r.clients.getServiceClient(ctx, "costexplorer")
	if err != nil {
		return entity.CostResult{}, err
	}
	ceClient := client.(costExplorerAPI)

	result := entity.CostResult{
		Window:       window,
		AccountNames: make(map[string]string),
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.StartDate()),
			End:   aws.String(window.EndDate()),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String(linkedAccountKey)},
		},
	}

	for {
		output, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return entity.CostResult{}, fmt.Errorf("failed to get cost and usage for %s to %s: %w",
				window.StartDate(), window.EndDate(), err)
		}

		for _, byTime := range output.ResultsByTime {
			for _, group := range byTime.Groups {
				g, err := parseGroup(group)
				if err != nil {
					return entity.CostResult{}, err
				}
				result.Groups = append(result.Groups, g)
			}
		}

		for _, attr := range output.DimensionValueAttributes {
			if attr.Value == nil {
				continue
			}
			if name, ok := attr.Attributes[accountDescription]; ok {
				result.AccountNames[*attr.Value] = name
			}
		}

		if output.NextPageToken == nil || *output.NextPageToken == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return result, nil
}

func parseGroup(group ceTypes.Group) (entity.CostGroup, error) {
	if len(group.Keys) == 0 {
		return entity.CostGroup{}, fmt.Errorf("%w: group without keys", types.ErrMalformedCostResponse)
	}
	metric, ok := group.Metrics[costMetric]
	if !ok || metric.Amount == nil {
		return entity.CostGroup{}, fmt.Errorf("%w: account %s has no %s amount",
			types.ErrMalformedCostResponse, group.Keys[0], costMetric)
	}

	g := entity.CostGroup{AccountID: group.Keys[0], Amount: *metric.Amount}
	if metric.Unit != nil {
		g.Unit = *metric.Unit
	}
	return g, nil
}

// GetAccountID returns the id of the account whose credentials run the job.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.clients.getServiceClient(ctx, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(stsAPI)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	return aws.ToString(result.Account), nil
}

// GetBudgets lista os budgets da conta com gasto atual e previsto.
func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error) {
	client, err := r.clients.getServiceClient(ctx, "budgets")
	if err != nil {
		return nil, err
	}
	budgetsClient := client.(budgetsAPI)

	input := &budgets.DescribeBudgetsInput{AccountId: aws.String(accountID)}
	budgetsData := []entity.BudgetInfo{}
	for {
		result, err := budgetsClient.DescribeBudgets(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error describing budgets for account %s: %w", accountID, err)
		}

		for _, budget := range result.Budgets {
			b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
			if budget.BudgetLimit != nil {
				b.Limit, _ = strconv.ParseFloat(aws.ToString(budget.BudgetLimit.Amount), 64)
				b.Unit = aws.ToString(budget.BudgetLimit.Unit)
			}
			if budget.CalculatedSpend != nil {
				if budget.CalculatedSpend.ActualSpend != nil {
					b.Actual, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ActualSpend.Amount), 64)
				}
				if budget.CalculatedSpend.ForecastedSpend != nil {
					b.Forecast, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ForecastedSpend.Amount), 64)
				}
			}
			budgetsData = append(budgetsData, b)
		}

		if result.NextToken == nil || *result.NextToken == "" {
			break
		}
		input.NextToken = result.NextToken
	}

	return budgetsData, nil
}
