package repository

import (
	"context"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// AWSRepository defines the interface for the AWS billing API interactions.
type AWSRepository interface {
	// Cost Operations
	GetLinkedAccountCosts(ctx context.Context, window entity.TimeWindow) (entity.CostResult, error)

	// Account Operations
	GetAccountID(ctx context.Context) (string, error)

	// Budget Operations
	GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error)
}
