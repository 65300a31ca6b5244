package cli

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// LambdaOutput is the invocation result returned to the Lambda runtime.
type LambdaOutput struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Total   string `json:"total"`
	Fetched int    `json:"fetched_accounts"`
	Kept    int    `json:"kept_accounts"`
	Sent    int    `json:"emails_sent"`
	Failed  int    `json:"emails_failed"`
	Files   int    `json:"files"`
}

func startLambda(handler interface{}) {
	lambda.Start(handler)
}

// lambdaCommand carrega a configuração uma vez, no cold start, e atende cada invocação com uma rodada do relatório.
func (app *CLIApp) lambdaCommand(cmd *cobra.Command, args []string) error {
	_, _, runner, err := app.prepare(cmd, types.LogFormatJSON)
	if err != nil {
		return err
	}

	app.startLambda(newLambdaHandler(runner))
	return nil
}

func newLambdaHandler(runner ReportRunner) func(ctx context.Context) (LambdaOutput, error) {
	return func(ctx context.Context) (LambdaOutput, error) {
		result, err := runner.RunReport(ctx)
		if err != nil {
			return LambdaOutput{}, err
		}
		return lambdaOutput(result), nil
	}
}

func lambdaOutput(result *usecase.RunResult) LambdaOutput {
	report := result.Report
	return LambdaOutput{
		Start:   report.Window.StartDate(),
		End:     report.Window.EndDate(),
		Total:   report.FormatCost(report.Total),
		Fetched: report.Fetched,
		Kept:    len(report.Records),
		Sent:    result.Delivery.Sent(),
		Failed:  result.Delivery.Failed(),
		Files:   len(result.Files),
	}
}
