package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

func (app *CLIApp) scheduleCommand(cmd *cobra.Command, args []string) error {
	cfg, out, runner, err := app.prepare(cmd, "")
	if err != nil {
		return err
	}

	spec := cfg.Schedule
	if override, _ := cmd.Flags().GetString("cron"); override != "" {
		spec = override
	}

	return runSchedule(cmd.Context(), spec, runner, out)
}

// runSchedule roda o relatório a cada disparo da expressão cron até ctx ser cancelado.
// Uma execução nunca se sobrepõe à anterior.
func runSchedule(ctx context.Context, spec string, runner ReportRunner, out types.ConsoleInterface) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", types.ErrInvalidConfig, spec, err)
	}

	logger := cronLogger{console: out}
	scheduler := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	_, err := scheduler.AddFunc(spec, func() {
		if _, err := runner.RunReport(ctx); err != nil {
			out.LogError("Cost report failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling report: %w", err)
	}

	scheduler.Start()
	for _, entry := range scheduler.Entries() {
		out.LogInfo("Cost report scheduled with %q, next run at %s", spec, entry.Next.Format("2006-01-02 15:04:05 MST"))
	}

	<-ctx.Done()
	out.LogInfo("Stopping scheduler...")
	<-scheduler.Stop().Done()
	return nil
}

// cronLogger adapta o console à interface de log do cron.
type cronLogger struct {
	console types.ConsoleInterface
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.console.LogDebug("cron %s%s", msg, formatKeysAndValues(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.console.LogError("cron %s%s: %v", msg, formatKeysAndValues(keysAndValues), err)
}

func formatKeysAndValues(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
