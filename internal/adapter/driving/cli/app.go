package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/console"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// EnvLambdaRuntimeAPI é definida pelo runtime do AWS Lambda em todo ambiente de execução.
const EnvLambdaRuntimeAPI = "AWS_LAMBDA_RUNTIME_API"

// ReportRunner executa uma rodada completa do relatório.
type ReportRunner interface {
	RunReport(ctx context.Context) (*usecase.RunResult, error)
}

// UseCaseBuilder wires the repositories for a loaded configuration. It is only called once the
// configuration is valid, so no AWS client exists before that.
type UseCaseBuilder func(cfg *types.Config, console types.ConsoleInterface) (ReportRunner, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd     *cobra.Command
	configRepo  repository.ConfigRepository
	build       UseCaseBuilder
	newConsole  func(format, level string) types.ConsoleInterface
	startLambda func(handler interface{})
	version     string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, build UseCaseBuilder) *CLIApp {
	app := &CLIApp{
		configRepo:  configRepo,
		build:       build,
		newConsole:  console.New,
		startLambda: startLambda,
		version:     versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-cost-report",
		Short:         "Monthly AWS cost report by linked account",
		Long:          "Fetches last month's unblended cost per linked account, writes a CSV report and emails it to every recipient.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.rootCommand,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: console or json (overrides the configuration)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the configuration)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Build and send the report for the previous month once",
		RunE:  app.runCommand,
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the report on a cron schedule until interrupted",
		RunE:  app.scheduleCommand,
	}
	scheduleCmd.Flags().String("cron", "", "Standard 5-field cron expression (overrides the configuration)")

	lambdaCmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve the report as an AWS Lambda handler",
		RunE:  app.lambdaCommand,
	}

	rootCmd.AddCommand(runCmd, scheduleCmd, lambdaCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application. SIGINT and SIGTERM cancel the command context.
func (app *CLIApp) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs substitui os argumentos da linha de comando.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// prepare carrega a configuração, cria o console e só então monta o caso de uso.
func (app *CLIApp) prepare(cmd *cobra.Command, forceFormat string) (*types.Config, types.ConsoleInterface, ReportRunner, error) {
	configFile, _ := cmd.Flags().GetString("config-file")

	cfg, err := app.configRepo.Load(configFile)
	if err != nil {
		return nil, nil, nil, err
	}

	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if forceFormat != "" {
		cfg.LogFormat = forceFormat
	}
	if err := app.configRepo.Validate(cfg); err != nil {
		return nil, nil, nil, err
	}

	out := app.newConsole(cfg.LogFormat, cfg.LogLevel)

	runner, err := app.build(cfg, out)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, out, runner, nil
}

// rootCommand roda sem subcomando. Dentro do runtime do Lambda o bootstrap executa o binário
// sem argumentos, então o handler é servido em vez de uma execução direta.
func (app *CLIApp) rootCommand(cmd *cobra.Command, args []string) error {
	if os.Getenv(EnvLambdaRuntimeAPI) != "" {
		return app.lambdaCommand(cmd, args)
	}
	return app.runCommand(cmd, args)
}

// runCommand executa o relatório uma única vez.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	cfg, _, runner, err := app.prepare(cmd, "")
	if err != nil {
		return err
	}

	if cfg.LogFormat == types.LogFormatConsole {
		displayWelcomeBanner(app.version)
		go checkLatestVersion(app.version)
	}

	_, err = runner.RunReport(cmd.Context())
	return err
}
