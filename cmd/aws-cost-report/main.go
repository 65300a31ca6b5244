package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/mail"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/metrics"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI; os repositórios só são criados depois que a configuração é válida
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), buildUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildUseCase inicializa os repositórios a partir da configuração carregada.
func buildUseCase(cfg *types.Config, console types.ConsoleInterface) (cli.ReportRunner, error) {
	clients := aws.NewClientFactory(cfg.Profile, cfg.Region)

	var mailRepo repository.MailRepository
	switch cfg.MailProvider {
	case types.MailProviderSendGrid:
		mailRepo = mail.NewSendGridRepository(cfg.SendGridAPIKey)
	case types.MailProviderSES, "":
		mailRepo = aws.NewSESMailRepository(clients)
	default:
		return nil, fmt.Errorf("%w: unknown mail provider %q", types.ErrInvalidConfig, cfg.MailProvider)
	}

	var archiveRepo repository.ArchiveRepository
	if cfg.S3Bucket != "" {
		archiveRepo = aws.NewS3ArchiveRepository(clients, cfg.S3Bucket, cfg.S3Prefix)
	}

	return usecase.NewReportUseCase(
		cfg,
		aws.NewAWSRepository(clients),
		export.NewExportRepository(),
		mailRepo,
		archiveRepo,
		metrics.NewPushgatewayRepository(cfg.PushgatewayURL),
		console,
	), nil
}
