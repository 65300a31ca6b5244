package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Variáveis de ambiente obrigatórias (nomes mantidos do deploy original).
const (
	EnvSenderAddress = "EmailSenderAddress"
	EnvRecipients    = "EmailList"
	EnvCostThreshold = "CostCutoff"
)

// Variáveis de ambiente opcionais.
const (
	EnvConfigFile     = "COST_REPORT_CONFIG"
	EnvProfile        = "COST_REPORT_PROFILE"
	EnvRegion         = "COST_REPORT_REGION"
	EnvReportDir      = "COST_REPORT_DIR"
	EnvOrder          = "COST_REPORT_ORDER"
	EnvFormats        = "COST_REPORT_FORMATS"
	EnvMailProvider   = "COST_REPORT_MAIL_PROVIDER"
	EnvSendGridAPIKey = "SENDGRID_API_KEY"
	EnvS3Bucket       = "COST_REPORT_S3_BUCKET"
	EnvS3Prefix       = "COST_REPORT_S3_PREFIX"
	EnvPushgatewayURL = "COST_REPORT_PUSHGATEWAY_URL"
	EnvIncludeBudgets = "COST_REPORT_INCLUDE_BUDGETS"
	EnvSchedule       = "COST_REPORT_SCHEDULE"
	EnvLogFormat      = "COST_REPORT_LOG_FORMAT"
	EnvLogLevel       = "COST_REPORT_LOG_LEVEL"
)

// DefaultSchedule roda o job às 06:00 do primeiro dia de cada mês.
const DefaultSchedule = "0 6 1 * *"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	validate := validator.New()
	// "Billing <billing@example.com>" é aceito pelo SES como Source
	_ = validate.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		_, err := mail.ParseAddress(fl.Field().String())
		return err == nil
	})
	return &ConfigRepositoryImpl{validate: validate}
}

// Defaults returns a Config holding every optional default.
func Defaults() *types.Config {
	return &types.Config{
		ReportDir:    os.TempDir(),
		Order:        types.OrderByCost,
		Formats:      []string{types.FormatCSV},
		MailProvider: types.MailProviderSES,
		Schedule:     DefaultSchedule,
		LogFormat:    types.LogFormatConsole,
		LogLevel:     "info",
	}
}

// Load builds the job configuration: defaults, then the optional config file, then the
// environment (a .env file is loaded first when present). The result is validated once.
func (r *ConfigRepositoryImpl) Load(filePath string) (*types.Config, error) {
	_ = godotenv.Load()

	if filePath == "" {
		filePath = os.Getenv(EnvConfigFile)
	}

	cfg := Defaults()
	if filePath != "" {
		if err := decodeFile(filePath, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := r.check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate executa as mesmas verificações de Load sobre uma configuração já carregada.
func (r *ConfigRepositoryImpl) Validate(cfg *types.Config) error {
	return r.check(cfg)
}

func decodeFile(filePath string, cfg *types.Config) error {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return nil
}

func applyEnv(cfg *types.Config) error {
	stringFields := map[string]*string{
		EnvSenderAddress:  &cfg.SenderAddress,
		EnvProfile:        &cfg.Profile,
		EnvRegion:         &cfg.Region,
		EnvReportDir:      &cfg.ReportDir,
		EnvOrder:          &cfg.Order,
		EnvMailProvider:   &cfg.MailProvider,
		EnvSendGridAPIKey: &cfg.SendGridAPIKey,
		EnvS3Bucket:       &cfg.S3Bucket,
		EnvS3Prefix:       &cfg.S3Prefix,
		EnvPushgatewayURL: &cfg.PushgatewayURL,
		EnvSchedule:       &cfg.Schedule,
		EnvLogFormat:      &cfg.LogFormat,
		EnvLogLevel:       &cfg.LogLevel,
	}
	for name, field := range stringFields {
		if value, ok := os.LookupEnv(name); ok {
			*field = value
		}
	}

	if value, ok := os.LookupEnv(EnvRecipients); ok {
		cfg.Recipients = ParseList(value)
	}

	if value, ok := os.LookupEnv(EnvFormats); ok {
		cfg.Formats = ParseList(value)
	}

	if value, ok := os.LookupEnv(EnvCostThreshold); ok {
		threshold, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", types.ErrInvalidConfig, EnvCostThreshold, value)
		}
		cfg.CostThreshold = &threshold
	}

	if value, ok := os.LookupEnv(EnvIncludeBudgets); ok {
		include, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", types.ErrInvalidConfig, EnvIncludeBudgets, value)
		}
		cfg.IncludeBudgets = include
	}

	return nil
}

// ParseList splits a comma-delimited value, trimming spaces around each entry.
// Order is kept and duplicates are not removed.
func ParseList(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func (r *ConfigRepositoryImpl) check(cfg *types.Config) error {
	if cfg.SenderAddress == "" {
		return fmt.Errorf("%w: %s", types.ErrMissingConfig, EnvSenderAddress)
	}
	if len(cfg.Recipients) == 0 {
		return fmt.Errorf("%w: %s", types.ErrMissingConfig, EnvRecipients)
	}
	if cfg.CostThreshold == nil {
		return fmt.Errorf("%w: %s", types.ErrMissingConfig, EnvCostThreshold)
	}

	err := r.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, msgForTag(fe))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidConfig, strings.Join(messages, "; "))
}

// msgForTag returns a human-readable message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "email", "mailbox":
		return fmt.Sprintf("%s must be a valid email address, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
