package types

// Ordenações suportadas para as linhas do relatório.
const (
	OrderByCost = "cost"
	// OrderLegacy reproduz a ordenação lexicográfica "<custo>_<id>" invertida dos relatórios antigos.
	OrderLegacy = "legacy"
)

// Transportes de e-mail suportados.
const (
	MailProviderSES      = "ses"
	MailProviderSendGrid = "sendgrid"
)

// Formatos de exportação suportados. CSV é sempre gerado.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// Formatos de log.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config represents the job configuration, loaded from an optional file and the environment.
type Config struct {
	// Required
	SenderAddress string   `json:"sender_address" yaml:"sender_address" toml:"sender_address" validate:"required,mailbox"`
	Recipients    []string `json:"recipients" yaml:"recipients" toml:"recipients" validate:"required,min=1,dive,required"`
	CostThreshold *int64   `json:"cost_threshold" yaml:"cost_threshold" toml:"cost_threshold" validate:"required"`

	// AWS
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`

	// Report
	ReportDir string   `json:"report_dir" yaml:"report_dir" toml:"report_dir"`
	Order     string   `json:"order" yaml:"order" toml:"order" validate:"oneof=cost legacy"`
	Formats   []string `json:"formats" yaml:"formats" toml:"formats" validate:"dive,oneof=csv json pdf"`

	// Mail
	MailProvider   string `json:"mail_provider" yaml:"mail_provider" toml:"mail_provider" validate:"oneof=ses sendgrid"`
	SendGridAPIKey string `json:"sendgrid_api_key" yaml:"sendgrid_api_key" toml:"sendgrid_api_key" validate:"required_if=MailProvider sendgrid"`

	// Integrações opcionais
	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url" toml:"pushgateway_url" validate:"omitempty,url"`
	IncludeBudgets bool   `json:"include_budgets" yaml:"include_budgets" toml:"include_budgets"`

	// Execução
	Schedule  string `json:"schedule" yaml:"schedule" toml:"schedule"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" validate:"oneof=console json"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" validate:"oneof=debug info warn error"`
}

// Threshold returns the configured cost cutoff.
func (c *Config) Threshold() int64 {
	if c.CostThreshold == nil {
		return 0
	}
	return *c.CostThreshold
}

// WantsFormat reports whether an extra export format was requested.
func (c *Config) WantsFormat(format string) bool {
	if format == FormatCSV {
		return true
	}
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}
