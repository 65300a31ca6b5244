package console

import (
	"io"
	"os"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/rs/zerolog"
)

// JSONConsole writes one JSON log line per message; used where no terminal is attached (Lambda, cron hosts).
type JSONConsole struct {
	logger zerolog.Logger
}

// NewJSONConsole cria um JSONConsole que escreve em out (stdout quando nil).
func NewJSONConsole(out io.Writer, level string) *JSONConsole {
	if out == nil {
		out = os.Stdout
	}
	logger := zerolog.New(out).
		Level(zerologLevel(ParseLevel(level))).
		With().
		Timestamp().
		Str("service", "aws-cost-report").
		Logger()
	return &JSONConsole{logger: logger}
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (c *JSONConsole) LogDebug(format string, a ...interface{}) {
	c.logger.Debug().Msgf(format, a...)
}

func (c *JSONConsole) LogInfo(format string, a ...interface{}) {
	c.logger.Info().Msgf(format, a...)
}

func (c *JSONConsole) LogWarning(format string, a ...interface{}) {
	c.logger.Warn().Msgf(format, a...)
}

func (c *JSONConsole) LogError(format string, a ...interface{}) {
	c.logger.Error().Msgf(format, a...)
}

// LogSuccess é registrado como info com o campo outcome=success.
func (c *JSONConsole) LogSuccess(format string, a ...interface{}) {
	c.logger.Info().Str("outcome", "success").Msgf(format, a...)
}

// Status logs the step start and its updates; there is no spinner in JSON mode.
func (c *JSONConsole) Status(message string) types.StatusHandle {
	c.logger.Debug().Str("status", "start").Msg(message)
	return &jsonStatus{logger: c.logger, message: message}
}

type jsonStatus struct {
	logger  zerolog.Logger
	message string
}

func (s *jsonStatus) Update(message string) {
	s.message = message
	s.logger.Debug().Str("status", "update").Msg(message)
}

func (s *jsonStatus) Stop() {
	s.logger.Debug().Str("status", "done").Msg(s.message)
}

// New escolhe a implementação de console pelo formato configurado.
func New(format, level string) types.ConsoleInterface {
	if format == types.LogFormatJSON {
		return NewJSONConsole(os.Stdout, level)
	}
	return NewConsole(level)
}
