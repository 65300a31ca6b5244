package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// ExportRepository serializa o relatório em arquivos. Cada método devolve o caminho absoluto gerado.
type ExportRepository interface {
	ExportToCSV(report entity.Report, outputDir string) (string, error)
	ExportToJSON(report entity.Report, outputDir string) (string, error)
	ExportToPDF(report entity.Report, outputDir string) (string, error)
}
