package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
)

// CSVHeader é o cabeçalho fixo do relatório CSV.
var CSVHeader = []string{"ACCOUNT ID", "ACCOUNT NAME", "COST"}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes the report as ACCOUNT ID,ACCOUNT NAME,COST rows followed by ",TOTAL,<total>".
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, outputDir string) (string, error) {
	outputFilename, err := prepareFilename(report.Window, outputDir, "csv")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := make([][]string, 0, len(report.Records)+2)
	rows = append(rows, CSVHeader)
	for _, rec := range report.Records {
		rows = append(rows, []string{rec.AccountID, rec.AccountName, report.FormatCost(rec.Cost)})
	}
	rows = append(rows, []string{"", "TOTAL", report.FormatCost(report.Total)})

	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	data := buf.Bytes()
	if report.Order == types.OrderLegacy {
		// relatórios legados terminam na linha TOTAL, sem quebra de linha
		data = bytes.TrimSuffix(data, []byte("\n"))
	}

	if err := os.WriteFile(outputFilename, data, 0644); err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON grava o relatório completo em JSON indentado.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, outputDir string) (string, error) {
	outputFilename, err := prepareFilename(report.Window, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	payload := struct {
		Start     string              `json:"start"`
		End       string              `json:"end"`
		AccountID string              `json:"payer_account_id,omitempty"`
		Threshold int64               `json:"threshold"`
		Fetched   int                 `json:"fetched_accounts"`
		Records   []entity.CostRecord `json:"records"`
		Total     string              `json:"total"`
		Budgets   []entity.BudgetInfo `json:"budgets,omitempty"`
	}{
		Start:     report.Window.StartDate(),
		End:       report.Window.EndDate(),
		AccountID: report.AccountID,
		Threshold: report.Threshold,
		Fetched:   report.Fetched,
		Records:   report.Records,
		Total:     report.FormatCost(report.Total),
		Budgets:   report.Budgets,
	}
	if payload.Records == nil {
		payload.Records = []entity.CostRecord{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF renderiza o relatório como uma tabela em PDF A4.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, outputDir string) (string, error) {
	outputFilename, err := prepareFilename(report.Window, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	widths := []float64{50, 100, 40}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("  AWS Cost report for %s to %s", report.Window.StartDate(), report.Window.EndDate())
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	subtitle := fmt.Sprintf("  Accounts above $%d: %d of %d", report.Threshold, len(report.Records), report.Fetched)
	if report.AccountID != "" {
		subtitle += fmt.Sprintf("   Payer account: %s", report.AccountID)
	}
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.SetFont("Arial", "B", 10)
	for i, h := range CSVHeader {
		align := "L"
		if i == len(CSVHeader)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, rec := range report.Records {
		name := truncateName(rec.AccountName, 60)
		pdf.CellFormat(widths[0], 6, rec.AccountID, "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, "$"+report.FormatCost(rec.Cost), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 8, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 8, "$"+report.FormatCost(report.Total), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// truncateName limita o nome a max caracteres (não bytes), terminando em "..." quando cortado.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-3]) + "..."
}

// prepareFilename monta <dir>/cost-report-<start>-<end>.<ext>, garante que o diretório exista
// e remove um arquivo antigo do mesmo período. Arquivo inexistente não é erro.
func prepareFilename(window entity.TimeWindow, dir, ext string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s.%s", window.ReportBaseName(), ext))
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("error removing stale report %s: %w", filename, err)
	}
	return filename, nil
}
