package pdf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateTaskReport(data TaskReportData) (string, error)
}

type ReportGenerator struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF с кириллицей
	fontName string
}

type TaskReportRow struct {
	ID       int64
	Title    string
	Assignee string
	Status   string
	Priority string
	DueDate  *time.Time
}

type TaskReportData struct {
	CompanyName string
	GeneratedAt time.Time
	Rows        []TaskReportRow
	CountByStat map[string]int
	Filename    string // имя файла (без путей); если пусто — сгенерируем
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateTaskReport(data TaskReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("tasks_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Отчет по задачам", false)
	pdf.SetAuthor(data.CompanyName, false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	font := g.installFont(pdf)
	pdf.AddPage()

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 10, "ОТЧЕТ ПО ЗАДАЧАМ", "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 11)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("%s — %s", data.CompanyName, data.GeneratedAt.Format("02.01.2006 15:04")),
		"", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(2)

	// ===== Сводка по статусам
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(0, 7, "Сводка", "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 11)
	for _, status := range []string{"new", "in_progress", "done", "cancelled"} {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", status, data.CountByStat[status]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	g.hr(pdf)

	// ===== Таблица задач
	pdf.SetFont(font, "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, "Задача", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Исполнитель", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Статус", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Срок", "1", 1, "C", false, 0, "")

	pdf.SetFont(font, "", 10)
	for _, row := range data.Rows {
		due := "—"
		if row.DueDate != nil {
			due = row.DueDate.Format("02.01.2006")
		}
		title := row.Title
		if len([]rune(title)) > 38 {
			title = string([]rune(title)[:37]) + "…"
		}
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", row.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row.Assignee, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, row.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, due, "1", 1, "C", false, 0, "")
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(font, "", 9)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Стр. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

// installFont подключает UTF-8 шрифт и возвращает его имя. Без TTF
// откатываемся на core-шрифт: кириллица будет искажена, но генерация
// не падает.
func (g *ReportGenerator) installFont(pdf *gofpdf.Fpdf) string {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			pdf.AddUTF8Font(g.fontName, "", g.FontPath)
			pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
			return g.fontName
		}
		log.Printf("[pdf][warn] font %s not found, using core font", g.FontPath)
	}
	return "Helvetica"
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(15, y, 195, y)
	pdf.SetY(y + 2)
}
