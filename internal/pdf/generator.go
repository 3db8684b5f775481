package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type Generator struct {
	fontName string
	fontData []byte
}

// NewGenerator loads the CJK font used for all text. The file is
// required; the built-in core fonts cannot render Japanese.
func NewGenerator(fontPath string) (*Generator, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "NotoSansJP", fontData: data}, nil
}

func (g *Generator) Generate(sheet model.RouteSheet) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "収集ルート表", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("車両: %s", sheet.Vehicle.VehicleNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("作成日時: %s", sheet.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")

	summary := schedule.Summarize(sheet.Vehicle.Schedule)
	pdf.CellFormat(0, 6, fmt.Sprintf("稼働日: %s", summary), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("担当依頼 (%d件)", len(sheet.Requests)), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"依頼者", "住所", "開始日", "ステータス", "備考"}
	colWidths := []float64{45, 100, 25, 25, 65}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, req := range sheet.Requests {
		row := []string{
			req.Name,
			req.Address,
			formatDate(req.StartDate),
			string(req.Status),
			req.Notes,
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
