package excel

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nikoyaka/dispatch-service/internal/model"
	"github.com/nikoyaka/dispatch-service/internal/schedule"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the full request list as a single-sheet workbook.
func (g *Generator) Generate(requests []model.CollectionRequest, vehicles []model.Vehicle) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "収集依頼一覧"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	vehicleLabels := make(map[uuid.UUID]string, len(vehicles))
	for _, v := range vehicles {
		vehicleLabels[v.ID] = v.VehicleNumber
	}

	headers := []string{
		"名前",
		"住所",
		"開始日",
		"廃棄物種類",
		"もやすごみ",
		"もやさないごみ",
		"担当車両",
		"ステータス",
		"備考",
		"登録日",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, req := range requests {
		row := i + 2
		set(fmt.Sprintf("A%d", row), req.Name)
		set(fmt.Sprintf("B%d", row), req.Address)
		set(fmt.Sprintf("C%d", row), formatDate(req.StartDate))
		set(fmt.Sprintf("D%d", row), req.WasteType)
		set(fmt.Sprintf("E%d", row), schedule.Summarize(req.Combustible))
		set(fmt.Sprintf("F%d", row), formatNonCombustible(req))
		set(fmt.Sprintf("G%d", row), vehicleLabel(req.VehicleID, vehicleLabels))
		set(fmt.Sprintf("H%d", row), string(req.Status))
		set(fmt.Sprintf("I%d", row), req.Notes)
		set(fmt.Sprintf("J%d", row), formatDateTime(req.CreatedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 18)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 12)
	_ = file.SetColWidth(sheet, "D", "D", 16)
	_ = file.SetColWidth(sheet, "E", "F", 24)
	_ = file.SetColWidth(sheet, "G", "G", 14)
	_ = file.SetColWidth(sheet, "H", "H", 10)
	_ = file.SetColWidth(sheet, "I", "I", 32)
	_ = file.SetColWidth(sheet, "J", "J", 20)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatNonCombustible(req model.CollectionRequest) string {
	if !req.NonCombustibleEnabled {
		return schedule.None
	}
	return schedule.Summarize(req.NonCombustible)
}

func vehicleLabel(id *uuid.UUID, labels map[uuid.UUID]string) string {
	if id == nil {
		return "未割当"
	}
	if label, ok := labels[*id]; ok {
		return label
	}
	// Dangling reference after a forced vehicle deletion.
	return "削除済み車両"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
