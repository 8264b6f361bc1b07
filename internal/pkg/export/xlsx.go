package export

import (
	"fmt"
	"strings"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	monthlySheet = "Asistencia"
)

var dayHeaders = []string{
	"Fecha", "Dia", "Libre", "Hora ingreso", "Hora salida",
	"Minutos retraso", "Minutos extra", "Trabajo", "Falta",
}

// MonthlyReportFileName builds a download name such as asistencia_juan_perez_2024-05.xlsx.
func MonthlyReportFileName(rep report.MonthlyReport) string {
	name := strings.ToLower(strings.Join(strings.Fields(rep.EmployeeName), "_"))
	if name == "" {
		name = rep.EmployeeID
	}
	return fmt.Sprintf("asistencia_%s_%04d-%02d.xlsx", name, rep.Year, rep.Month)
}

// MonthlyReportXLSX renders one employee's month: a header block, one row per
// day and the month totals.
func MonthlyReportXLSX(rep report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	sw := &sheetWriter{f: f}
	sw.set("A1", fmt.Sprintf("REPORTE DE ASISTENCIA %02d/%04d", rep.Month, rep.Year))
	sw.set("A2", "Personal:")
	sw.set("B2", rep.EmployeeName)
	sw.set("A3", "Puesto:")
	sw.set("B3", rep.Position)
	sw.set("A4", "Horario:")
	sw.set("B4", rep.ExpectedEntrance+" - "+rep.ExpectedExit)
	sw.set("A5", "Dia libre:")
	sw.set("B5", rep.DayOff)

	const headerRow = 7
	for i, h := range dayHeaders {
		sw.setAt(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, d := range rep.Days {
		sw.setAt(1, row, d.Date)
		sw.setAt(2, row, d.WeekdayLabel)
		sw.setAt(3, row, yesNo(d.IsDayOff))
		sw.setAt(4, row, deref(d.Entrance))
		sw.setAt(5, row, deref(d.Exit))
		sw.setAt(6, row, d.LateMinutes)
		sw.setAt(7, row, d.ExtraMinutes)
		sw.setAt(8, row, yesNo(d.Worked))
		sw.setAt(9, row, yesNo(d.Absent))
		row++
	}

	row++
	for _, total := range []struct {
		label string
		value int
	}{
		{"Dias trabajados", rep.DaysWorked},
		{"Dias de falta", rep.DaysAbsent},
		{"Dias libres", rep.DaysOff},
		{"Total minutos retraso", rep.TotalLateMinutes},
		{"Total minutos extra", rep.TotalExtraMinutes},
	} {
		sw.setAt(1, row, total.label)
		sw.setAt(2, row, total.value)
		row++
	}
	if sw.err != nil {
		return nil, sw.err
	}

	if err := f.SetCellStyle(monthlySheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(dayHeaders), headerRow)
	if err := f.SetCellStyle(monthlySheet, fmt.Sprintf("A%d", headerRow), lastHeader, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(monthlySheet, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(monthlySheet, "B", "I", 15); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so cell writes can be chained.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(monthlySheet, cell, value)
}

func (w *sheetWriter) setAt(col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.set(cell, value)
}

func yesNo(b bool) string {
	if b {
		return "Si"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
