package roster

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Roster"

// buildWorkbook lays out one row per employee and one column per date in
// [from, to]. Cells without a roster entry are left empty.
func buildWorkbook(employees []domain.User, entries []domain.RosterEntry, from, to time.Time) (*bytes.Buffer, error) {
	shifts := make(map[uuid.UUID]map[string]string, len(employees))
	for _, e := range entries {
		if shifts[e.UserID] == nil {
			shifts[e.UserID] = map[string]string{}
		}
		shifts[e.UserID][domain.FormatDate(e.Date)] = e.ShiftType
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, domain.FormatDate(d))
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 20); err != nil {
		return nil, err
	}
	if len(dates) > 0 {
		last := colName(len(dates))
		if err := f.SetColWidth(sheetName, "B", last, 12); err != nil {
			return nil, err
		}
	}

	f.SetCellValue(sheetName, cell("A", 1), "Employee")
	for i, d := range dates {
		f.SetCellValue(sheetName, cell(colName(i+1), 1), d)
	}
	if err := f.SetCellStyle(sheetName, "A1", cell(colName(len(dates)), 1), headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, err
	}

	for r, emp := range employees {
		row := r + 2
		f.SetCellValue(sheetName, cell("A", row), emp.Username)
		for i, d := range dates {
			if shift, ok := shifts[emp.ID][d]; ok {
				f.SetCellValue(sheetName, cell(colName(i+1), row), shift)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// colName maps a zero-based column index to its letter name.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
