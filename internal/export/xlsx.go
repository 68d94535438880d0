// Package export выгружает список сотрудников в табличные форматы.
package export

import (
	"fmt"
	"io"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/format"
	"github.com/xuri/excelize/v2"
)

// SheetName - имя листа с записями
const SheetName = "Employees"

// Header - заголовки колонок выгрузки
var Header = []any{
	"Name", "Initials", "Phone", "Email", "National ID", "Date of birth", "Address",
	"Qualification", "Religion", "Experience (years)", "Last workplace", "Salary",
	"Documents", "Documents size",
}

// WriteXLSX записывает книгу с одним листом: заголовок и строка на каждую запись
func WriteXLSX(w io.Writer, records []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, emp := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(emp)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Row возвращает значения колонок для одной записи
func Row(emp domain.Employee) []any {
	var total int64
	for _, doc := range emp.Documents {
		total += doc.Size
	}

	return []any{
		emp.Name,
		format.Initials(emp.Name),
		emp.Phone,
		emp.Email,
		emp.NationalID,
		emp.DateOfBirth,
		emp.Address,
		emp.Qualification,
		emp.Religion,
		emp.Experience,
		emp.LastWorkplace,
		emp.Salary,
		len(emp.Documents),
		format.Bytes(total),
	}
}
