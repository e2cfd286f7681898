package export

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/leave"
)

func WriteEmployeesCSV(w io.Writer, employees []employee.Employee) error {
	return WriteCSV(w, EmployeesTable(employees))
}

// WriteCSV writes t with minimal quoting.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}

// WriteLeaveCSV quotes every data cell; embedded quotes are doubled.
func WriteLeaveCSV(w io.Writer, requests []leave.Request) error {
	t := LeaveTable(requests)
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.Header, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		quoted := make([]string, len(row))
		for i, cell := range row {
			quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		if _, err := bw.WriteString(strings.Join(quoted, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
