// Package export renders employee and leave listings as downloadable files.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-sql/civil"

	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/leave"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatICS  = "ics"
)

const displayDate = "Jan 2, 2006"

var ContentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatICS:  "text/calendar; charset=utf-8",
}

// Table is a titled grid of display strings.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

var employeeHeader = []string{"ID", "Name", "Email", "Department", "Position", "Status", "Join Date", "Phone"}

var leaveHeader = []string{"Employee", "Position", "Department", "Leave Type", "Start Date", "End Date", "Duration", "Status", "Request Date", "Reason"}

func EmployeesTable(employees []employee.Employee) Table {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Email,
			e.Department,
			e.Position,
			string(e.Status),
			e.JoinDate.String(),
			e.Phone,
		})
	}
	return Table{Title: "Employees", Header: employeeHeader, Rows: rows}
}

func LeaveTable(requests []leave.Request) Table {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			r.Employee.Name,
			r.Employee.Position,
			r.Employee.Department,
			string(r.Type),
			FormatDate(r.StartDate),
			FormatDate(r.EndDate),
			r.Duration,
			string(r.Status),
			FormatDate(r.RequestDate),
			r.Reason,
		})
	}
	return Table{Title: "Leave Requests", Header: leaveHeader, Rows: rows}
}

// FormatDate renders d the way lists show it, e.g. "Jun 15, 2023".
func FormatDate(d civil.Date) string {
	if d == (civil.Date{}) {
		return ""
	}
	return d.In(time.UTC).Format(displayDate)
}

func EmployeesFilename(format string) string {
	return "employee_data." + format
}

func LeaveFilename(today civil.Date, format string) string {
	return fmt.Sprintf("leave-requests-%s.%s", today.String(), format)
}

func CalendarFilename(year int, month time.Month, format string) string {
	return fmt.Sprintf("leave-calendar-%04d-%02d.%s", year, int(month), format)
}

var calendarHeader = []string{"ID", "Employee", "Leave Type", "Start Date", "End Date", "Status"}

func CalendarTable(events []leave.Event) Table {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			strconv.FormatInt(ev.ID, 10),
			ev.EmployeeName,
			string(ev.Type),
			ev.StartDate.String(),
			ev.EndDate.String(),
			string(ev.Status),
		})
	}
	return Table{Title: "Leave Calendar", Header: calendarHeader, Rows: rows}
}
