package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"hrconnect/internal/domain/leave"
)

const icsDate = "20060102"

// WriteICS writes one all-day event per request. DTEND is exclusive.
func WriteICS(w io.Writer, events []leave.Event, stamp time.Time) error {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//HR Connect//Leave Calendar//EN\r\n")
	for _, ev := range events {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:leave-%d@hrconnect\r\n", ev.ID)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp.UTC().Format("20060102T150405Z"))
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", ev.StartDate.In(time.UTC).Format(icsDate))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", ev.EndDate.AddDays(1).In(time.UTC).Format(icsDate))
		fmt.Fprintf(&b, "SUMMARY:%s - %s (%s)\r\n", escapeICS(ev.EmployeeName), ev.Type, ev.Status)
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeICS(s string) string {
	return strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`).Replace(s)
}
