package calendar

import (
	"fmt"
	"strings"
	"time"

	"monagenda.fr/myagenda/internal/model"
)

const icalTimeLayout = "20060102T150405Z"

// BuildICal renders one homework as an iCalendar payload. A homework without
// a due date yields empty DTSTART/DTEND lines rather than an error.
func BuildICal(homework *model.Homework, now time.Time) string {
	start := ""
	if homework.DueDate != nil {
		start = homework.DueDate.UTC().Format(icalTimeLayout)
	}

	description := strings.ReplaceAll(homework.Description, "\n", "\\n")

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//MyAgenda//EN",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@myagenda.local", homework.ID),
		fmt.Sprintf("DTSTAMP:%s", now.UTC().Format(icalTimeLayout)),
		fmt.Sprintf("DTSTART:%s", start),
		fmt.Sprintf("DTEND:%s", start),
		fmt.Sprintf("SUMMARY:%s", homework.Title),
		fmt.Sprintf("DESCRIPTION:%s", description),
		fmt.Sprintf("URL:%s", homework.Attachment),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n")
}
