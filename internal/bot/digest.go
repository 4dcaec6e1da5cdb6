package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

const dayLayout = "02.01.2006"

// noDescriptionSentinel is what employees type when a photo needs no caption.
const noDescriptionSentinel = "без описания"

// NormalizeReportText trims the input and maps the "no description" sentinel
// to an empty string, so the sentinel is never stored as report text.
func NormalizeReportText(text string) string {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, noDescriptionSentinel) {
		return ""
	}

	return text
}

// Day truncates a timestamp to day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the week containing t, at day
// granularity.
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0

	from := day.AddDate(0, 0, -offset)
	to := from.AddDate(0, 0, 6)

	return from, to
}

func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("bot.ParseDay: %w", err)
	}

	return day, nil
}

func statusIcon(status db.ReportStatus) string {
	switch status {
	case db.ReportStatusApproved:
		return "✅"
	case db.ReportStatusNeedsRevision:
		return "🔄"
	default:
		return "⏳"
	}
}

func reportLine(r db.Report) string {
	var parts []string

	if r.PhotoFileID != nil {
		parts = append(parts, "📷")
	}
	if r.ReportText != nil {
		parts = append(parts, html.EscapeString(*r.ReportText))
	} else {
		parts = append(parts, "фото без описания")
	}

	line := strings.Join(parts, " ")
	if r.Status == db.ReportStatusNeedsRevision && r.RevisionReason != nil {
		line += fmt.Sprintf(" (причина: %s)", html.EscapeString(*r.RevisionReason))
	}

	return line
}

// FormatDigest renders reports as HTML grouped by employee then date. The
// input must already be ordered by full name, then date.
func FormatDigest(reports []db.Report) string {
	var b strings.Builder
	currentName := ""
	currentDate := ""

	for _, r := range reports {
		if r.FullName != currentName {
			if currentName != "" {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "👤 <b>%s</b>", html.EscapeString(r.FullName))
			currentName = r.FullName
			currentDate = ""
		}

		date := r.ReportDate.Format(dayLayout)
		if date != currentDate {
			fmt.Fprintf(&b, "\n📅 <i>%s</i>:", date)
			currentDate = date
		}

		fmt.Fprintf(&b, "\n  ◦ %s %s", statusIcon(r.Status), reportLine(r))
	}

	return b.String()
}

// FormatRating renders approved-report counts per employee, best first.
func FormatRating(counts []db.ApprovedCount, from, to time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Принятые отчеты за %s – %s:\n", from.Format(dayLayout), to.Format(dayLayout))

	for i, c := range counts {
		fmt.Fprintf(&b, "\n%d. %s — %d", i+1, html.EscapeString(c.FullName), c.Count)
	}

	return b.String()
}

func FormatUserReports(reports []db.Report) string {
	var b strings.Builder
	b.WriteString("📋 Ваши отчеты за эту неделю:\n")

	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s %s — %s", statusIcon(r.Status), r.ReportDate.Format(dayLayout), reportLine(r))
	}

	return b.String()
}

func categoryTitle(c db.TaskCategory) string {
	if c == db.TaskCategorySecondary {
		return btnTaskSecondary
	}

	return btnTaskPrimary
}

func FormatUserTasks(tasks []db.Task) string {
	var b strings.Builder
	b.WriteString("📌 Ваши задачи:\n")

	for _, t := range tasks {
		fmt.Fprintf(&b, "\n▪️ [%s] %s (от %s)", categoryTitle(t.Category), html.EscapeString(t.TaskText), t.TaskDate.Format(dayLayout))
	}

	return b.String()
}
