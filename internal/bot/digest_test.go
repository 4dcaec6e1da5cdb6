package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

func TestNormalizeReportText(t *testing.T) {
	require := require.New(t)

	require.Equal("Finished task X", NormalizeReportText("  Finished task X "))
	require.Equal("", NormalizeReportText("без описания"))
	require.Equal("", NormalizeReportText("Без описания"))
	require.Equal("", NormalizeReportText("  БЕЗ ОПИСАНИЯ  "))
	require.Equal("", NormalizeReportText(""))
}

func TestWeekRange(t *testing.T) {
	require := require.New(t)

	// Wednesday
	from, to := WeekRange(time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC))
	require.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), from)
	require.Equal(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), to)

	// Monday maps onto itself
	from, _ = WeekRange(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	require.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), from)

	// Sunday belongs to the week it closes
	from, to = WeekRange(time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC))
	require.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), from)
	require.Equal(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), to)
}

func TestParseDay(t *testing.T) {
	require := require.New(t)

	day, err := ParseDay("10.01.2024")
	require.NoError(err)
	require.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("2024-01-10")
	require.Error(err)

	_, err = ParseDay("31.02.2024")
	require.Error(err)
}

func TestFormatDigestGroupsByUserThenDate(t *testing.T) {
	require := require.New(t)

	day1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	reports := []db.Report{
		{FullName: "Анна Иванова", ReportText: pointer.ToString("первый"), ReportDate: day1, Status: db.ReportStatusApproved},
		{FullName: "Анна Иванова", ReportText: pointer.ToString("второй"), ReportDate: day2, Status: db.ReportStatusPending},
		{FullName: "Борис Сидоров", PhotoFileID: pointer.ToString("f1"), ReportDate: day1, Status: db.ReportStatusNeedsRevision, RevisionReason: pointer.ToString("добавьте текст")},
	}

	digest := FormatDigest(reports)

	require.Contains(digest, "👤 <b>Анна Иванова</b>")
	require.Contains(digest, "👤 <b>Борис Сидоров</b>")
	require.Contains(digest, "📅 <i>10.01.2024</i>:")
	require.Contains(digest, "📅 <i>11.01.2024</i>:")
	require.Contains(digest, "◦ ✅ первый")
	require.Contains(digest, "◦ ⏳ второй")
	require.Contains(digest, "фото без описания")
	require.Contains(digest, "(причина: добавьте текст)")

	// one name header per employee even with several reports
	require.Equal(1, strings.Count(digest, "Анна Иванова"))
}

func TestFormatDigestEscapesHTML(t *testing.T) {
	require := require.New(t)

	reports := []db.Report{
		{FullName: "Анна <script>", ReportText: pointer.ToString("a < b"), ReportDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Status: db.ReportStatusPending},
	}

	digest := FormatDigest(reports)
	require.NotContains(digest, "<script>")
	require.Contains(digest, "a &lt; b")
}

func TestFormatRating(t *testing.T) {
	require := require.New(t)

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	counts := []db.ApprovedCount{
		{FullName: "Анна Иванова", Count: 5},
		{FullName: "Борис Сидоров", Count: 2},
	}

	rating := FormatRating(counts, from, to)
	require.Contains(rating, "08.01.2024")
	require.Contains(rating, "1. Анна Иванова — 5")
	require.Contains(rating, "2. Борис Сидоров — 2")
}
