package bot

import (
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/require"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

func TestWeekDigestCommand(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(999)

	require.NoError(env.reports.Create(&db.Report{
		UserID:     10,
		FullName:   "Анна Иванова",
		ReportText: pointer.ToString("сделала выгрузку"),
		ReportDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:     db.ReportStatusPending,
	}))

	// any day of the week selects the whole week
	env.svc.HandleUpdate(textUpdate(999, "/reports 12.01.2024"))
	require.Contains(env.out.lastMessageTo(999), "сделала выгрузку")

	env.svc.HandleUpdate(textUpdate(999, "/reports 2024-01-10"))
	require.Contains(env.out.lastMessageTo(999), "Неверный формат даты")

	env.svc.HandleUpdate(textUpdate(999, "/reports 10.01.2000"))
	require.Contains(env.out.lastMessageTo(999), "Нет отчетов")
}

func TestWeekDigestRefusedForNonAdmin(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(999)
	env.registerUser(10, "Иван Петров")

	env.svc.HandleUpdate(textUpdate(10, "/reports 10.01.2024"))
	require.Contains(env.out.lastMessageTo(10), "Недостаточно прав")
}

func TestRatingCountsApproved(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(999)

	today := Day(time.Now())
	for i := 0; i < 2; i++ {
		require.NoError(env.reports.Create(&db.Report{
			UserID:     10,
			FullName:   "Анна Иванова",
			ReportText: pointer.ToString("отчет"),
			ReportDate: today,
			Status:     db.ReportStatusApproved,
		}))
	}
	require.NoError(env.reports.Create(&db.Report{
		UserID:     11,
		FullName:   "Борис Сидоров",
		ReportText: pointer.ToString("отчет"),
		ReportDate: today,
		Status:     db.ReportStatusPending,
	}))

	env.svc.HandleUpdate(textUpdate(999, btnRating))

	last := env.out.lastMessageTo(999)
	require.Contains(last, "1. Анна Иванова — 2")
	require.NotContains(last, "Борис Сидоров")
}

func TestSendWeeklyDigest(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(999, 998)

	env.svc.SendWeeklyDigest(time.Now())
	require.Contains(env.out.lastMessageTo(999), "Нет отчетов")
	require.Contains(env.out.lastMessageTo(998), "Нет отчетов")

	require.NoError(env.reports.Create(&db.Report{
		UserID:     10,
		FullName:   "Анна Иванова",
		ReportText: pointer.ToString("итог недели"),
		ReportDate: Day(time.Now()),
		Status:     db.ReportStatusApproved,
	}))

	env.svc.SendWeeklyDigest(time.Now())
	require.Contains(env.out.lastMessageTo(999), "итог недели")
	require.Contains(env.out.lastMessageTo(998), "итог недели")
}
