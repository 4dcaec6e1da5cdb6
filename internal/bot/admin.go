package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleWeekDigest sends the admin a digest of all reports in the week
// containing the given day (today when the argument is empty).
func (s *Service) handleWeekDigest(chatID int64, dateArg string) {
	target := time.Now()

	if dateArg != "" {
		day, err := ParseDay(dateArg)
		if err != nil {
			s.send(tgbotapi.NewMessage(chatID, "❌ Неверный формат даты. Используйте ДД.ММ.ГГГГ."))
			return
		}
		target = day
	}

	from, to := WeekRange(target)

	reports, err := s.reports.GetAllInRange(from, to)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot load reports for digest")
		s.send(tgbotapi.NewMessage(chatID, "Ошибка при получении отчетов. Попробуйте позже."))
		return
	}

	if len(reports) == 0 {
		s.send(tgbotapi.NewMessage(chatID, "❌ Нет отчетов за этот период."))
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatDigest(reports))
	msg.ParseMode = tgbotapi.ModeHTML
	s.send(msg)
}

func (s *Service) handleRating(chatID int64) {
	from, to := WeekRange(time.Now())

	counts, err := s.reports.CountApprovedInRange(from, to)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot load rating")
		s.send(tgbotapi.NewMessage(chatID, "Ошибка при получении рейтинга. Попробуйте позже."))
		return
	}

	if len(counts) == 0 {
		s.send(tgbotapi.NewMessage(chatID, "За эту неделю нет принятых отчетов."))
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatRating(counts, from, to))
	msg.ParseMode = tgbotapi.ModeHTML
	s.send(msg)
}

// SendWeeklyDigest pushes the current week's digest to every admin. It is
// invoked by the scheduler, not by an inbound message.
func (s *Service) SendWeeklyDigest(now time.Time) {
	from, to := WeekRange(now)

	reports, err := s.reports.GetAllInRange(from, to)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot load reports for weekly digest")
		return
	}

	text := "Нет отчетов за прошедшую неделю."
	if len(reports) > 0 {
		text = FormatDigest(reports)
	}

	for adminID := range s.admins {
		msg := tgbotapi.NewMessage(adminID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		s.send(msg)
	}

	s.log.Info().Int("reports", len(reports)).Msg("weekly digest sent")
}
