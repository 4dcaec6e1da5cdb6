package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

// handleReviewEntry snapshots this week's pending reports into the admin's
// session and starts the sequential walk. Two admins reviewing at the same
// time hold independent snapshots; decisions stay safe because SetDecision
// only touches rows still pending.
func (s *Service) handleReviewEntry(chatID int64, sess *Session) {
	from, to := WeekRange(time.Now())

	reports, err := s.reports.GetPendingInRange(from, to)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load pending reports")
		s.send(tgbotapi.NewMessage(chatID, "Ошибка при получении отчетов. Попробуйте позже."))
		return
	}

	if len(reports) == 0 {
		s.sendWithKeyboard(chatID, "Нет отчетов на проверку.", AdminMainMenu())
		return
	}

	queue := make([]int64, 0, len(reports))
	for _, r := range reports {
		queue = append(queue, r.ID)
	}

	sess.State = StateReviewing
	sess.Queue = queue
	sess.Cursor = 0

	s.showCurrentReport(chatID, sess)
}

// showCurrentReport presents the report under the cursor, skipping entries
// another admin has already decided. Past the end of the snapshot the session
// returns to idle.
func (s *Service) showCurrentReport(chatID int64, sess *Session) {
	for sess.Cursor < len(sess.Queue) {
		report, err := s.reports.GetByID(sess.Queue[sess.Cursor])
		if err != nil {
			s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load report")
			s.sessions.Clear(chatID)
			s.sendWithKeyboard(chatID, "Ошибка при получении отчета. Попробуйте позже.", AdminMainMenu())
			return
		}

		if report == nil || report.Status != db.ReportStatusPending {
			sess.Cursor++
			continue
		}

		sess.CurrentReportID = report.ID

		text := fmt.Sprintf("Отчет #%d от %s за %s", report.ID, report.FullName, report.ReportDate.Format(dayLayout))
		if report.ReportText != nil {
			text += "\n\n" + *report.ReportText
		}

		if report.PhotoFileID != nil {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(*report.PhotoFileID))
			photo.Caption = text
			photo.ReplyMarkup = ReviewActions()
			s.send(photo)
		} else {
			s.sendWithKeyboard(chatID, text, ReviewActions())
		}

		return
	}

	s.sessions.Clear(chatID)
	s.sendWithKeyboard(chatID, "Все отчеты проверены. 🎉", AdminMainMenu())
}

func (s *Service) handleReviewDecision(chatID int64, msg *tgbotapi.Message, sess *Session) {
	switch strings.TrimSpace(msg.Text) {
	case btnApprove:
		s.decideCurrent(chatID, sess, db.ReportStatusApproved, nil)

	case btnRevise:
		sess.State = StateAwaitingRevisionReason
		s.sendWithKeyboard(chatID, "Введите причину отправки на доработку:", BackMenu())

	case btnMainMenu, btnBack:
		s.sessions.Clear(chatID)
		s.sendWithKeyboard(chatID, "Главное меню:", AdminMainMenu())

	default:
		s.sendWithKeyboard(chatID, "Выберите действие.", ReviewActions())
	}
}

func (s *Service) handleRevisionReason(chatID int64, msg *tgbotapi.Message, sess *Session) {
	reason := strings.TrimSpace(msg.Text)

	if reason == btnBack {
		sess.State = StateReviewing
		s.showCurrentReport(chatID, sess)
		return
	}

	if reason == "" {
		s.send(tgbotapi.NewMessage(chatID, "Причина не может быть пустой. Введите текст:"))
		return
	}

	sess.State = StateReviewing
	s.decideCurrent(chatID, sess, db.ReportStatusNeedsRevision, pointer.ToString(reason))
}

// decideCurrent applies one review decision and advances the cursor. The
// status update is conditional on the report still being pending; a report
// decided elsewhere in the meantime is skipped.
func (s *Service) decideCurrent(chatID int64, sess *Session, status db.ReportStatus, reason *string) {
	reportID := sess.CurrentReportID

	updated, err := s.reports.SetDecision(reportID, status, reason)
	if err != nil {
		s.log.Error().Err(err).Int64("report_id", reportID).Msg("cannot update report status")
		s.send(tgbotapi.NewMessage(chatID, "Не удалось обновить отчет. Попробуйте позже."))
		return
	}

	if !updated {
		s.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Отчет #%d уже обработан другим администратором.", reportID)))
		sess.Cursor++
		s.showCurrentReport(chatID, sess)
		return
	}

	s.notifyReportOwner(reportID, status, reason)

	sess.Cursor++
	s.showCurrentReport(chatID, sess)
}

func (s *Service) notifyReportOwner(reportID int64, status db.ReportStatus, reason *string) {
	report, err := s.reports.GetByID(reportID)
	if err != nil || report == nil {
		s.log.Warn().Err(err).Int64("report_id", reportID).Msg("cannot load report for owner notification")
		return
	}

	var text string
	if status == db.ReportStatusApproved {
		text = fmt.Sprintf("✅ Ваш отчет за %s принят.", report.ReportDate.Format(dayLayout))
	} else {
		text = fmt.Sprintf("🔄 Ваш отчет за %s отправлен на доработку. Причина: %s",
			report.ReportDate.Format(dayLayout), pointer.GetString(reason))
	}

	s.send(tgbotapi.NewMessage(report.UserID, text))
}
