package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

func (s *Service) handleSubmitEntry(chatID int64, sess *Session) {
	sess.State = StateAwaitingPhotoOrText
	sess.PhotoFileID = ""

	s.sendWithKeyboard(chatID, "📝 Прикрепите фото или введите текст отчета за сегодня:", BackMenu())
}

func (s *Service) handleReportPhotoOrText(chatID int64, msg *tgbotapi.Message, sess *Session) {
	if strings.TrimSpace(msg.Text) == btnBack {
		s.sessions.Clear(chatID)
		s.sendMainMenu(chatID, "Действие отменено.")
		return
	}

	if len(msg.Photo) > 0 {
		// highest resolution version is last
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		sess.PhotoFileID = fileID
		sess.State = StateAwaitingText

		s.archivePhoto(chatID, fileID)
		s.sendWithKeyboard(chatID, "Добавьте описание к фото (или напишите «без описания»):", BackMenu())
		return
	}

	if strings.TrimSpace(msg.Text) != "" {
		s.finalizeReport(chatID, msg, sess)
		return
	}

	s.send(tgbotapi.NewMessage(chatID, "Прикрепите фото или введите текст отчета."))
}

func (s *Service) handleReportText(chatID int64, msg *tgbotapi.Message, sess *Session) {
	if strings.TrimSpace(msg.Text) == btnBack {
		s.sessions.Clear(chatID)
		s.sendMainMenu(chatID, "Действие отменено.")
		return
	}

	if len(msg.Photo) > 0 {
		// a repeated photo replaces the previous one
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		sess.PhotoFileID = fileID
		s.archivePhoto(chatID, fileID)
		s.send(tgbotapi.NewMessage(chatID, "Фото обновлено. Добавьте описание (или напишите «без описания»):"))
		return
	}

	if strings.TrimSpace(msg.Text) == "" {
		s.send(tgbotapi.NewMessage(chatID, "Введите описание к фото (или напишите «без описания»):"))
		return
	}

	s.finalizeReport(chatID, msg, sess)
}

// finalizeReport is the terminal transition of the submission flow: it builds
// the report, persists it as pending and notifies the admins. A report with
// neither photo nor text is rejected and the flow stays in place.
func (s *Service) finalizeReport(chatID int64, msg *tgbotapi.Message, sess *Session) {
	text := NormalizeReportText(msg.Text)

	if text == "" && sess.PhotoFileID == "" {
		s.send(tgbotapi.NewMessage(chatID, "Отчет не может быть пустым: прикрепите фото или введите текст."))
		return
	}

	name := fullName(msg.From)
	report := &db.Report{
		UserID:     chatID,
		FullName:   name,
		ReportDate: Day(time.Now()),
		Status:     db.ReportStatusPending,
	}
	if text != "" {
		report.ReportText = pointer.ToString(text)
	}
	if sess.PhotoFileID != "" {
		report.PhotoFileID = pointer.ToString(sess.PhotoFileID)
	}

	// the session is cleared only after the insert succeeds, so a store
	// failure leaves the flow where it was
	if err := s.reports.Create(report); err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot create report")
		s.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить отчет. Попробуйте позже."))
		return
	}

	s.sessions.Clear(chatID)
	s.sendMainMenu(chatID, "✅ Ваш отчет сохранен и отправлен на проверку.")
	s.notifyAdmins(fmt.Sprintf("Новый отчет от %s за %s.", name, report.ReportDate.Format(dayLayout)))

	s.log.Info().Int64("chat_id", chatID).Int64("report_id", report.ID).Msg("report submitted")
}

func (s *Service) archivePhoto(chatID int64, fileID string) {
	if s.archive == nil {
		return
	}

	if _, err := s.archive.Save(fileID); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("cannot archive report photo")
	}
}

func (s *Service) handleMyReports(chatID int64) {
	from, to := WeekRange(time.Now())

	reports, err := s.reports.GetByUserInRange(chatID, from, to)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load user reports")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка. Попробуйте позже."))
		return
	}

	if len(reports) == 0 {
		s.send(tgbotapi.NewMessage(chatID, "За эту неделю отчетов нет."))
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatUserReports(reports))
	msg.ParseMode = tgbotapi.ModeHTML
	s.send(msg)
}
