package bot

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

// Sender is the outbound side of the Telegram API.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type UserStore interface {
	Create(user *db.User) error
	GetByTelegramUserID(telegramUserID int64) (*db.User, error)
	GetAll() ([]db.User, error)
}

type ReportStore interface {
	Create(report *db.Report) error
	GetByID(reportID int64) (*db.Report, error)
	GetPendingInRange(from, to time.Time) ([]db.Report, error)
	GetAllInRange(from, to time.Time) ([]db.Report, error)
	GetByUserInRange(userID int64, from, to time.Time) ([]db.Report, error)
	SetDecision(reportID int64, status db.ReportStatus, reason *string) (bool, error)
	CountApprovedInRange(from, to time.Time) ([]db.ApprovedCount, error)
}

type TaskStore interface {
	Create(task *db.Task) error
	GetOpenByUser(userID int64) ([]db.Task, error)
}

// PhotoArchiver persists submitted photos locally, best effort.
type PhotoArchiver interface {
	Save(fileID string) (string, error)
}

// ClipLibrary resolves logical clip names to local video files.
type ClipLibrary interface {
	Resolve(name string) (string, error)
}

type Service struct {
	out      Sender
	users    UserStore
	reports  ReportStore
	tasks    TaskStore
	sessions *SessionManager
	admins   map[int64]bool
	codes    map[string]bool
	archive  PhotoArchiver
	clips    ClipLibrary
	log      zerolog.Logger
}

func New(
	out Sender,
	users UserStore,
	reports ReportStore,
	tasks TaskStore,
	sessions *SessionManager,
	adminIDs []int64,
	accessCodes []string,
	archive PhotoArchiver,
	clips ClipLibrary,
	log zerolog.Logger,
) *Service {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	codes := make(map[string]bool, len(accessCodes))
	for _, code := range accessCodes {
		codes[code] = true
	}

	return &Service{
		out:      out,
		users:    users,
		reports:  reports,
		tasks:    tasks,
		sessions: sessions,
		admins:   admins,
		codes:    codes,
		archive:  archive,
		clips:    clips,
		log:      log,
	}
}

// Run consumes updates until the channel closes.
func (s *Service) Run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		s.HandleUpdate(update)
	}
}

// HandleUpdate routes one inbound message by the sender's session state.
func (s *Service) HandleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	sess := s.sessions.Get(chatID)

	switch sess.State {
	case StateIdle:
		s.handleIdle(chatID, msg, sess)
	case StateAwaitingCode:
		s.handleAccessCode(chatID, msg, sess)
	case StateAwaitingPhotoOrText:
		s.handleReportPhotoOrText(chatID, msg, sess)
	case StateAwaitingText:
		s.handleReportText(chatID, msg, sess)
	case StateReviewing:
		s.handleReviewDecision(chatID, msg, sess)
	case StateAwaitingRevisionReason:
		s.handleRevisionReason(chatID, msg, sess)
	case StateChoosingTaskType:
		s.handleTaskType(chatID, msg, sess)
	case StateEnteringTaskText:
		s.handleTaskText(chatID, msg, sess)
	case StateChoosingAssignee:
		s.handleAssignee(chatID, msg, sess)
	default:
		s.log.Warn().Str("state", string(sess.State)).Int64("chat_id", chatID).Msg("unknown session state")
		s.sessions.Clear(chatID)
		s.sendMainMenu(chatID, "Выберите действие:")
	}
}

func (s *Service) handleIdle(chatID int64, msg *tgbotapi.Message, sess *Session) {
	text := strings.TrimSpace(msg.Text)

	if text == "/start" {
		s.handleStart(chatID, msg)
		return
	}

	if s.admins[chatID] {
		if strings.HasPrefix(text, "/reports") {
			s.handleWeekDigest(chatID, strings.TrimSpace(strings.TrimPrefix(text, "/reports")))
			return
		}

		switch text {
		case btnReviewReports:
			s.handleReviewEntry(chatID, sess)
		case btnWeekDigest:
			s.handleWeekDigest(chatID, "")
		case btnRating:
			s.handleRating(chatID)
		case btnAssignTask:
			s.handleAssignEntry(chatID, sess)
		default:
			s.sendWithKeyboard(chatID, "Выберите действие:", AdminMainMenu())
		}
		return
	}

	if isAdminTrigger(text) || strings.HasPrefix(text, "/reports") {
		// admin-only trigger from a regular user: refuse without detail
		s.send(tgbotapi.NewMessage(chatID, "Недостаточно прав."))
		return
	}

	user, err := s.users.GetByTelegramUserID(chatID)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load user")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка. Попробуйте позже."))
		return
	}

	if user == nil {
		s.send(tgbotapi.NewMessage(chatID, "🚫 Вы не зарегистрированы. Отправьте /start и пройдите регистрацию."))
		return
	}

	switch text {
	case btnSubmitReport:
		s.handleSubmitEntry(chatID, sess)
	case btnMyReports:
		s.handleMyReports(chatID)
	case btnMyTasks:
		s.handleMyTasks(chatID)
	default:
		s.sendMainMenu(chatID, "Выберите действие:")
	}
}

func isAdminTrigger(text string) bool {
	switch text {
	case btnReviewReports, btnWeekDigest, btnRating, btnAssignTask:
		return true
	}

	return false
}

// send delivers one outbound message; delivery failures are logged and never
// abort the flow that triggered them.
func (s *Service) send(c tgbotapi.Chattable) {
	if _, err := s.out.Send(c); err != nil {
		s.log.Warn().Err(err).Msg("send failed")
	}
}

func (s *Service) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	s.send(msg)
}

// sendMainMenu shows the menu matching the recipient's role, optionally with
// the "personal_cabinet" clip. A missing clip degrades to text only.
func (s *Service) sendMainMenu(chatID int64, text string) {
	s.sendClip(chatID, "personal_cabinet")

	keyboard := UserMainMenu()
	if s.admins[chatID] {
		keyboard = AdminMainMenu()
	}
	s.sendWithKeyboard(chatID, text, keyboard)
}

func (s *Service) sendClip(chatID int64, name string) {
	if s.clips == nil {
		return
	}

	path, err := s.clips.Resolve(name)
	if err != nil {
		// a missing clip degrades the menu to text only
		s.log.Warn().Err(err).Str("clip", name).Msg("cannot resolve clip")
		return
	}

	s.send(tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path)))
}

func (s *Service) notifyAdmins(text string) {
	for adminID := range s.admins {
		s.send(tgbotapi.NewMessage(adminID, text))
	}
}

func fullName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}

	name := from.FirstName
	if from.LastName != "" {
		name += " " + from.LastName
	}

	return strings.TrimSpace(name)
}
