package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

const (
	maxCodeAttempts = 5
	codeLockout     = 10 * time.Minute
)

func (s *Service) handleStart(chatID int64, msg *tgbotapi.Message) {
	// admins are identified by the allow-list and never get a user record
	if s.admins[chatID] {
		s.sendMainMenu(chatID, "Добро пожаловать! Выберите действие:")
		return
	}

	user, err := s.users.GetByTelegramUserID(chatID)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load user")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка. Попробуйте позже."))
		return
	}

	if user != nil {
		s.sendMainMenu(chatID, fmt.Sprintf("✅ Вы уже зарегистрированы как %s.", user.FullName))
		return
	}

	sess := s.sessions.Get(chatID)
	sess.State = StateAwaitingCode

	reply := tgbotapi.NewMessage(chatID, "🔒 Введите ваш код сотрудника для регистрации:")
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	s.send(reply)
}

func (s *Service) handleAccessCode(chatID int64, msg *tgbotapi.Message, sess *Session) {
	if strings.TrimSpace(msg.Text) == btnBack {
		s.sessions.Clear(chatID)
		s.send(tgbotapi.NewMessage(chatID, "Регистрация отменена. Отправьте /start, чтобы начать заново."))
		return
	}

	// photos, stickers and the like are not code attempts
	code := strings.TrimSpace(msg.Text)
	if code == "" {
		s.send(tgbotapi.NewMessage(chatID, "🔒 Введите ваш код сотрудника для регистрации:"))
		return
	}

	now := time.Now()
	if sess.LockedUntil.After(now) {
		s.send(tgbotapi.NewMessage(chatID, "Слишком много неверных попыток. Попробуйте позже."))
		return
	}

	if !s.codes[code] {
		sess.CodeAttempts++
		if sess.CodeAttempts >= maxCodeAttempts {
			sess.CodeAttempts = 0
			sess.LockedUntil = now.Add(codeLockout)
			s.send(tgbotapi.NewMessage(chatID, "❌ Слишком много неверных попыток. Ввод кода заблокирован на 10 минут."))
			return
		}

		s.send(tgbotapi.NewMessage(chatID, "❌ Неверный код сотрудника. Попробуйте еще раз."))
		return
	}

	name := fullName(msg.From)
	user := &db.User{
		TelegramUserID: chatID,
		FullName:       name,
	}

	// stay in the flow on store failure: the state only advances once the
	// user record is persisted
	if err := s.users.Create(user); err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot create user")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка при регистрации. Попробуйте позже."))
		return
	}

	s.sessions.Clear(chatID)
	s.sendMainMenu(chatID, "✅ Вы успешно зарегистрированы! Теперь вы можете отправлять отчеты.")
	s.notifyAdmins(fmt.Sprintf("Новый сотрудник зарегистрировался: %s", name))

	s.log.Info().Int64("chat_id", chatID).Str("full_name", name).Msg("user registered")
}
