package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/daily_report_bot/internal/db"
)

func (s *Service) handleAssignEntry(chatID int64, sess *Session) {
	sess.State = StateChoosingTaskType

	s.sendWithKeyboard(chatID, "Выберите тип задачи:", TaskCategories())
}

func (s *Service) handleTaskType(chatID int64, msg *tgbotapi.Message, sess *Session) {
	text := strings.TrimSpace(msg.Text)

	if text == btnBack {
		s.sessions.Clear(chatID)
		s.sendWithKeyboard(chatID, "Главное меню:", AdminMainMenu())
		return
	}

	switch text {
	case btnTaskPrimary:
		sess.TaskCategory = db.TaskCategoryPrimary
	case btnTaskSecondary:
		sess.TaskCategory = db.TaskCategorySecondary
	default:
		s.sendWithKeyboard(chatID, "Выберите один из вариантов на клавиатуре.", TaskCategories())
		return
	}

	sess.State = StateEnteringTaskText
	s.sendWithKeyboard(chatID, "Введите текст задачи:", BackMenu())
}

func (s *Service) handleTaskText(chatID int64, msg *tgbotapi.Message, sess *Session) {
	text := strings.TrimSpace(msg.Text)

	if text == btnBack {
		// back returns to category choice, keeping nothing from this step
		sess.State = StateChoosingTaskType
		s.sendWithKeyboard(chatID, "Выберите тип задачи:", TaskCategories())
		return
	}

	if text == "" {
		s.send(tgbotapi.NewMessage(chatID, "Текст задачи не может быть пустым. Введите текст:"))
		return
	}

	users, err := s.users.GetAll()
	if err != nil {
		s.log.Error().Err(err).Msg("cannot load users")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка. Попробуйте позже."))
		return
	}

	if len(users) == 0 {
		s.sessions.Clear(chatID)
		s.sendWithKeyboard(chatID, "Нет зарегистрированных сотрудников.", AdminMainMenu())
		return
	}

	sess.TaskText = text
	sess.State = StateChoosingAssignee
	sess.Assignees = make(map[string]int64, len(users))

	names := make([]string, 0, len(users))
	for _, u := range users {
		label := fmt.Sprintf("%s [%d]", u.FullName, u.TelegramUserID)
		sess.Assignees[label] = u.TelegramUserID
		names = append(names, label)
	}

	s.sendWithKeyboard(chatID, "Выберите сотрудника:", AssigneeMenu(names))
}

func (s *Service) handleAssignee(chatID int64, msg *tgbotapi.Message, sess *Session) {
	text := strings.TrimSpace(msg.Text)

	if text == btnCancel || text == btnBack {
		s.sessions.Clear(chatID)
		s.sendWithKeyboard(chatID, "Назначение задачи отменено.", AdminMainMenu())
		return
	}

	assigneeID, ok := sess.Assignees[text]
	if !ok {
		s.send(tgbotapi.NewMessage(chatID, "Выберите сотрудника из списка."))
		return
	}

	task := &db.Task{
		UserID:   assigneeID,
		Category: sess.TaskCategory,
		TaskText: sess.TaskText,
		TaskDate: Day(time.Now()),
		Status:   db.TaskStatusNew,
	}

	if err := s.tasks.Create(task); err != nil {
		s.log.Error().Err(err).Int64("assignee_id", assigneeID).Msg("cannot create task")
		s.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить задачу. Попробуйте позже."))
		return
	}

	s.send(tgbotapi.NewMessage(assigneeID, fmt.Sprintf("📌 Вам назначена задача [%s]: %s", categoryTitle(task.Category), task.TaskText)))

	s.sessions.Clear(chatID)
	s.sendWithKeyboard(chatID, "Задача назначена.", AdminMainMenu())

	s.log.Info().Int64("task_id", task.ID).Int64("assignee_id", assigneeID).Msg("task assigned")
}

func (s *Service) handleMyTasks(chatID int64) {
	tasks, err := s.tasks.GetOpenByUser(chatID)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("cannot load tasks")
		s.send(tgbotapi.NewMessage(chatID, "Произошла ошибка. Попробуйте позже."))
		return
	}

	if len(tasks) == 0 {
		s.send(tgbotapi.NewMessage(chatID, "У вас нет открытых задач."))
		return
	}

	s.sendClip(chatID, "tasks")

	msg := tgbotapi.NewMessage(chatID, FormatUserTasks(tasks))
	msg.ParseMode = tgbotapi.ModeHTML
	s.send(msg)
}
