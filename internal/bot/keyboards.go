package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnSubmitReport = "📝 Сдать отчет"
	btnMyReports    = "📋 Мои отчеты"
	btnMyTasks      = "📌 Мои задачи"

	btnReviewReports = "Проверить отчеты"
	btnWeekDigest    = "Отчеты за неделю"
	btnRating        = "Рейтинг"
	btnAssignTask    = "Назначить задачу"

	btnApprove  = "✅ Принять"
	btnRevise   = "🔄 На доработку"
	btnMainMenu = "Главное меню"

	btnTaskPrimary   = "Основная"
	btnTaskSecondary = "Дополнительная"

	btnBack   = "🔙 Назад"
	btnCancel = "Отмена"
)

func UserMainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSubmitReport),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyReports),
			tgbotapi.NewKeyboardButton(btnMyTasks),
		),
	)
}

func AdminMainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnReviewReports),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeekDigest),
			tgbotapi.NewKeyboardButton(btnRating),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAssignTask),
		),
	)
}

func BackMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
}

func ReviewActions() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnApprove),
			tgbotapi.NewKeyboardButton(btnRevise),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMainMenu),
		),
	)
}

func TaskCategories() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTaskPrimary),
			tgbotapi.NewKeyboardButton(btnTaskSecondary),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
}

func AssigneeMenu(names []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, name := range names {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(name),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnCancel),
	))

	return tgbotapi.NewReplyKeyboard(rows...)
}
