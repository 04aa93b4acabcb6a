package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trademind/assistant/internal/trade"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonNewTrade),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonStats),
			tgbotapi.NewKeyboardButton(buttonHelp),
		),
	)
}

func doneCancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonDone),
			tgbotapi.NewKeyboardButton(buttonCancel),
		),
	)
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonCancel),
		),
	)
}

// replyMarkup translates the transport-neutral keyboard hint into a
// Telegram reply keyboard. Returns nil when no keyboard change is wanted.
func replyMarkup(kb trade.Keyboard) interface{} {
	switch kb {
	case trade.KeyboardMain:
		return mainMenuKeyboard()
	case trade.KeyboardDoneCancel:
		return doneCancelKeyboard()
	case trade.KeyboardCancel:
		return cancelKeyboard()
	default:
		return nil
	}
}
