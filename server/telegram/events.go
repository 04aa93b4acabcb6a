package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trademind/assistant/internal/trade"
)

// eventFor maps a non-command message to a capture event. The boolean is
// false for messages that carry nothing the trade machine can act on.
func eventFor(msg *tgbotapi.Message) (trade.Event, bool) {
	switch {
	case len(msg.Photo) > 0:
		// Telegram lists size variants smallest first.
		best := msg.Photo[len(msg.Photo)-1]
		return trade.ImageReceived{Ref: best.FileID}, true
	case msg.Voice != nil:
		return trade.VoiceReceived{Ref: msg.Voice.FileID}, true
	case msg.Text != "":
		switch msg.Text {
		case buttonNewTrade:
			return trade.StartNewTrade{}, true
		case buttonDone:
			return trade.DoneSignal{}, true
		case buttonCancel:
			return trade.CancelSignal{}, true
		}
		return trade.TextReceived{Text: msg.Text}, true
	}
	return nil, false
}
