package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/trademind/assistant/internal/trade"
)

// Responder sends machine replies back through the bot API.
// It implements trade.Responder.
type Responder struct {
	api *tgbotapi.BotAPI
}

// NewResponder creates a responder bound to the given bot API.
func NewResponder(api *tgbotapi.BotAPI) *Responder {
	return &Responder{api: api}
}

// SendText sends a plain text reply, optionally swapping the reply keyboard.
func (r *Responder) SendText(ctx context.Context, userID int64, text string, kb trade.Keyboard) error {
	msg := tgbotapi.NewMessage(userID, text)
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := r.api.Send(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}

// SendPhoto uploads the image bytes as a photo with a caption.
func (r *Responder) SendPhoto(ctx context.Context, userID int64, filename string, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(userID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	photo.Caption = caption
	if _, err := r.api.Send(photo); err != nil {
		return errors.Wrap(err, "send photo")
	}
	return nil
}

// SendProcessing sends a status message and returns a handle that can later
// rewrite it into an error report or remove it once the work is done.
func (r *Responder) SendProcessing(ctx context.Context, userID int64, text string) (trade.Placeholder, error) {
	sent, err := r.api.Send(tgbotapi.NewMessage(userID, text))
	if err != nil {
		return nil, errors.Wrap(err, "send processing message")
	}
	return &placeholder{api: r.api, chatID: userID, messageID: sent.MessageID}, nil
}

type placeholder struct {
	api       *tgbotapi.BotAPI
	chatID    int64
	messageID int
}

func (p *placeholder) Edit(ctx context.Context, text string) error {
	edit := tgbotapi.NewEditMessageText(p.chatID, p.messageID, text)
	if _, err := p.api.Send(edit); err != nil {
		return errors.Wrap(err, "edit processing message")
	}
	return nil
}

func (p *placeholder) Delete(ctx context.Context) error {
	del := tgbotapi.NewDeleteMessage(p.chatID, p.messageID)
	if _, err := p.api.Request(del); err != nil {
		return errors.Wrap(err, "delete processing message")
	}
	return nil
}
