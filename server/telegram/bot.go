package telegram

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/trademind/assistant/internal/profile"
	"github.com/trademind/assistant/internal/trade"
)

const (
	pollTimeout = 30
	queueSize   = 16
)

// Bot runs the Telegram front end: it long-polls for updates, filters them
// through the allow list and the rate limiter, and feeds the trade machine.
// Updates from the same user are processed in order on a dedicated worker;
// different users proceed independently.
type Bot struct {
	api       *tgbotapi.BotAPI
	machine   *trade.Machine
	responder *Responder
	profile   *profile.Profile
	limiter   *RateLimiter
	logger    *slog.Logger

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
	wg     sync.WaitGroup
}

// Connect authenticates against the Telegram Bot API.
func Connect(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "connect to bot api")
	}
	return api, nil
}

// New builds the front end over an authenticated client.
func New(api *tgbotapi.BotAPI, p *profile.Profile, machine *trade.Machine, logger *slog.Logger) *Bot {
	return &Bot{
		api:       api,
		machine:   machine,
		responder: NewResponder(api),
		profile:   p,
		limiter:   NewRateLimiter(),
		logger:    logger,
		queues:    make(map[int64]chan tgbotapi.Update),
	}
}

// Run polls for updates until the context is canceled, then drains the
// per-user workers.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", slog.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.shutdown()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.shutdown()
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) shutdown() {
	b.mu.Lock()
	for _, q := range b.queues {
		close(q)
	}
	b.queues = make(map[int64]chan tgbotapi.Update)
	b.mu.Unlock()
	b.wg.Wait()
}

// dispatch routes an update to its user's worker queue, applying the allow
// list and the rate limiter first.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID

	if !b.profile.Allows(userID) {
		b.logger.Warn("update from unauthorized user", slog.Int64("user_id", userID))
		return
	}
	if !b.limiter.Allow(userID) {
		b.logger.Warn("update dropped by rate limiter", slog.Int64("user_id", userID))
		return
	}

	select {
	case b.queueFor(ctx, userID) <- update:
	default:
		b.logger.Warn("worker queue full, update dropped", slog.Int64("user_id", userID))
	}
}

func (b *Bot) queueFor(ctx context.Context, userID int64) chan tgbotapi.Update {
	b.mu.Lock()
	defer b.mu.Unlock()

	if q, ok := b.queues[userID]; ok {
		return q
	}
	q := make(chan tgbotapi.Update, queueSize)
	b.queues[userID] = q

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for update := range q {
			b.handleMessage(ctx, update.Message)
		}
	}()
	return q
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, userID, msg.Command())
		return
	}

	switch msg.Text {
	case buttonHelp:
		b.reply(ctx, userID, helpText, trade.KeyboardMain)
		return
	case buttonStats:
		b.reply(ctx, userID, statsText, trade.KeyboardMain)
		return
	}

	ev, ok := eventFor(msg)
	if !ok {
		return
	}
	b.machine.HandleEvent(ctx, userID, ev)
}

func (b *Bot) handleCommand(ctx context.Context, userID int64, command string) {
	switch command {
	case "start":
		b.machine.Reset(userID)
		b.reply(ctx, userID, welcomeText, trade.KeyboardMain)
	case "help":
		b.reply(ctx, userID, helpText, trade.KeyboardMain)
	case "new":
		b.machine.HandleEvent(ctx, userID, trade.StartNewTrade{})
	case "cancel":
		b.machine.HandleEvent(ctx, userID, trade.CancelSignal{})
	case "stats":
		b.reply(ctx, userID, statsText, trade.KeyboardMain)
	default:
		b.reply(ctx, userID, mainMenuText, trade.KeyboardMain)
	}
}

func (b *Bot) reply(ctx context.Context, userID int64, text string, kb trade.Keyboard) {
	if err := b.responder.SendText(ctx, userID, text, kb); err != nil {
		b.logger.Warn("reply not delivered",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}
}
