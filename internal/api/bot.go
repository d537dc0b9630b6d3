package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	app "headpointer/internal/application"
	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я пульт для управления курсором носом.

Сюда приходят уведомления о захвате и потере объекта.

📋 Команды:
/status — состояние трекинга
/select x y — начать трекинг носа в точке кадра
/reset — заново искать глаза
/mute — отключить уведомления
/help — справка`

	msgHelp = `ℹ️ Как пользоваться:

1️⃣ Выберите область носа в окне (клавиша s) или командой /select x y
2️⃣ Отводите нос в сторону, курсор поедет туда же, чем дальше, тем быстрее
3️⃣ Моргните, чтобы кликнуть

📋 Команды:
/start — включить уведомления
/status — состояние трекинга
/select x y — выбрать область
/reset — сбросить трекинг глаза
/mute — отключить уведомления`

	msgMuted          = "🔕 Уведомления отключены. /start включит их снова."
	msgResetQueued    = "🔄 Трекинг глаза будет сброшен на следующем кадре."
	msgSelectUsage    = "✏️ Укажите точку: /select x y"
	msgSelectQueued   = "🎯 Область (%d, %d) будет выбрана на следующем кадре."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgNotCommand     = "⌨️ Я понимаю только команды. Используйте /help для справки."
	msgError          = "⚠️ Что-то пошло не так, попробуйте ещё раз."
	msgNoSession      = "⏸ Сессия трекинга не запущена."
)

// SessionControl команды и состояние сессии, доступные из бота
type SessionControl interface {
	port.Controls
	Status() app.Status
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot Telegram-пульт сессии: принимает команды и рассылает события трекинга
type Bot struct {
	api         *tgbotapi.BotAPI
	sender      sender
	subscribers *app.SubscriberService
	session     SessionControl
	logger      *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, subscribers *app.SubscriberService, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram auth")
	}

	logger.Info("telegram authorized", "account", api.Self.UserName)

	b := newBot(api, subscribers, logger)
	b.api = api
	return b, nil
}

func newBot(s sender, subscribers *app.SubscriberService, logger *slog.Logger) *Bot {
	return &Bot{
		sender:      s,
		subscribers: subscribers,
		logger:      logger,
	}
}

// Bind подключает сессию, которой управляет бот
func (b *Bot) Bind(session SessionControl) {
	b.session = session
}

// Run обрабатывает сообщения до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return errors.Wrap(entity.ErrNotConfigured, "telegram api")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Notify рассылает подписчикам события трекинга носа.
// Остальные события слишком частые для чата.
func (b *Bot) Notify(ctx context.Context, ev entity.Event) error {
	if ev.Kind != entity.EventNoseArmed && ev.Kind != entity.EventNoseLost {
		return nil
	}

	subs, err := b.subscribers.Active(ctx)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s (кадр %d)", ev.Message(), ev.Frame)
	var first error
	for _, sub := range subs {
		if err := b.send(sub.ChatID, text); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if err := b.send(msg.Chat.ID, b.respond(ctx, msg)); err != nil {
		b.logger.Warn("telegram send failed", "chat", msg.Chat.ID, "error", err)
	}
}

// respond выполняет команду и возвращает ответ
func (b *Bot) respond(ctx context.Context, msg *tgbotapi.Message) string {
	if !msg.IsCommand() {
		return msgNotCommand
	}

	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}

	switch msg.Command() {
	case "start":
		if _, err := b.subscribers.Subscribe(ctx, userID, msg.Chat.ID); err != nil {
			b.logger.Error("subscribe failed", "user", userID, "error", err)
			return msgError
		}
		return msgStart

	case "help":
		return msgHelp

	case "mute":
		if _, err := b.subscribers.Mute(ctx, userID, msg.Chat.ID); err != nil {
			b.logger.Error("mute failed", "user", userID, "error", err)
			return msgError
		}
		return msgMuted

	case "status", "reset", "select":
		if b.session == nil {
			return msgNoSession
		}
		return b.control(msg)

	default:
		return msgUnknownCommand
	}
}

// control передаёт команду сессии
func (b *Bot) control(msg *tgbotapi.Message) string {
	switch msg.Command() {
	case "status":
		return formatStatus(b.session.Status())

	case "reset":
		b.session.RequestReset()
		return msgResetQueued

	case "select":
		p, ok := parsePoint(msg.CommandArguments())
		if !ok {
			return msgSelectUsage
		}
		b.session.SelectRegion(p)
		return fmt.Sprintf(msgSelectQueued, p.X, p.Y)
	}
	return msgUnknownCommand
}

func formatStatus(st app.Status) string {
	nose := "выключен"
	if st.NoseArmed {
		nose = fmt.Sprintf("активен, скорость (%d, %d), средняя оценка %.3f",
			st.Velocity.X, st.Velocity.Y, st.MeanNoseScore)
	}
	return fmt.Sprintf("📊 Сессия %s\nКадров: %d\nГлаз: %s\nНос: %s\nКликов: %d\nСдвигов курсора: %d",
		st.SessionID, st.Frames, st.EyeStage, nose, st.Clicks, st.Moves)
}

func parsePoint(args string) (entity.Point, bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return entity.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil || x < 0 {
		return entity.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil || y < 0 {
		return entity.Point{}, false
	}
	return entity.Point{X: x, Y: y}, true
}

// send отправляет текстовое сообщение
func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		return errors.Wrapf(err, "send to chat %d", chatID)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.EventNotifier = (*Bot)(nil)
