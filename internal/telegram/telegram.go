// Package telegram implements the chat transport over the Telegram Bot API.
//
// It adapts tgbotapi long polling to the messaging.Service contract: inbound
// text messages are emitted on the Responses channel keyed by chat ID, and
// outbound text/images are sent to the same chat.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BTreeMap/FitTrack/internal/messaging"
	"github.com/BTreeMap/FitTrack/internal/models"
)

// DefaultPollTimeoutSeconds is the long-poll timeout passed to Telegram.
const DefaultPollTimeoutSeconds = 30

// Opts holds configuration for the Telegram service.
type Opts struct {
	Token       string
	PollTimeout int
	Debug       bool
}

// Option configures the Telegram service.
type Option func(*Opts)

// WithToken sets the bot token.
func WithToken(token string) Option {
	return func(o *Opts) { o.Token = token }
}

// WithPollTimeout sets the long-poll timeout in seconds.
func WithPollTimeout(seconds int) Option {
	return func(o *Opts) { o.PollTimeout = seconds }
}

// WithDebug enables tgbotapi request logging.
func WithDebug() Option {
	return func(o *Opts) { o.Debug = true }
}

// Service implements messaging.Service over the Telegram Bot API.
type Service struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	responses   chan models.Response
	done        chan struct{}
}

// compile-time interface check
var _ messaging.Service = (*Service)(nil)

// New creates a Telegram service and authorizes against the Bot API.
func New(opts ...Option) (*Service, error) {
	cfg := Opts{PollTimeout: DefaultPollTimeoutSeconds}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = cfg.Debug
	slog.Info("Telegram bot authorized", "username", api.Self.UserName)

	return &Service{
		api:         api,
		pollTimeout: cfg.PollTimeout,
		responses:   make(chan models.Response, messaging.DefaultChannelBufferSize),
		done:        make(chan struct{}),
	}, nil
}

// Start begins long polling for updates.
func (s *Service) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.pollTimeout
	updates := s.api.GetUpdatesChan(u)
	go s.handleUpdates(ctx, updates)
	slog.Debug("Telegram service polling started", "timeout_s", s.pollTimeout)
	return nil
}

// Stop stops polling. The responses channel is closed by the polling
// goroutine once it drains, so consumers never race a close against a send.
func (s *Service) Stop() error {
	s.api.StopReceivingUpdates()
	close(s.done)
	slog.Info("Telegram service stopped")
	return nil
}

// handleUpdates forwards inbound text messages to the responses channel and
// closes it on exit.
func (s *Service) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer close(s.responses)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Telegram handleUpdates stopping, context cancelled")
			return
		case <-s.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			resp := models.Response{
				From: strconv.FormatInt(update.Message.Chat.ID, 10),
				Body: update.Message.Text,
				Time: int64(update.Message.Date),
			}
			// Block when the channel is full: backpressure must never
			// discard a user's message.
			select {
			case s.responses <- resp:
				slog.Debug("Telegram response queued", "from", resp.From, "body_length", len(resp.Body))
			case <-ctx.Done():
				slog.Debug("Telegram handleUpdates stopping, context cancelled")
				return
			case <-s.done:
				return
			}
		}
	}
}

// SendMessage sends a text message to a chat.
func (s *Service) SendMessage(ctx context.Context, to string, body string) error {
	chatID, err := parseChatID(to)
	if err != nil {
		return err
	}
	if _, err := s.api.Send(tgbotapi.NewMessage(chatID, body)); err != nil {
		slog.Error("Telegram SendMessage failed", "error", err, "to", to)
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	slog.Debug("Telegram message sent", "to", to, "body_length", len(body))
	return nil
}

// SendImage sends a PNG photo with a caption to a chat.
func (s *Service) SendImage(ctx context.Context, to string, caption string, png []byte) error {
	chatID, err := parseChatID(to)
	if err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: png})
	photo.Caption = caption
	if _, err := s.api.Send(photo); err != nil {
		slog.Error("Telegram SendImage failed", "error", err, "to", to)
		return fmt.Errorf("failed to send telegram photo: %w", err)
	}
	slog.Debug("Telegram photo sent", "to", to, "bytes", len(png))
	return nil
}

// Responses returns the channel of incoming user messages.
func (s *Service) Responses() <-chan models.Response {
	return s.responses
}

func parseChatID(to string) (int64, error) {
	if to == "" {
		return 0, models.ErrEmptyRecipient
	}
	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", to, err)
	}
	return chatID, nil
}
