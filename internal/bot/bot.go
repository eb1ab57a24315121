// Package bot wires the chat transport to the wizards, the metrics engine,
// and the presentation helpers. It owns the exposed command surface.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/BTreeMap/FitTrack/internal/chart"
	"github.com/BTreeMap/FitTrack/internal/flow"
	"github.com/BTreeMap/FitTrack/internal/messaging"
	"github.com/BTreeMap/FitTrack/internal/metrics"
	"github.com/BTreeMap/FitTrack/internal/models"
	"github.com/BTreeMap/FitTrack/internal/weather"
)

// Bot routes inbound messages: a leading slash selects a command, anything
// else goes to the user's active wizard, and leftovers get a short hint.
type Bot struct {
	svc      messaging.Service
	registry *metrics.Registry
	resolver flow.FoodResolver
	weather  weather.Provider
	sessions *flow.SessionManager

	// userLocks serializes message handling per user. Wizard state and the
	// Active/HandleInput/End sequence are only safe under this lock; messages
	// from different users still run concurrently.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// New creates a Bot with its collaborators.
func New(svc messaging.Service, registry *metrics.Registry, resolver flow.FoodResolver, weatherProvider weather.Provider) *Bot {
	return &Bot{
		svc:       svc,
		registry:  registry,
		resolver:  resolver,
		weather:   weatherProvider,
		sessions:  flow.NewSessionManager(),
		userLocks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the lock serializing one user's conversation.
func (b *Bot) userLock(userID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		b.userLocks[userID] = l
	}
	return l
}

// Run starts the transport and dispatches messages until the context ends
// or the transport closes its response channel. Each message is handled in
// its own goroutine; per-user serialization lives in the metrics registry
// and the session manager.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start messaging service: %w", err)
	}
	slog.Info("Bot running")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Bot stopping, context cancelled")
			return b.svc.Stop()
		case resp, ok := <-b.svc.Responses():
			if !ok {
				slog.Info("Bot stopping, response channel closed")
				return nil
			}
			go b.handleResponse(ctx, resp)
		}
	}
}

// handleResponse processes one inbound message. The user's conversation lock
// is held for the whole message so quick consecutive replies cannot race on
// wizard state or reach a terminal transition twice.
func (b *Bot) handleResponse(ctx context.Context, resp models.Response) {
	body := strings.TrimSpace(resp.Body)
	if body == "" {
		return
	}
	lock := b.userLock(resp.From)
	lock.Lock()
	defer lock.Unlock()
	slog.Debug("Bot handling response", "from", resp.From, "body_length", len(body))

	if strings.HasPrefix(body, "/") {
		b.handleCommand(ctx, resp.From, body)
		return
	}

	if w, active := b.sessions.Active(resp.From); active {
		reply, done := w.HandleInput(ctx, body)
		if done {
			b.sessions.End(resp.From)
		}
		b.send(ctx, resp.From, reply)
		return
	}

	b.send(ctx, resp.From, "I track water and calories. See /help for commands.")
}

// handleCommand parses and dispatches a slash command.
func (b *Bot) handleCommand(ctx context.Context, userID, body string) {
	fields := strings.Fields(body)
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	// Group chats append the bot username to commands.
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	args := fields[1:]
	slog.Info("Bot command received", "from", userID, "command", cmd)

	switch cmd {
	case "start":
		b.send(ctx, userID, startText())
	case "help":
		b.send(ctx, userID, helpText())
	case "set_profile":
		b.startWizard(ctx, userID, flow.NewProfileWizard(userID, b.registry, b.weather))
	case "log_water":
		b.cmdLogWater(ctx, userID, args)
	case "log_food":
		b.cmdLogFood(ctx, userID, args)
	case "log_workout":
		b.cmdLogWorkout(ctx, userID, args)
	case "check_progress":
		b.cmdProgress(ctx, userID)
	case "chart":
		b.cmdChart(ctx, userID)
	case "recommend":
		b.cmdRecommend(ctx, userID)
	case "cancel":
		if reply, ok := b.sessions.Cancel(userID); ok {
			b.send(ctx, userID, reply)
		} else {
			b.send(ctx, userID, "Nothing to cancel.")
		}
	default:
		b.send(ctx, userID, "Unknown command. See /help.")
	}
}

// startWizard registers the wizard as the user's session (replacing any
// previous one) and sends its opening prompt.
func (b *Bot) startWizard(ctx context.Context, userID string, w flow.Wizard) {
	b.sessions.Begin(userID, w)
	b.send(ctx, userID, w.Start(ctx))
}

func (b *Bot) cmdLogWater(ctx context.Context, userID string, args []string) {
	if len(args) != 1 {
		b.send(ctx, userID, "Usage: /log_water <ml>\nExample: /log_water 250")
		return
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		b.send(ctx, userID, "Enter a valid amount (1-5000 ml).")
		return
	}
	snap, err := b.registry.LogWater(userID, amount)
	if errors.Is(err, models.ErrValidation) {
		b.send(ctx, userID, "Enter a valid amount (1-5000 ml).")
		return
	}
	if err != nil {
		slog.Error("Bot log_water failed", "error", err, "from", userID)
		return
	}
	b.send(ctx, userID, waterLogText(snap, amount))
}

func (b *Bot) cmdLogFood(ctx context.Context, userID string, args []string) {
	if len(args) == 0 {
		b.send(ctx, userID, "Usage: /log_food <product>\nExample: /log_food банан")
		return
	}
	product := strings.Join(args, " ")
	b.startWizard(ctx, userID, flow.NewFoodLogWizard(userID, product, b.registry, b.resolver))
}

func (b *Bot) cmdLogWorkout(ctx context.Context, userID string, args []string) {
	if len(args) < 2 {
		b.send(ctx, userID, workoutUsageText())
		return
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		b.send(ctx, userID, "Workout time must be 1 to 480 minutes.")
		return
	}
	snap, entry, extraWater, err := b.registry.LogWorkout(userID, args[0], minutes)
	if errors.Is(err, models.ErrValidation) {
		b.send(ctx, userID, "Workout time must be 1 to 480 minutes.")
		return
	}
	if err != nil {
		slog.Error("Bot log_workout failed", "error", err, "from", userID)
		return
	}
	b.send(ctx, userID, workoutLogText(snap, entry, extraWater))
}

func (b *Bot) cmdProgress(ctx context.Context, userID string) {
	snap := b.registry.Snapshot(userID)
	if snap.Profile == nil {
		b.send(ctx, userID, "Set up your profile first: /set_profile")
		return
	}
	tempInfo := ""
	if snap.Profile.City != "" && b.weather != nil {
		if temp, err := b.weather.CurrentTemp(ctx, snap.Profile.City); err == nil && temp != nil {
			tempInfo = fmt.Sprintf("Temperature in %s: %.1f°C\n\n", snap.Profile.City, *temp)
		}
	}
	b.send(ctx, userID, progressText(snap, tempInfo))
}

func (b *Bot) cmdChart(ctx context.Context, userID string) {
	snap := b.registry.Snapshot(userID)
	if snap.Profile == nil {
		b.send(ctx, userID, "Set up your profile first: /set_profile")
		return
	}
	png, err := chart.Render(snap)
	if err != nil {
		slog.Error("Bot chart rendering failed", "error", err, "from", userID)
		b.send(ctx, userID, "Could not render the chart, try again later.")
		return
	}
	if err := b.svc.SendImage(ctx, userID, "Progress chart", png); err != nil {
		slog.Error("Bot chart send failed", "error", err, "from", userID)
	}
}

func (b *Bot) cmdRecommend(ctx context.Context, userID string) {
	snap := b.registry.Snapshot(userID)
	if snap.Profile == nil {
		b.send(ctx, userID, "Set up your profile first: /set_profile")
		return
	}
	b.send(ctx, userID, recommendationsText(snap))
}

func (b *Bot) send(ctx context.Context, to, body string) {
	if err := b.svc.SendMessage(ctx, to, body); err != nil {
		slog.Error("Bot failed to send message", "error", err, "to", to)
	}
}
