package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BTreeMap/FitTrack/internal/models"
)

func TestParseChatID(t *testing.T) {
	if id, err := parseChatID("123456789"); err != nil || id != 123456789 {
		t.Errorf("expected 123456789, got %d, %v", id, err)
	}
	if id, err := parseChatID("-1001234"); err != nil || id != -1001234 {
		t.Errorf("group chat ids are negative, got %d, %v", id, err)
	}
	if _, err := parseChatID(""); !errors.Is(err, models.ErrEmptyRecipient) {
		t.Errorf("expected empty recipient error, got %v", err)
	}
	if _, err := parseChatID("alice"); err == nil {
		t.Error("expected error for non-numeric chat id")
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("expected error without token")
	}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 42},
		Date: int(time.Now().Unix()),
	}}
}

func TestHandleUpdatesBackpressure(t *testing.T) {
	// A full responses channel must stall the poll loop, not drop messages.
	s := &Service{
		responses: make(chan models.Response, 1),
		done:      make(chan struct{}),
	}
	updates := make(chan tgbotapi.Update, 2)
	updates <- textUpdate("first")
	updates <- textUpdate("second")
	close(updates)

	finished := make(chan struct{})
	go func() {
		s.handleUpdates(context.Background(), updates)
		close(finished)
	}()

	if got := <-s.responses; got.Body != "first" || got.From != "42" {
		t.Errorf("unexpected first response %+v", got)
	}
	if got := <-s.responses; got.Body != "second" {
		t.Errorf("second message was dropped, got %+v", got)
	}

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("handleUpdates did not exit after draining updates")
	}
	if _, ok := <-s.responses; ok {
		t.Error("expected responses channel closed after poll loop exit")
	}
}

func TestHandleUpdatesStopsOnDone(t *testing.T) {
	s := &Service{
		responses: make(chan models.Response), // unbuffered and never read
		done:      make(chan struct{}),
	}
	updates := make(chan tgbotapi.Update, 1)
	updates <- textUpdate("stuck")

	finished := make(chan struct{})
	go func() {
		s.handleUpdates(context.Background(), updates)
		close(finished)
	}()

	close(s.done)
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("handleUpdates did not exit on done while blocked sending")
	}
}
