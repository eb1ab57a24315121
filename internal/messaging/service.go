// Package messaging defines the pluggable chat transport abstraction.
package messaging

import (
	"context"
	"time"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// Constants for transport channel configuration
const (
	// DefaultChannelBufferSize defines the default buffer size for response channels
	DefaultChannelBufferSize = 100
	// DefaultChannelTimeout defines the default timeout for non-blocking channel operations
	DefaultChannelTimeout = 1 * time.Second
)

// Service defines a pluggable message delivery abstraction.
// It supports sending text and images, and provides a channel of incoming
// user messages. The transport supplies the stable per-conversation identity
// carried in models.Response.From.
type Service interface {
	// SendMessage sends a text message to a recipient.
	SendMessage(ctx context.Context, to string, body string) error

	// SendImage sends a PNG image with a caption to a recipient.
	SendImage(ctx context.Context, to string, caption string, png []byte) error

	// Start begins any background processing (e.g., polling for updates).
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error

	// Responses returns a channel of incoming user messages.
	Responses() <-chan models.Response
}
