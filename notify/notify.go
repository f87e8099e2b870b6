// ABOUTME: Notification sink for user-visible success and error messages
// ABOUTME: Stamps each message with a ULID, logs it, and keeps a short history
package notify

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// Level is the severity shown to the user.
type Level int

const (
	Success Level = iota
	Info
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "info"
}

// Messages shown by the edit and delete flows.
const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgClientCreated  = "Client created successfully"
	MsgClientUpdated  = "Client updated successfully"
	MsgClientDeleted  = "Client deleted"
)

// Message is one notification.
type Message struct {
	ID    string    `json:"id"`
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Sink receives notifications from the edit and delete flows.
type Sink interface {
	Notify(level Level, text string) Message
}

// DefaultHistory is how many messages a Center keeps.
const DefaultHistory = 20

// Center is a Sink that remembers the most recent messages. Safe for
// concurrent use since the web server notifies from request goroutines.
type Center struct {
	mu       sync.Mutex
	logger   *log.Logger
	history  []Message
	capacity int
	now      func() time.Time
}

// NewCenter creates a sink keeping up to capacity messages. A nil logger uses
// the default logger.
func NewCenter(logger *log.Logger, capacity int) *Center {
	if logger == nil {
		logger = log.Default()
	}
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Center{
		logger:   logger,
		capacity: capacity,
		now:      time.Now,
	}
}

func (c *Center) Notify(level Level, text string) Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now()
	msg := Message{
		ID:    ulid.MustNew(ulid.Timestamp(at), rand.Reader).String(),
		Level: level,
		Text:  text,
		At:    at,
	}

	c.history = append(c.history, msg)
	if len(c.history) > c.capacity {
		c.history = c.history[len(c.history)-c.capacity:]
	}

	switch level {
	case Error:
		c.logger.Warn("notify", "id", msg.ID, "text", text)
	default:
		c.logger.Info("notify", "id", msg.ID, "kind", level, "text", text)
	}

	return msg
}

// Latest returns the newest message, if any.
func (c *Center) Latest() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return Message{}, false
	}
	return c.history[len(c.history)-1], true
}

// Take returns the message with the given ID and whether it exists.
func (c *Center) Take(id string) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.history) - 1; i >= 0; i-- {
		if c.history[i].ID == id {
			return c.history[i], true
		}
	}
	return Message{}, false
}

// History returns a copy of the retained messages, oldest first.
func (c *Center) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}
