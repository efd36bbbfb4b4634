package errors

import (
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/alert"
)

// MessageType is the severity of a stored message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// Message is a message kept by TUIHandler.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// Alert converts the message into the banner shown by the TUI.
func (m Message) Alert() alert.Alert {
	switch m.Type {
	case MessageTypeError:
		return alert.Danger(m.Text)
	case MessageTypeWarning:
		return alert.Warning(m.Text)
	case MessageTypeSuccess:
		return alert.Success(m.Text)
	default:
		return alert.Info(m.Text)
	}
}

// TUIHandler keeps messages for the TUI to display. It is used from the
// bubbletea update goroutine only.
type TUIHandler struct {
	messages  []Message
	onMessage func(msg Message)
	now       func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

// NewTUIHandler creates a handler that calls onMessage for every message.
func NewTUIHandler(onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{onMessage: onMessage, now: time.Now}
}

func (h *TUIHandler) Error(msg string) {
	h.add(msg, MessageTypeError)
}

func (h *TUIHandler) Warning(msg string) {
	h.add(msg, MessageTypeWarning)
}

func (h *TUIHandler) Info(msg string) {
	h.add(msg, MessageTypeInfo)
}

func (h *TUIHandler) Success(msg string) {
	h.add(msg, MessageTypeSuccess)
}

func (h *TUIHandler) add(msg string, t MessageType) {
	m := Message{Text: msg, Type: t, Timestamp: h.now()}
	h.messages = append(h.messages, m)
	if h.onMessage != nil {
		h.onMessage(m)
	}
}

// Latest returns the most recent message.
func (h *TUIHandler) Latest() (Message, bool) {
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// All returns a copy of every stored message, oldest first.
func (h *TUIHandler) All() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Clear drops the stored messages.
func (h *TUIHandler) Clear() {
	h.messages = nil
}
