package toto

import "context"

// ParseModeHTML asks the chat provider to interpret message text as HTML.
const ParseModeHTML = "HTML"

// Message is a formatted message ready for delivery.
type Message struct {
	ChatID    string
	Text      string
	ParseMode string
}

// NewMessage wraps formatted text in a Message using HTML parse mode.
// The chat is chosen at delivery time.
func NewMessage(text string) Message {
	return Message{Text: text, ParseMode: ParseModeHTML}
}

// Validate returns an error if the message cannot be delivered.
func (m Message) Validate() error {
	if m.ChatID == "" {
		return Errorf(EINVALID, "message chat ID required")
	}
	if m.Text == "" {
		return Errorf(EINVALID, "message text required")
	}
	return nil
}

// Sender delivers messages to a chat.
type Sender interface {
	// Send delivers the message to msg.ChatID. It returns nil only once the
	// provider has acknowledged delivery; failures carry the provider's
	// description.
	Send(ctx context.Context, msg Message) error
}
