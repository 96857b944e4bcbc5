package telegram

import "gopkg.in/telebot.v3"

// Client sends messages to users outside of an update, such as scheduled
// reminders.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
