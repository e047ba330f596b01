package models

import "time"

// UnknownName is used when a message request carries no name
const UnknownName = "Unknown"

// TimestampFormat is the layout of Message.Timestamp
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Message is the echo response body
type Message struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

// NewMessage creates a message stamped with the given time in UTC
func NewMessage(name string, at time.Time) *Message {
	if name == "" {
		name = UnknownName
	}
	return &Message{
		Name:      name,
		Timestamp: at.UTC().Format(TimestampFormat),
	}
}
