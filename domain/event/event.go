// Package event models the channel events exchanged with the messaging
// server. Each event is a tagged variant with a fixed field set; malformed
// payloads are rejected instead of propagating undefined fields.
package event

import (
	"duochat/domain"
	"duochat/errors"
	"encoding/json"
	"fmt"
	"time"
)

// Server-to-client event names.
const (
	NameNewMessage     = "newMessage"
	NameMessageDeleted = "messageDeleted"
	NameMessageStatus  = "messageStatus"
)

// Inbound is a server-pushed channel event. Every inbound event resolves
// to the room it belongs to; cross-room ordering is never assumed.
type Inbound interface {
	Room() domain.RoomKey
}

// Reply mirrors the embedded reply snapshot on the wire.
type Reply struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// NewMessage is the authoritative echo of a privateMessage, including
// messages originated by the other participant.
type NewMessage struct {
	ID        string    `json:"_id"`
	ClientKey string    `json:"clientKey"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	ReplyTo   *Reply    `json:"replyTo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

func (e NewMessage) Room() domain.RoomKey {
	return domain.DeriveKey(domain.ParticipantID(e.Sender), domain.ParticipantID(e.Receiver))
}

// MessageDeleted announces a retraction. The server includes the message's
// sender/receiver pair so the client derives the room the same way it does
// for NewMessage.
type MessageDeleted struct {
	MessageID   string `json:"messageId"`
	UserID      string `json:"userId"`
	ForEveryone bool   `json:"forEveryone"`
	Sender      string `json:"sender"`
	Receiver    string `json:"receiver"`
}

func (e MessageDeleted) Room() domain.RoomKey {
	return domain.DeriveKey(domain.ParticipantID(e.Sender), domain.ParticipantID(e.Receiver))
}

// MessageStatus advances a message through the delivery lattice.
type MessageStatus struct {
	MessageID string `json:"messageId"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Status    string `json:"status"`
}

func (e MessageStatus) Room() domain.RoomKey {
	return domain.DeriveKey(domain.ParticipantID(e.Sender), domain.ParticipantID(e.Receiver))
}

// DecodeNewMessage parses and validates a newMessage payload.
func DecodeNewMessage(payload []byte) (NewMessage, error) {
	var e NewMessage
	if err := json.Unmarshal(payload, &e); err != nil {
		return NewMessage{}, fmt.Errorf("%w: %s: %v", errors.ErrMalformedEvent, NameNewMessage, err)
	}
	if e.ID == "" || e.Sender == "" || e.Receiver == "" {
		return NewMessage{}, fmt.Errorf("%w: %s: missing id or participants", errors.ErrMalformedEvent, NameNewMessage)
	}
	return e, nil
}

// DecodeMessageDeleted parses and validates a messageDeleted payload.
func DecodeMessageDeleted(payload []byte) (MessageDeleted, error) {
	var e MessageDeleted
	if err := json.Unmarshal(payload, &e); err != nil {
		return MessageDeleted{}, fmt.Errorf("%w: %s: %v", errors.ErrMalformedEvent, NameMessageDeleted, err)
	}
	if e.MessageID == "" || e.UserID == "" || e.Sender == "" || e.Receiver == "" {
		return MessageDeleted{}, fmt.Errorf("%w: %s: missing fields", errors.ErrMalformedEvent, NameMessageDeleted)
	}
	return e, nil
}

// DecodeMessageStatus parses and validates a messageStatus payload.
func DecodeMessageStatus(payload []byte) (MessageStatus, error) {
	var e MessageStatus
	if err := json.Unmarshal(payload, &e); err != nil {
		return MessageStatus{}, fmt.Errorf("%w: %s: %v", errors.ErrMalformedEvent, NameMessageStatus, err)
	}
	if e.MessageID == "" || e.Sender == "" || e.Receiver == "" || e.Status == "" {
		return MessageStatus{}, fmt.Errorf("%w: %s: missing fields", errors.ErrMalformedEvent, NameMessageStatus)
	}
	return e, nil
}

// DecodeFrame dispatches a raw frame to its typed variant.
func DecodeFrame(name string, payload []byte) (Inbound, error) {
	switch name {
	case NameNewMessage:
		return DecodeNewMessage(payload)
	case NameMessageDeleted:
		return DecodeMessageDeleted(payload)
	case NameMessageStatus:
		return DecodeMessageStatus(payload)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownEvent, name)
	}
}
