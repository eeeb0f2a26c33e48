package rest

import (
	"duochat/domain"
	"time"

	"github.com/samber/lo"
)

type userDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type replyDTO struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type messageDTO struct {
	ID                 string    `json:"_id"`
	ClientKey          string    `json:"clientKey"`
	Sender             string    `json:"sender"`
	Receiver           string    `json:"receiver"`
	Text               string    `json:"text"`
	ReplyTo            *replyDTO `json:"replyTo,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	Status             string    `json:"status"`
	DeletedForEveryone bool      `json:"deletedForEveryone"`
	DeletedFor         []string  `json:"deletedFor,omitempty"`
}

func toParticipant(u userDTO) domain.Participant {
	return domain.Participant{
		ID:          domain.ParticipantID(u.ID),
		DisplayName: u.Name,
		Email:       u.Email,
	}
}

// toMessage resolves the wire record into the viewer's rendition. The
// deletedFor list is durable per-viewer state: a retraction-for-me survives
// reconnects and history reloads.
func toMessage(m messageDTO, viewer domain.ParticipantID) domain.Message {
	status, err := domain.ParseStatus(m.Status)
	if err != nil {
		status = domain.StatusSent
	}

	msg := domain.Message{
		ID:        domain.MessageID(m.ID),
		ClientKey: m.ClientKey,
		Sender:    domain.ParticipantID(m.Sender),
		Receiver:  domain.ParticipantID(m.Receiver),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		Status:    status,
	}
	if m.ReplyTo != nil {
		msg.ReplyTo = &domain.ReplySnapshot{
			Sender: domain.ParticipantID(m.ReplyTo.Sender),
			Text:   m.ReplyTo.Text,
		}
	}
	switch {
	case m.DeletedForEveryone:
		msg.Deletion = domain.ViewTombstoned
		msg.Text = ""
	case lo.Contains(m.DeletedFor, string(viewer)):
		msg.Deletion = domain.ViewHiddenForViewer
	}
	return msg
}
