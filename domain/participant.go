// Package domain contains core concepts of the private messaging client.
// This file defines Participant entities owned by the directory collaborator.
// No runtime, network, or UI logic should be added here.
package domain

// ParticipantID identifies a user across the directory, the message
// history, and the channel events.
type ParticipantID string

// Participant is a directory entry. The engine treats it as immutable;
// profile changes are owned by the directory collaborator.
type Participant struct {
	ID          ParticipantID
	DisplayName string
	Email       string
}
