package domain

// Conversation is an immutable snapshot of one room's state, handed to the
// presentation layer after every store mutation. Ordering is arrival order,
// not CreatedAt order: out-of-order network delivery is not corrected, an
// accepted limitation of the live-stream semantics.
type Conversation struct {
	Room     RoomKey
	Peer     ParticipantID
	Messages []Message
}
