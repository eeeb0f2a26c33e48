package event

// Outbound is a client-emitted channel event payload. The payload struct
// is the fixed field set; EventName is the wire tag.
type Outbound interface {
	EventName() string
}

// UserConnected announces presence so the server can route pushes.
// Re-emitted after every successful (re)connect.
type UserConnected struct {
	ParticipantID string `json:"participantId"`
}

func (UserConnected) EventName() string { return "userConnected" }

// JoinRoom subscribes the session to a two-party room.
type JoinRoom struct {
	UserID1 string `json:"userId1"`
	UserID2 string `json:"userId2"`
}

func (JoinRoom) EventName() string { return "joinRoom" }

// PrivateMessage carries an outgoing message. ClientKey is the idempotency
// key the server echoes back in the corresponding newMessage.
type PrivateMessage struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Text      string `json:"text"`
	ClientKey string `json:"clientKey"`
	ReplyTo   *Reply `json:"replyTo,omitempty"`
}

func (PrivateMessage) EventName() string { return "privateMessage" }

// DeleteMessage requests a retraction. The server resolves the room from
// the message record and broadcasts messageDeleted.
type DeleteMessage struct {
	MessageID   string `json:"messageId"`
	UserID      string `json:"userId"`
	ForEveryone bool   `json:"forEveryone"`
}

func (DeleteMessage) EventName() string { return "deleteMessage" }

// MarkAsSeen tells the server the local viewer has read everything the
// given sender addressed to them.
type MarkAsSeen struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

func (MarkAsSeen) EventName() string { return "markAsSeen" }
