package domain

// RoomKey is the canonical identifier of a two-party conversation.
// It is symmetric: DeriveKey(a, b) == DeriveKey(b, a).
type RoomKey string

// roomKeySeparator never appears inside a participant id, which keeps
// DeriveKey collision-free for distinct pairs.
const roomKeySeparator = "_"

// DeriveKey builds the room key for two participants by sorting the pair
// before joining. Pure and total; every membership test in the client goes
// through here instead of inlining the sorted join.
func DeriveKey(a, b ParticipantID) RoomKey {
	if b < a {
		a, b = b, a
	}
	return RoomKey(string(a) + roomKeySeparator + string(b))
}
