// Package history records the conversation between users and the bot.
package history

// Role identifies who wrote an entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Entry is one message of the conversation. The JSON form matches the
// persisted file and the /api/history payload.
type Entry struct {
	Text string `json:"text"`
	Role Role   `json:"type"`
}

// UserEntry returns an entry written by the user.
func UserEntry(text string) Entry { return Entry{Text: text, Role: RoleUser} }

// BotEntry returns an entry written by the bot.
func BotEntry(text string) Entry { return Entry{Text: text, Role: RoleBot} }

// Store is an append-only, ordered conversation log.
// Implementations must be safe for concurrent use. Append must either
// persist all given entries or none of them.
type Store interface {
	Append(entries ...Entry) error
	All() ([]Entry, error)
	Close() error
}
