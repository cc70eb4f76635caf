package domain

// Role identifies the author of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in the game conversation. The server never
// rewrites history; it only prepends a fresh system turn per request.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LastTurn returns the final turn of the conversation, or false when empty
func LastTurn(turns []ConversationTurn) (ConversationTurn, bool) {
	if len(turns) == 0 {
		return ConversationTurn{}, false
	}
	return turns[len(turns)-1], true
}
