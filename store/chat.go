package store

// Conversation is one chat thread. The UID is the external identifier used
// by API clients.
type Conversation struct {
	ID        int32
	UID       string
	Title     string
	CreatedTs int64
	UpdatedTs int64
}

// FindConversation filters conversation lookups.
type FindConversation struct {
	ID  *int32
	UID *string
}

// ChatMessage is one entry in the append-only conversation log.
// Role is "user" or "assistant"; Intent records the classified intent of
// assistant replies.
type ChatMessage struct {
	ID             int32
	ConversationID int32
	Role           string
	Intent         string
	Content        string
	CreatedTs      int64
}

// FindChatMessage filters chat message lookups.
type FindChatMessage struct {
	ConversationID *int32
}
