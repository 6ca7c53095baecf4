package handlers

import (
	"sync"

	"github.com/usat/taklifbot/internal/bot/texts"
	"github.com/usat/taklifbot/internal/storage"
)

// State identifies where a conversation is in the registration or
// submission flow. Every user-visible step maps to exactly one state.
type State int

const (
	StateIdle State = iota
	StateWaitingLanguage
	StateWaitingName
	StateWaitingPhone
	StateWaitingCourse
	StateWaitingDirection
	StateWaitingText
)

// Conversation holds the per-chat flow position and the fields collected
// so far. Fields are only trusted once the flow that collects them has
// validated them.
type Conversation struct {
	State         State
	Language      string
	Registered    bool
	FullName      string
	Phone         string
	Course        string
	Direction     string
	DirectionPage int
	TicketType    storage.TicketType
	Category      string
	Substatus     string
}

// Conversations is the in-memory conversation state table, keyed by chat
// ID. Access goes through copy-in/copy-out methods under a mutex, so
// concurrent updates for different chats never race.
type Conversations struct {
	mu     sync.Mutex
	byChat map[int64]Conversation
}

// NewConversations creates an empty state table.
func NewConversations() *Conversations {
	return &Conversations{byChat: make(map[int64]Conversation)}
}

// Get returns the conversation for chatID, or a fresh idle one.
func (c *Conversations) Get(chatID int64) Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conv, ok := c.byChat[chatID]; ok {
		return conv
	}
	return Conversation{State: StateIdle, Language: texts.DefaultLanguage}
}

// Set stores the conversation for chatID.
func (c *Conversations) Set(chatID int64, conv Conversation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byChat[chatID] = conv
}

// Reset returns the conversation to the idle state while keeping the
// user's identity (language and registration status).
func (c *Conversations) Reset(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conv, ok := c.byChat[chatID]
	if !ok {
		return
	}
	c.byChat[chatID] = Conversation{
		State:      StateIdle,
		Language:   conv.Language,
		Registered: conv.Registered,
		FullName:   conv.FullName,
	}
}
