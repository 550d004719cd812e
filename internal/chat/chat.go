// Package chat runs support conversations: it persists both sides of each
// exchange and routes messages that show signs of crisis to the crisis
// prompt, appending the helpline directory to those replies.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/assistant"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/helplines"
	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/models"
)

// Store is the subset of storage.Provider the chat service needs.
type Store interface {
	CreateConversation(models.Conversation) error
	GetConversation(userID, id string) (models.Conversation, error)
	ListConversations(userID string) ([]models.Conversation, error)
	AddChatMessage(models.ChatMessage) error
	ListChatMessages(conversationID string) ([]models.ChatMessage, error)
}

type Service struct {
	store     Store
	assistant *assistant.Assistant
	now       func() time.Time
}

func NewService(store Store, a *assistant.Assistant) *Service {
	return &Service{
		store:     store,
		assistant: a,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Reply is the stored assistant message plus how it was produced.
type Reply struct {
	Message models.ChatMessage
	Crisis  bool
}

var crisisPatterns = regexp.MustCompile(`(?i)\b(suicid\w*|kill (my ?self|me)|end (my life|it all)|self[- ]?harm\w*|hurt(ing)? myself|cut(ting)? myself|want to die|don'?t want to (live|be alive)|no reason to live|better off dead|overdose)\b`)

// DetectCrisis reports whether a message contains language associated with
// self-harm or suicidal intent.
func DetectCrisis(message string) bool {
	return crisisPatterns.MatchString(message)
}

// StartConversation creates an empty conversation. A blank title gets the default.
func (s *Service) StartConversation(userID, title string) (models.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = constants.DefaultConversationTitle
	}
	ts := s.now()
	c := models.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.store.CreateConversation(c); err != nil {
		return models.Conversation{}, err
	}
	logger.Debug("Started conversation", "id", c.ID)
	return c, nil
}

// Send stores the user's message, asks the assistant for a reply and stores
// that too. The user's message is kept even when generation fails.
func (s *Service) Send(ctx context.Context, userID, conversationID, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, fmt.Errorf("message cannot be empty")
	}

	conv, err := s.store.GetConversation(userID, conversationID)
	if err != nil {
		return Reply{}, err
	}
	history, err := s.store.ListChatMessages(conv.ID)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load conversation history: %w", err)
	}

	userMsg := models.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Sender:         models.SenderUser,
		Content:        message,
		CreatedAt:      s.now(),
	}
	if err := s.store.AddChatMessage(userMsg); err != nil {
		return Reply{}, err
	}

	crisis := DetectCrisis(message)
	var text string
	if crisis {
		logger.Warn("Crisis language detected in chat message", "conversation", conv.ID)
		text, err = s.assistant.Crisis(ctx, message)
	} else {
		text, err = s.assistant.Support(ctx, message, conv.Title, assistant.HistoryTurns(history))
	}
	if err != nil {
		return Reply{}, fmt.Errorf("assistant did not respond: %w", err)
	}
	if crisis {
		text = withHelplines(text)
	}

	createdAt := s.now()
	if !createdAt.After(userMsg.CreatedAt) {
		createdAt = userMsg.CreatedAt.Add(time.Microsecond)
	}
	aiMsg := models.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Sender:         models.SenderAI,
		Content:        text,
		CreatedAt:      createdAt,
	}
	if err := s.store.AddChatMessage(aiMsg); err != nil {
		return Reply{}, err
	}

	return Reply{Message: aiMsg, Crisis: crisis}, nil
}

func withHelplines(text string) string {
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\nIf you are in danger, please reach out now:\n")
	b.WriteString(helplines.Format(helplines.AroundTheClock()))
	tips := helplines.EmergencyTips()
	b.WriteString(tips[len(tips)-1])
	return b.String()
}

// Transcript returns a conversation and its messages in order.
func (s *Service) Transcript(userID, conversationID string) (models.Conversation, []models.ChatMessage, error) {
	conv, err := s.store.GetConversation(userID, conversationID)
	if err != nil {
		return models.Conversation{}, nil, err
	}
	messages, err := s.store.ListChatMessages(conv.ID)
	if err != nil {
		return models.Conversation{}, nil, err
	}
	return conv, messages, nil
}

func (s *Service) Conversations(userID string) ([]models.Conversation, error) {
	return s.store.ListConversations(userID)
}
