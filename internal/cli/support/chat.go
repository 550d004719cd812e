package support

import (
	"context"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/chat"
	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
)

const titleLength = 40

type ChatNewCmd struct {
	Title string `arg:"" optional:"" help:"Conversation title."`
}

func (c *ChatNewCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	conv, err := chat.NewService(ctx.Store, nil).StartConversation(userID, c.Title)
	if err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}
	fmt.Printf("Started conversation: %s (ID: %s)\n", conv.Title, conv.ID)
	return nil
}

type ChatListCmd struct{}

func (c *ChatListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	convs, err := chat.NewService(ctx.Store, nil).Conversations(userID)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(convs) == 0 {
		fmt.Println("No conversations yet. Start one with 'mindtrack chat send \"...\"'.")
		return nil
	}
	for _, conv := range convs {
		fmt.Printf("%s  %-40s  %3d messages  %s\n",
			conv.ID, cli.Truncate(conv.Title, titleLength), conv.MessageCount,
			conv.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type ChatSendCmd struct {
	Message      string `arg:"" help:"Message to send."`
	Conversation string `short:"c" help:"Conversation ID. A new conversation is started when omitted."`
}

func (c *ChatSendCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.AssistantTimeout)
	defer cancel()

	a, err := ctx.Assistant(reqCtx)
	if err != nil {
		return fmt.Errorf("assistant unavailable: %w", err)
	}
	svc := chat.NewService(ctx.Store, a)

	convID := c.Conversation
	if convID == "" {
		conv, err := svc.StartConversation(userID, cli.Truncate(c.Message, titleLength))
		if err != nil {
			return fmt.Errorf("failed to start conversation: %w", err)
		}
		convID = conv.ID
		fmt.Printf("Started conversation %s\n\n", conv.ID)
	}

	reply, err := svc.Send(reqCtx, userID, convID, c.Message)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if reply.Crisis {
		fmt.Println("⚠️  It sounds like you may be going through something very hard. You are not alone.")
		fmt.Println()
	}
	fmt.Println(reply.Message.Content)
	return nil
}

type ChatShowCmd struct {
	ID string `arg:"" help:"Conversation ID."`
}

func (c *ChatShowCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	conv, messages, err := chat.NewService(ctx.Store, nil).Transcript(userID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	fmt.Printf("%s (%d messages)\n\n", conv.Title, conv.MessageCount)
	for _, m := range messages {
		who := "You"
		if m.Sender == models.SenderAI {
			who = "Assistant"
		}
		fmt.Printf("[%s] %s:\n%s\n\n", m.CreatedAt.Local().Format("15:04"), who, m.Content)
	}
	return nil
}
