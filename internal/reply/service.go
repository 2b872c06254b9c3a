// Package reply implements the automated-reply trigger for the Facebook
// path. It is fire-and-forget: every failure is logged and swallowed so the
// ingestion pipeline's webhook acknowledgment is never affected.
package reply

import (
	"context"
	"fmt"
	"log"
	"time"

	"omnichat/backend/internal/models"
)

// replyPrompt is the fixed instructional template the inbound text is
// embedded into before it is sent to the text-generation collaborator.
const replyPrompt = "You are a friendly customer support assistant. " +
	"Write a short, helpful reply to the following customer message:\n\n%s"

const replyTimeout = 30 * time.Second

// Generator produces a single text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Outbound sends a text message back through the originating platform.
type Outbound interface {
	SendText(ctx context.Context, recipientID, text string) error
}

type Service struct {
	Generator Generator
	Outbound  Outbound
}

// NewService creates the reply trigger.
func NewService(gen Generator, out Outbound) *Service {
	return &Service{Generator: gen, Outbound: out}
}

// OnInbound generates a reply for the inbound text and forwards it to the
// original sender. The caller runs it in its own goroutine.
func (s *Service) OnInbound(msg models.InboundMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	prompt := fmt.Sprintf(replyPrompt, msg.Text)
	reply, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("ERROR: Reply generation failed for sender %s: %v", msg.SenderID, err)
		return
	}

	if err := s.Outbound.SendText(ctx, msg.SenderID, reply); err != nil {
		log.Printf("ERROR: Failed to deliver reply to sender %s: %v", msg.SenderID, err)
		return
	}

	log.Printf("INFO: Automated reply delivered to sender %s", msg.SenderID)
}
