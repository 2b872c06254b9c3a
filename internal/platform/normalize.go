// Package platform maps raw provider webhook payloads onto the canonical
// models.InboundMessage. One tagged payload shape per provider; nothing
// outside this package looks at provider JSON.
package platform

import (
	"encoding/json"
	"errors"
	"fmt"

	"omnichat/backend/internal/models"
)

// NoMessageText is stored in place of a missing or unsupported message body.
// Ingestion never rejects a structurally valid event just because it carries
// no recognizable text.
const NoMessageText = "<no message>"

// ErrMalformedPayload signals that the minimal required fields (a sender
// identity and a message container) are absent. The webhook is still
// acknowledged; the event is dropped.
var ErrMalformedPayload = errors.New("malformed webhook payload")

type facebookPayload struct {
	Entry []struct {
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Message *struct {
				Text string `json:"text"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}

type linePayload struct {
	Events []struct {
		Source struct {
			UserID string `json:"userId"`
		} `json:"source"`
		Message *struct {
			Text string `json:"text"`
		} `json:"message"`
	} `json:"events"`
}

type whatsappPayload struct {
	Messages []struct {
		From string `json:"from"`
		Text *struct {
			Body string `json:"body"`
		} `json:"text"`
	} `json:"messages"`
}

// Normalize parses a raw webhook body for the given platform and returns the
// canonical inbound message. A present message container with empty text
// yields the NoMessageText sentinel rather than an error.
func Normalize(p models.Platform, body []byte) (models.InboundMessage, error) {
	switch p {
	case models.PlatformFacebook:
		return normalizeFacebook(body)
	case models.PlatformLine:
		return normalizeLine(body)
	case models.PlatformWhatsApp:
		return normalizeWhatsApp(body)
	}
	return models.InboundMessage{}, fmt.Errorf("unsupported platform %q", p)
}

func normalizeFacebook(body []byte) (models.InboundMessage, error) {
	var payload facebookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.InboundMessage{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(payload.Entry) == 0 || len(payload.Entry[0].Messaging) == 0 {
		return models.InboundMessage{}, fmt.Errorf("%w: no messaging entry", ErrMalformedPayload)
	}
	event := payload.Entry[0].Messaging[0]
	if event.Sender.ID == "" {
		return models.InboundMessage{}, fmt.Errorf("%w: missing sender id", ErrMalformedPayload)
	}
	text := NoMessageText
	if event.Message != nil && event.Message.Text != "" {
		text = event.Message.Text
	}
	return models.InboundMessage{
		Platform: models.PlatformFacebook,
		SenderID: event.Sender.ID,
		Text:     text,
	}, nil
}

func normalizeLine(body []byte) (models.InboundMessage, error) {
	var payload linePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.InboundMessage{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(payload.Events) == 0 {
		return models.InboundMessage{}, fmt.Errorf("%w: no events", ErrMalformedPayload)
	}
	event := payload.Events[0]
	if event.Message == nil {
		// Follow, join and postback events carry no message container;
		// nothing is stored for them.
		return models.InboundMessage{}, fmt.Errorf("%w: no message container", ErrMalformedPayload)
	}
	if event.Source.UserID == "" {
		return models.InboundMessage{}, fmt.Errorf("%w: missing source userId", ErrMalformedPayload)
	}
	text := NoMessageText
	if event.Message.Text != "" {
		text = event.Message.Text
	}
	return models.InboundMessage{
		Platform: models.PlatformLine,
		SenderID: event.Source.UserID,
		Text:     text,
	}, nil
}

func normalizeWhatsApp(body []byte) (models.InboundMessage, error) {
	var payload whatsappPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.InboundMessage{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(payload.Messages) == 0 {
		return models.InboundMessage{}, fmt.Errorf("%w: no messages", ErrMalformedPayload)
	}
	msg := payload.Messages[0]
	if msg.From == "" {
		return models.InboundMessage{}, fmt.Errorf("%w: missing sender", ErrMalformedPayload)
	}
	text := NoMessageText
	if msg.Text != nil && msg.Text.Body != "" {
		text = msg.Text.Body
	}
	return models.InboundMessage{
		Platform: models.PlatformWhatsApp,
		SenderID: msg.From,
		Text:     text,
	}, nil
}
