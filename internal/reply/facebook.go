package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FacebookSender delivers outbound messages through the Graph API
// me/messages endpoint.
type FacebookSender struct {
	BaseURL    string
	PageToken  string
	HTTPClient *http.Client
}

func NewFacebookSender(baseURL, pageToken string) *FacebookSender {
	return &FacebookSender{
		BaseURL:    baseURL,
		PageToken:  pageToken,
		HTTPClient: http.DefaultClient,
	}
}

type sendMessageRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SendText sends a text message to the given PSID.
func (f *FacebookSender) SendText(ctx context.Context, recipientID, text string) error {
	var payload sendMessageRequest
	payload.Recipient.ID = recipientID
	payload.Message.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/me/messages?access_token=%s", f.BaseURL, f.PageToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send api: status %d: %s", resp.StatusCode, data)
	}

	return nil
}
