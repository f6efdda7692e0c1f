// Package push sends notifications to partner devices through an HTTP push service.
package push

import (
	"context"
	"fmt"
	"time"

	"bolpurmart/internal/core/ports"

	"github.com/go-resty/resty/v2"
)

const sendPath = "/v1/send"

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendRequest struct {
	Tokens       []string          `json:"tokens"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendResponse struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Gateway implements ports.PushGateway.
type Gateway struct {
	client *resty.Client
}

func NewGateway(baseURL, apiKey string, timeout time.Duration) *Gateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Gateway{client: client}
}

// Send delivers msg to tokens in one request. Partial delivery is not an error; a
// non-2xx reply or a batch that no device accepted is.
func (g *Gateway) Send(ctx context.Context, tokens []string, msg ports.PushMessage) error {
	if len(tokens) == 0 {
		return nil
	}

	var result sendResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			Tokens:       tokens,
			Notification: notification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		}).
		SetResult(&result).
		Post(sendPath)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("push send status: %d", resp.StatusCode())
	}
	if result.Delivered == 0 && result.Failed > 0 {
		return fmt.Errorf("push send: all %d tokens rejected", result.Failed)
	}
	return nil
}
