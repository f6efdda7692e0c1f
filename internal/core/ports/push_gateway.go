package ports

import (
	"context"
)

// PushMessage is a notification shown by the client as a transient notice.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushGateway delivers push messages to device tokens.
type PushGateway interface {
	Send(ctx context.Context, tokens []string, msg PushMessage) error
}
