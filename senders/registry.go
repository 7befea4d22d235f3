package senders

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagewatch/config"
)

// Sender is one outbound transport. The API key is resolved per send because
// tracked items may carry their own credential.
type Sender interface {
	Send(ctx context.Context, apiKey, subject, body, recipient string) (messageID string, err error)
}

type Registry map[string]Sender

func NewSenderRegistry(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, transport http.RoundTripper) Registry {
	base := base{log, cfg, transport}
	return Registry{
		"email": &mailgunSender{base},
	}
}

type base struct {
	log       *zap.Logger
	cfg       *config.Config
	transport http.RoundTripper
}
