package senders

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagewatch/config"
	"pagewatch/lib/models"
)

type Result int

const (
	Sent Result = iota
	Skipped
	Failed
)

// Notifier emails a change alert to the item's configured recipient. Skipped
// and Failed both mean "no notification happened"; neither blocks baseline
// advancement upstream.
type Notifier struct {
	log     *zap.Logger
	cfg     *config.Config
	senders Registry
}

func NewNotifier(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, senders Registry) *Notifier {
	return &Notifier{log, cfg, senders}
}

func (n *Notifier) Notify(ctx context.Context, item *models.TrackedItem, oldContent, newContent string) Result {
	apiKey := n.cfg.NotifierKey(item.NotifierCredential)
	if apiKey == "" {
		n.log.Sugar().Warnf("No Mailgun API key available, skipping email notification for %s", item.DisplayName())
		return Skipped
	}

	format := &changeEmailFormat{item: item, old: oldContent, new: newContent}
	sender := n.senders["email"]

	id, err := sender.Send(ctx, apiKey, format.Subject(), format.Body(), item.NotifyEmail)
	if err != nil {
		n.log.Sugar().Errorw("Failed to send email", "recipient", item.NotifyEmail, "err", err)
		return Failed
	}

	n.log.Sugar().Infow("Email sent to "+item.NotifyEmail, "message_id", id)
	return Sent
}
