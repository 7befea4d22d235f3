package senders

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pagewatch/config"
	"pagewatch/lib/models"
)

type fakeSender struct {
	calls     int
	apiKey    string
	subject   string
	body      string
	recipient string
	err       error
}

func (f *fakeSender) Send(ctx context.Context, apiKey, subject, body, recipient string) (string, error) {
	f.calls++
	f.apiKey = apiKey
	f.subject = subject
	f.body = body
	f.recipient = recipient
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

func newTestNotifier(cfg *config.Config, sender Sender) *Notifier {
	return &Notifier{
		log:     zap.NewNop(),
		cfg:     cfg,
		senders: Registry{"email": sender},
	}
}

func testItem() *models.TrackedItem {
	return &models.TrackedItem{
		Name:        "CS 101",
		URL:         "http://x.test/cs101",
		NotifyEmail: "a@b.test",
	}
}

func TestNotify_Sent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mailgun.APIKey = "global-key"
	sender := &fakeSender{}
	n := newTestNotifier(cfg, sender)

	result := n.Notify(context.Background(), testItem(), "Open 5 seats", "Closed")

	assert.Equal(t, Sent, result)
	require.Equal(t, 1, sender.calls)
	assert.Equal(t, "global-key", sender.apiKey)
	assert.Equal(t, "a@b.test", sender.recipient)
	assert.Contains(t, sender.subject, "CS 101")
	assert.Contains(t, sender.body, "Open 5 seats")
	assert.Contains(t, sender.body, "Closed")
	assert.Contains(t, sender.body, "http://x.test/cs101")
}

func TestNotify_CredentialChain(t *testing.T) {
	tests := []struct {
		name       string
		itemKey    string
		defaultKey string
		globalKey  string
		wantKey    string
	}{
		{"item credential wins", "item-key", "default-key", "global-key", "item-key"},
		{"default before global", "", "default-key", "global-key", "default-key"},
		{"global as last resort", "", "", "global-key", "global-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Mailgun.DefaultAPIKey = tt.defaultKey
			cfg.Mailgun.APIKey = tt.globalKey
			sender := &fakeSender{}
			n := newTestNotifier(cfg, sender)

			item := testItem()
			item.NotifierCredential = tt.itemKey
			result := n.Notify(context.Background(), item, "old", "new")

			assert.Equal(t, Sent, result)
			assert.Equal(t, tt.wantKey, sender.apiKey)
		})
	}
}

func TestNotify_NoCredentialSkipsWithoutSending(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(&config.Config{}, sender)

	result := n.Notify(context.Background(), testItem(), "old", "new")

	assert.Equal(t, Skipped, result)
	assert.Zero(t, sender.calls)
}

func TestNotify_TransportFailure(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mailgun.APIKey = "global-key"
	sender := &fakeSender{err: errors.New("mailgun down")}
	n := newTestNotifier(cfg, sender)

	result := n.Notify(context.Background(), testItem(), "old", "new")

	assert.Equal(t, Failed, result)
}

func TestNotify_TruncatesPreviews(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mailgun.APIKey = "global-key"
	sender := &fakeSender{}
	n := newTestNotifier(cfg, sender)

	long := strings.Repeat("x", 2000)
	result := n.Notify(context.Background(), testItem(), long, long)

	assert.Equal(t, Sent, result)
	assert.NotContains(t, sender.body, strings.Repeat("x", previewLength+1))
	assert.Contains(t, sender.body, strings.Repeat("x", previewLength)+"...")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))

	long := strings.Repeat("a", previewLength+1)
	got := preview(long)
	assert.Len(t, got, previewLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
