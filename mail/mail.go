package mail

import (
	"context"
	"sync"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"

	"attendance-backend/log"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, m *Message) error
}

type Mailgun struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func (m *Mailgun) Send(ctx context.Context, msg *Message) error {
	_, id, err := m.mg.Send(ctx, m.mg.NewMessage(m.from, msg.Subject, msg.Text, msg.To))
	if err != nil {
		return err
	}
	log.Logger.Debug("mail queued", zap.String("id", id), zap.String("to", msg.To))
	return nil
}

// Console writes mail to the log and keeps it for inspection. It is used
// when no mail provider is configured.
type Console struct {
	mu   sync.Mutex
	sent []Message
}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Send(_ context.Context, m *Message) error {
	c.mu.Lock()
	c.sent = append(c.sent, *m)
	c.mu.Unlock()

	log.Logger.Info("mail", zap.String("to", m.To), zap.String("subject", m.Subject), zap.String("text", m.Text))
	return nil
}

func (c *Console) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}
