// Package mail delivers verification-code emails. Delivery is fire-and-
// forget: each send runs on a detached goroutine with its own context, and
// the originating request neither waits for it nor learns of its failure.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mangahub/mangahub/pkg/logger"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Kind selects the template for a code email.
type Kind int

const (
	KindRegister Kind = iota
	KindForget
)

// Sender dispatches a verification code email, best-effort.
type Sender interface {
	SendCode(kind Kind, address, username, code string, ttl time.Duration)
}

const sendTimeout = 30 * time.Second

// Mailer is the SMTP-backed Sender.
type Mailer struct {
	client *gomail.Client
	sender string
}

func New(host string, port int, username, password, sender string) (*Mailer, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
		gomail.WithSSL(),
	)
	if err != nil {
		return nil, err
	}

	return &Mailer{client: client, sender: sender}, nil
}

// SendCode builds the message synchronously and dispatches it in the
// background. Build failures are logged and dropped: the code is already
// stored, and the caller has nothing useful to do with a template error.
func (m *Mailer) SendCode(kind Kind, address, username, code string, ttl time.Duration) {
	subject := "Welcome to manga"
	if kind == KindForget {
		subject = "Forget Password"
	}

	html := fmt.Sprintf(
		"<html><p>Hello %s, your code is %s which will expire in %d seconds</p></html>",
		username, code, int(ttl.Seconds()),
	)

	msg := gomail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		logger.Log.Error("Failed to build mail sender address", zap.Error(err))
		return
	}
	if err := msg.To(address); err != nil {
		logger.Log.Error("Failed to build mail recipient address",
			zap.String("address", address),
			zap.Error(err),
		)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, html)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
			logger.Log.Error("Failed to send code email",
				zap.String("address", address),
				zap.Error(err),
			)
		}
	}()
}
