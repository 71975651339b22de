package services

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers a short text message to the shop owner.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier writes messages to the log. Used when no SMS gateway is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.log.Info("notification", zap.String("message", message))
	return nil
}

type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
	to     string
	log    *zap.Logger
}

func NewTwilioNotifier(accountSID, authToken, from, to string, log *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		to:   to,
		log:  log,
	}
}

func (n *TwilioNotifier) Notify(_ context.Context, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms to %s: %w", n.to, err)
	}
	if resp.Sid != nil {
		n.log.Info("sms sent", zap.String("to", n.to), zap.String("sid", *resp.Sid))
	} else {
		n.log.Info("sms sent, no sid returned", zap.String("to", n.to))
	}
	return nil
}

// NewNotifier picks Twilio when every credential is present and falls back to the log.
func NewNotifier(accountSID, authToken, from, to string, log *zap.Logger) Notifier {
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		return NewLogNotifier(log)
	}
	return NewTwilioNotifier(accountSID, authToken, from, to, log)
}
