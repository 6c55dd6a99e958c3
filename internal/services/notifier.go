package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/jstittsworth/td-scout/internal/picker"
)

// SMSSender sends one text message.
type SMSSender interface {
	SendMessage(phoneNumber, message string) error
}

// MockSMSSender logs instead of sending, for development.
type MockSMSSender struct {
	logger *logrus.Logger
}

func NewMockSMSSender(logger *logrus.Logger) *MockSMSSender {
	return &MockSMSSender{logger: logger}
}

func (s *MockSMSSender) SendMessage(phoneNumber, message string) error {
	s.logger.Infof("MOCK SMS to %s: %s", phoneNumber, message)
	return nil
}

// TwilioSMSSender sends through the Twilio API.
type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *logrus.Logger
}

func NewTwilioSMSSender(accountSID, authToken, fromNumber string, logger *logrus.Logger) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

func (s *TwilioSMSSender) SendMessage(phoneNumber, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.Sid != nil {
		s.logger.Debugf("SMS sent, sid %s", *resp.Sid)
	}
	return nil
}

// Notifier texts a digest of the weekly top picks to configured recipients.
type Notifier struct {
	sender      SMSSender
	rateLimiter *SMSRateLimiter
	recipients  []string
	digestSize  int
	logger      *logrus.Logger
}

// NewNotifier creates a digest notifier.
func NewNotifier(sender SMSSender, rateLimiter *SMSRateLimiter, recipients []string, digestSize int, logger *logrus.Logger) *Notifier {
	return &Notifier{
		sender:      sender,
		rateLimiter: rateLimiter,
		recipients:  recipients,
		digestSize:  digestSize,
		logger:      logger,
	}
}

// SendDigest formats and sends the top picks from a run. Failures per
// recipient are logged, not escalated; the run already succeeded.
func (n *Notifier) SendDigest(result *picker.Result) {
	if len(result.Recommendations) == 0 || len(n.recipients) == 0 {
		return
	}

	message := n.formatDigest(result)
	for _, recipient := range n.recipients {
		if err := n.rateLimiter.Allow(recipient); err != nil {
			n.logger.Warnf("Skipping digest to %s: %v", recipient, err)
			continue
		}
		if err := n.sender.SendMessage(recipient, message); err != nil {
			n.logger.Errorf("Failed to send digest to %s: %v", recipient, err)
		}
	}
}

func (n *Notifier) formatDigest(result *picker.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TD Scout week %d top picks:\n", result.Week)
	limit := n.digestSize
	if limit > len(result.Recommendations) {
		limit = len(result.Recommendations)
	}
	for i := 0; i < limit; i++ {
		rec := result.Recommendations[i]
		fmt.Fprintf(&b, "%d. %s (%s) vs %s - %.0f, %s\n",
			i+1, rec.PlayerName, rec.Position, rec.Opponent, rec.FinalScore, rec.Tier)
	}
	return b.String()
}
