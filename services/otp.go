package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"desidine-api/pkg/logger"
)

// GenerateOTP returns a 6-digit numeric one-time passcode.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// OTPSender dispatches a one-time passcode to a phone number.
type OTPSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogOTPSender writes the code to the log instead of calling an SMS
// provider. Swap in a Twilio/Fast2SMS-backed sender in production.
type LogOTPSender struct {
	log *logger.Logger
}

func NewLogOTPSender(log *logger.Logger) *LogOTPSender {
	return &LogOTPSender{log: log}
}

func (s *LogOTPSender) Send(_ context.Context, phone, code string) error {
	s.log.Infow("otp dispatched", "phone", phone, "code", code)
	return nil
}
