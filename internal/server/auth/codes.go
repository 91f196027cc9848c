package auth

import (
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/identity"
)

// CodeSender delivers and checks one-time login codes. Real deployments
// put an SMS provider behind it.
type CodeSender interface {
	Send(ctx context.Context, phone string) error
	Check(ctx context.Context, phone, code string) (bool, error)
}

// StaticCodes accepts a fixed code per configured test number and sends
// nothing.
type StaticCodes struct {
	codes map[string]string
}

func NewStaticCodes(codes map[string]string) *StaticCodes {
	m := make(map[string]string, len(codes))
	for phone, code := range codes {
		m[identity.Normalize(phone)] = code
	}
	return &StaticCodes{codes: m}
}

// Send fails with common.ErrorUnauthorized for numbers that are not configured.
func (s *StaticCodes) Send(_ context.Context, phone string) error {
	if _, ok := s.codes[identity.Normalize(phone)]; !ok {
		return common.ErrorUnauthorized
	}
	return nil
}

func (s *StaticCodes) Check(_ context.Context, phone, code string) (bool, error) {
	want, ok := s.codes[identity.Normalize(phone)]
	if !ok {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1, nil
}
