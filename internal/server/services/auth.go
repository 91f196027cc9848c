package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/identity"
	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/metrics"
	"github.com/dmitrijs2005/securechat/internal/server/auth"
	"github.com/dmitrijs2005/securechat/internal/server/config"
	"github.com/dmitrijs2005/securechat/internal/server/models"
)

// LoginResult is returned by a completed login.
type LoginResult struct {
	AccessToken string
	PartyID     string
}

// AuthService runs the phone + one-time code login. The state between the
// two steps lives in the signed challenge the client holds, not on the
// server.
type AuthService struct {
	directory                   *DirectoryService
	codes                       auth.CodeSender
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	challengeValidityDuration   time.Duration
	now                         func() time.Time
}

func NewAuthService(d *DirectoryService, codes auth.CodeSender, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		directory:                   d,
		codes:                       codes,
		logger:                      l.With("module", "auth"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		challengeValidityDuration:   cfg.ChallengeValidityDuration,
		now:                         time.Now,
	}
}

// StartLogin sends a one-time code to phone and returns the challenge to
// present with it.
func (s *AuthService) StartLogin(ctx context.Context, phone string) (string, error) {
	id := identity.Normalize(phone)
	if id == "" {
		return "", common.ErrInvalidInput
	}

	if err := s.codes.Send(ctx, id); err != nil {
		metrics.Logins.WithLabelValues("refused").Inc()
		return "", err
	}

	return auth.GenerateChallenge(id, phone, s.jwtSecret, s.challengeValidityDuration)
}

// CompleteLogin checks code against challenge. On success the party is
// registered (or refreshed) in the directory and an access token issued.
func (s *AuthService) CompleteLogin(ctx context.Context, challenge, code string) (*LoginResult, error) {
	id, rawPhone, err := auth.ParseChallenge(challenge, s.jwtSecret)
	if err != nil {
		metrics.Logins.WithLabelValues("bad_challenge").Inc()
		return nil, err
	}

	ok, err := s.codes.Check(ctx, id, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.Logins.WithLabelValues("wrong_code").Inc()
		return nil, common.ErrorUnauthorized
	}

	now := s.now().UTC()
	if err := s.directory.Upsert(ctx, id, models.PartyUpdate{DisplayHintID: &rawPhone, LastSeen: &now}); err != nil {
		return nil, err
	}

	token, err := auth.GenerateAccessToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	s.logger.Info(ctx, "party logged in", "party", id)
	return &LoginResult{AccessToken: token, PartyID: id}, nil
}

// Authenticate returns the party an access token was issued to.
func (s *AuthService) Authenticate(accessToken string) (string, error) {
	id, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	return id, nil
}
