package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

type AuthService struct {
	passcodeHash string
	tokens       *TokenService
	logger       *zap.Logger
}

// NewAuthService guards the diary with a bcrypt passcode hash. An empty hash
// leaves the diary open and disables Login.
func NewAuthService(passcodeHash string, tokens *TokenService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		passcodeHash: passcodeHash,
		tokens:       tokens,
		logger:       logger,
	}
}

func (s *AuthService) Enabled() bool {
	return s.passcodeHash != ""
}

type LoginInput struct {
	Passcode   string
	DeviceName string
}

type LoginResult struct {
	Token  string
	Device *domain.Device
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if !s.Enabled() {
		return nil, domain.ErrAuthDisabled
	}

	if err := domain.CheckPasscode(s.passcodeHash, input.Passcode); err != nil {
		s.logger.Warn("rejected device login", zap.String("device", input.DeviceName))
		return nil, err
	}

	device := domain.NewDevice(input.DeviceName)
	token, err := s.tokens.GenerateToken(device.ID, device.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("device logged in", zap.String("device_id", device.ID), zap.String("device", device.Name))
	return &LoginResult{Token: token, Device: device}, nil
}

func (s *AuthService) ValidateToken(token string) (string, error) {
	return s.tokens.ValidateToken(token)
}
