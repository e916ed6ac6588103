package usecase

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
)

// PreferenceUseCase управляет предпочтениями (diet, likes) в рамках сессии.
type PreferenceUseCase struct {
	sessionRepo SessionRepository
	logger      logger.Logger
}

func NewPreferenceUC(sessionRepo SessionRepository, logger logger.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// UpdateContext добавляет значение к ключу diet или likes.
// Неизвестные ключи не меняют контекст, но ответ агенту все равно формируется.
func (p *PreferenceUseCase) UpdateContext(ctx context.Context, sessionID, key, value string) (*UpdateContextRes, error) {
	const op = "PreferenceUseCase.UpdateContext"

	userCtx, err := p.sessionRepo.Get(ctx, sessionOrDefault(sessionID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	changed := userCtx.Update(key, value)
	if !changed {
		p.logger.Debugf("context unchanged: session=%s key=%s value=%s", sessionOrDefault(sessionID), key, value)
	}

	return &UpdateContextRes{
		Key:     key,
		Value:   value,
		Changed: changed,
		Message: fmt.Sprintf("Updated context: %s is now %s.", key, value),
	}, nil
}

// GetContext возвращает копию предпочтений сессии.
func (p *PreferenceUseCase) GetContext(ctx context.Context, sessionID string) (*ContextSnapshot, error) {
	const op = "PreferenceUseCase.GetContext"

	sessionID = sessionOrDefault(sessionID)
	userCtx, err := p.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewContextSnapshot(sessionID, userCtx.Diet(), userCtx.Likes()), nil
}

// ResetContext очищает предпочтения сессии.
func (p *PreferenceUseCase) ResetContext(ctx context.Context, sessionID string) error {
	const op = "PreferenceUseCase.ResetContext"

	if err := p.sessionRepo.Reset(ctx, sessionOrDefault(sessionID)); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
