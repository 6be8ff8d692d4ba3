package usecase

import (
	"context"
	"errors"
	"strings"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// lookup wraps a Directory so that every failure turns into an empty value.
type lookup struct {
	directory ports.Directory
	logger    ports.Logger
}

func (l lookup) token(ctx context.Context, accountID string, role model.RecipientRole) string {
	token, err := l.directory.Token(ctx, accountID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			l.logger.Error(ctx, "account not found", "accountId", accountID, "role", role)
		} else {
			l.logger.Error(ctx, "token lookup failed", "accountId", accountID, "role", role, "error", err)
		}
		return ""
	}
	token = strings.TrimSpace(token)
	if token == "" {
		l.logger.Warn(ctx, "device token missing or blank", "accountId", accountID, "role", role)
	}
	return token
}

func (l lookup) info(ctx context.Context, accountID string) model.AccountInfo {
	info, err := l.directory.Info(ctx, accountID)
	if err != nil {
		l.logger.Error(ctx, "account info lookup failed", "accountId", accountID, "error", err)
		return model.AccountInfo{}
	}
	if info == nil {
		return model.AccountInfo{}
	}
	return *info
}

func (l lookup) staff(ctx context.Context, businessID string) []model.StaffRecipient {
	staff, err := l.directory.ListStaff(ctx, businessID)
	if err != nil {
		l.logger.Error(ctx, "staff lookup failed", "businessId", businessID, "error", err)
		return nil
	}
	return staff
}
