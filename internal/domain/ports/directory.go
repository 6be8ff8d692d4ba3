package ports

import (
	"context"

	"cayyap-notifier/internal/domain/model"
)

// Directory resolves account identifiers to contact data.
type Directory interface {
	// Token returns the device token of an account; "" when the account has none.
	Token(ctx context.Context, accountID string) (string, error)
	Info(ctx context.Context, accountID string) (*model.AccountInfo, error)
	// ListStaff returns the accounts with the staff role under businessID.
	ListStaff(ctx context.Context, businessID string) ([]model.StaffRecipient, error)
}
