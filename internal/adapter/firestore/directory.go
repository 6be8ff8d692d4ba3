package firestore

import (
	"context"
	"fmt"
	"strings"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// Field names of documents in the users collection.
const (
	fieldFCMToken    = "fcmToken"
	fieldNameSurname = "nameSurname"
	fieldCompany     = "company"
	fieldCompanyID   = "companyId"
	fieldUserType    = "userType"
)

// DefaultStaffRole is the userType value of staff accounts.
const DefaultStaffRole = "waiter"

// Directory reads accounts from the users collection.
type Directory struct {
	client    *gfs.Client
	users     string
	staffRole string
	logger    ports.Logger
}

var _ ports.Directory = (*Directory)(nil)

// NewDirectory creates a Firestore-backed directory.
func NewDirectory(client *gfs.Client, usersCollection, staffRole string, logger ports.Logger) *Directory {
	if staffRole == "" {
		staffRole = DefaultStaffRole
	}
	if usersCollection == "" {
		usersCollection = "users"
	}
	return &Directory{
		client:    client,
		users:     usersCollection,
		staffRole: staffRole,
		logger:    logger,
	}
}

// Token returns the fcmToken field of the account.
func (d *Directory) Token(ctx context.Context, accountID string) (string, error) {
	data, err := d.account(ctx, accountID)
	if err != nil {
		return "", err
	}
	return stringField(data, fieldFCMToken), nil
}

// Info returns the display name and company of the account.
func (d *Directory) Info(ctx context.Context, accountID string) (*model.AccountInfo, error) {
	data, err := d.account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	info := infoFromData(data)
	return &info, nil
}

// ListStaff queries accounts with the staff role whose companyId is businessID.
func (d *Directory) ListStaff(ctx context.Context, businessID string) ([]model.StaffRecipient, error) {
	docs, err := d.client.Collection(d.users).
		Where(fieldUserType, "==", d.staffRole).
		Where(fieldCompanyID, "==", businessID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query staff of %s: %w", businessID, err)
	}

	staff := make([]model.StaffRecipient, 0, len(docs))
	for _, doc := range docs {
		member := staffFromData(doc.Ref.ID, doc.Data())
		staff = append(staff, member)
		d.logger.Debug(ctx, "staff member found", "staffId", member.ID, "name", member.NameSurname, "hasToken", member.HasToken())
	}
	d.logger.Info(ctx, "staff resolved", "businessId", businessID, "count", len(staff))
	return staff, nil
}

func (d *Directory) account(ctx context.Context, accountID string) (map[string]any, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, model.ErrAccountNotFound
	}
	snap, err := d.client.Collection(d.users).Doc(accountID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", accountID, err)
	}
	if !snap.Exists() {
		return nil, model.ErrAccountNotFound
	}
	return snap.Data(), nil
}

func infoFromData(data map[string]any) model.AccountInfo {
	return model.AccountInfo{
		DisplayName: stringField(data, fieldNameSurname),
		Affiliation: stringField(data, fieldCompany),
	}
}

func staffFromData(id string, data map[string]any) model.StaffRecipient {
	return model.StaffRecipient{
		ID:          id,
		NameSurname: stringField(data, fieldNameSurname),
		FCMToken:    stringField(data, fieldFCMToken),
		CompanyID:   stringField(data, fieldCompanyID),
		UserType:    stringField(data, fieldUserType),
	}
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}
