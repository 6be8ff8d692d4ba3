package model

import (
	"errors"
	"strings"
)

// ErrAccountNotFound is returned by directories when no account exists for the id.
var ErrAccountNotFound = errors.New("account not found")

// AccountInfo is the display data of an account.
type AccountInfo struct {
	DisplayName string
	Affiliation string
}

// StaffRecipient is a secondary recipient of order notifications.
type StaffRecipient struct {
	ID          string
	NameSurname string
	FCMToken    string
	CompanyID   string
	UserType    string
}

// HasToken reports whether the staff member can receive pushes.
func (s StaffRecipient) HasToken() bool {
	return strings.TrimSpace(s.FCMToken) != ""
}

// RecipientRole tags who a delivery was addressed to.
type RecipientRole string

const (
	RoleCustomer RecipientRole = "customer"
	RoleBusiness RecipientRole = "business"
	RoleStaff    RecipientRole = "staff"
)

// Outcome is the observable result of a delivery attempt.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeNoToken   Outcome = "no_token"
	OutcomeSkipped   Outcome = "skipped"
)

// FanOutSummary aggregates staff delivery outcomes for one order.
type FanOutSummary struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	NoToken   int `json:"noToken"`
}

// Total is the number of staff members considered.
func (s FanOutSummary) Total() int {
	return s.Delivered + s.Failed + s.NoToken
}
