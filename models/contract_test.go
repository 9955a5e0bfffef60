package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRequiredSignatures(t *testing.T) {
	normal := Contract{}
	assert.Equal(t, 2, normal.RequiredSignatures())

	self := Contract{IsSelfContract: true}
	assert.Equal(t, 1, self.RequiredSignatures())
}

func TestCanBeCompleted(t *testing.T) {
	ct := Contract{
		Signatures: []ContractSignature{
			{IsSigned: true},
			{IsSigned: false},
		},
	}
	assert.False(t, ct.CanBeCompleted())

	ct.Signatures[1].IsSigned = true
	assert.True(t, ct.CanBeCompleted())

	self := Contract{
		IsSelfContract: true,
		Signatures:     []ContractSignature{{IsSigned: true}},
	}
	assert.True(t, self.CanBeCompleted())
}

func TestIsEditableCheck(t *testing.T) {
	fresh := Contract{Status: StatusDraft}
	assert.True(t, fresh.IsEditableCheck())

	signed := Contract{
		Status:     StatusPendingSignatures,
		Signatures: []ContractSignature{{IsSigned: true}},
	}
	assert.False(t, signed.IsEditableCheck())

	// A decline reopens editing even with a signature on record.
	declined := signed
	declined.Parties = []ContractParty{{InvitationStatus: InvitationDeclined}}
	assert.True(t, declined.IsEditableCheck())

	completed := Contract{
		Status:  StatusCompleted,
		Parties: []ContractParty{{InvitationStatus: InvitationDeclined}},
	}
	assert.False(t, completed.IsEditableCheck())
}

func TestCanBeDeleted(t *testing.T) {
	for _, status := range []ContractStatus{
		StatusDraft, StatusPendingSignatures, StatusArchived, StatusCancelled,
	} {
		ct := Contract{Status: status}
		assert.True(t, ct.CanBeDeleted(), "status %s", status)
	}
	locked := Contract{Status: StatusCompleted}
	assert.False(t, locked.CanBeDeleted())
}

func TestDurationDisplay(t *testing.T) {
	cases := []struct {
		name     string
		contract Contract
		want     string
	}{
		{"indefinite flag", Contract{IsIndefinite: true}, "indefinite"},
		{"nil duration", Contract{}, "indefinite"},
		{"one month", Contract{DurationMonths: intPtr(1)}, "1 month"},
		{"several months", Contract{DurationMonths: intPtr(7)}, "7 months"},
		{"one year", Contract{DurationMonths: intPtr(12)}, "1 year"},
		{"several years", Contract{DurationMonths: intPtr(36)}, "3 years"},
		{"mixed term", Contract{DurationMonths: intPtr(14)}, "14 months"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.contract.DurationDisplay())
		})
	}
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	fixed := Contract{StartDate: start, DurationMonths: intPtr(6)}
	end := fixed.EndDate()
	if assert.NotNil(t, end) {
		assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *end)
	}

	open := Contract{StartDate: start, IsIndefinite: true}
	assert.Nil(t, open.EndDate())
}

func TestPartyDisplayResolution(t *testing.T) {
	userID := uint(7)
	registered := ContractParty{
		UserID: &userID,
		User:   &User{Username: "kemal", FirstName: "Kemal", LastName: "Aydın", Email: "kemal@test.local"},
	}
	assert.True(t, registered.IsRegistered())
	assert.Equal(t, "Kemal Aydın", registered.DisplayName())
	assert.Equal(t, "kemal@test.local", registered.DisplayEmail())

	manual := ContractParty{Name: "Aunt May", Email: "may@example.org"}
	assert.Equal(t, "Aunt May", manual.DisplayName())
	assert.Equal(t, "may@example.org", manual.DisplayEmail())

	blank := ContractParty{}
	assert.Equal(t, "unknown", blank.DisplayName())
}

func TestFullNameFallback(t *testing.T) {
	assert.Equal(t, "ayse", (&User{Username: "ayse"}).FullName())
	assert.Equal(t, "Ayşe", (&User{Username: "ayse", FirstName: "Ayşe"}).FullName())
	assert.Equal(t, "Ayşe Demir", (&User{FirstName: "Ayşe", LastName: "Demir"}).FullName())
}
