package lifecycle

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/models"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer captures outgoing mail for assertions.
type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) to(addr string) []sentMail {
	var out []sentMail
	for _, s := range m.sent {
		if s.To == addr {
			out = append(out, s)
		}
	}
	return out
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type ControllerSuite struct {
	suite.Suite

	db   *gorm.DB
	mail *recordingMailer
	ctrl *Controller

	alice *models.User
	bob   *models.User
	carol *models.User
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.mail = &recordingMailer{}
	s.ctrl = NewController(s.db, notify.NewEmitter(s.db, nil), s.mail, Options{
		BaseURL:             "http://test.local",
		SignatureCodeLength: 6,
	})

	s.alice = s.newUser("alice", "Alice", "Stone")
	s.bob = s.newUser("bob", "Bob", "Reed")
	s.carol = s.newUser("carol", "Carol", "Hunt")
}

func (s *ControllerSuite) newUser(username, first, last string) *models.User {
	u := &models.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: "x",
		FirstName:    first,
		LastName:     last,
		Profile:      &models.UserProfile{},
	}
	s.Require().NoError(s.db.Create(u).Error)
	return u
}

func (s *ControllerSuite) createTwoParty() *models.Contract {
	months := 6
	ct, err := s.ctrl.Create(s.alice, CreateInput{
		Title:          "Gym pact",
		Content:        "Three sessions a week.",
		ContractType:   "sports",
		SecondPartyID:  &s.bob.ID,
		StartDate:      time.Now(),
		DurationMonths: &months,
	})
	s.Require().NoError(err)
	return ct
}

func (s *ControllerSuite) codeFor(ct *models.Contract, user *models.User) string {
	var sig models.ContractSignature
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, user.ID).
		First(&sig).Error)
	return sig.SignatureCode
}

func (s *ControllerSuite) TestCreateAssignsSequentialNumbers() {
	first := s.createTwoParty()
	s.Equal(models.FirstContractNumber, first.ContractNumber)

	second := s.createTwoParty()
	s.Equal(models.FirstContractNumber+1, second.ContractNumber)
}

func (s *ControllerSuite) TestCreateValidatesSchedule() {
	_, err := s.ctrl.Create(s.alice, CreateInput{
		Title:     "No duration",
		Content:   "x",
		StartDate: time.Now(),
	})
	s.ErrorIs(err, ErrInvalidDuration)

	tooLong := models.MaxDurationMonths + 1
	_, err = s.ctrl.Create(s.alice, CreateInput{
		Title:          "Too long",
		Content:        "x",
		StartDate:      time.Now(),
		DurationMonths: &tooLong,
	})
	s.ErrorIs(err, ErrInvalidDuration)

	months := 3
	_, err = s.ctrl.Create(s.alice, CreateInput{
		Title:          "Yesterday",
		Content:        "x",
		StartDate:      time.Now().AddDate(0, 0, -1),
		DurationMonths: &months,
	})
	s.ErrorIs(err, ErrPastStartDate)

	// Indefinite contracts ignore the duration entirely.
	ct, err := s.ctrl.Create(s.alice, CreateInput{
		Title:          "Forever",
		Content:        "x",
		StartDate:      time.Now(),
		DurationMonths: &months,
		IsIndefinite:   true,
	})
	s.Require().NoError(err)
	s.Nil(ct.DurationMonths)
	s.Nil(ct.EndDate())
}

func (s *ControllerSuite) TestCreateEnrollsSecondParty() {
	ct := s.createTwoParty()

	loaded, err := s.ctrl.Get(ct.ID)
	s.Require().NoError(err)
	s.Len(loaded.Parties, 2)
	s.Len(loaded.Signatures, 2)
	s.Equal(models.StatusDraft, loaded.Status)

	var bobParty *models.ContractParty
	for i := range loaded.Parties {
		if loaded.Parties[i].UserID != nil && *loaded.Parties[i].UserID == s.bob.ID {
			bobParty = &loaded.Parties[i]
		}
	}
	s.Require().NotNil(bobParty)
	s.Equal(models.InvitationPending, bobParty.InvitationStatus)

	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.bob.ID, models.NotifyContractInvitation).
		First(&n).Error)
	s.Contains(n.Message, "Alice Stone")

	// Invitation plus signature code.
	s.Len(s.mail.to(s.bob.Email), 2)
	s.Empty(s.mail.to(s.alice.Email))

	var profile models.UserProfile
	s.Require().NoError(s.db.Where("user_id = ?", s.alice.ID).First(&profile).Error)
	s.Equal(uint(1), profile.TotalContractsCreated)
}

func (s *ControllerSuite) TestTwoPartyFlowCompletes() {
	ct := s.createTwoParty()

	res, err := s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "10.0.0.1")
	s.Require().NoError(err)
	s.False(res.Completed)
	s.Equal(models.StatusPendingSignatures, res.Contract.Status)

	res, err = s.ctrl.Sign(ct.ID, s.bob, s.codeFor(ct, s.bob), "10.0.0.2")
	s.Require().NoError(err)
	s.True(res.Completed)
	s.Equal(models.StatusCompleted, res.Contract.Status)
	s.Require().NotNil(res.Contract.CompletedAt)
	s.False(res.Contract.IsEditable)

	// Signing implicitly accepts the invitation.
	var bobParty models.ContractParty
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&bobParty).Error)
	s.Equal(models.InvitationAccepted, bobParty.InvitationStatus)
	s.NotNil(bobParty.JoinedAt)

	// Completed contracts are untouchable.
	s.ErrorIs(s.ctrl.Delete(ct.ID, s.alice), ErrIntegrityViolation)
	title := "New title"
	_, err = s.ctrl.Edit(ct.ID, s.alice, EditInput{Title: &title})
	s.ErrorIs(err, ErrIntegrityViolation)

	var completions int64
	s.Require().NoError(s.db.Model(&models.Notification{}).
		Where("notification_type = ?", models.NotifyContractCompleted).
		Count(&completions).Error)
	s.Equal(int64(2), completions)
}

func (s *ControllerSuite) TestSelfContractNeedsOneSignature() {
	months := 1
	ct, err := s.ctrl.Create(s.alice, CreateInput{
		Title:          "Morning runs",
		Content:        "Run before work.",
		ContractType:   "self",
		Visibility:     models.VisibilityPublic,
		StartDate:      time.Now(),
		DurationMonths: &months,
	})
	s.Require().NoError(err)
	s.True(ct.IsSelfContract)
	// A contract with yourself is never public.
	s.Equal(models.VisibilityPrivate, ct.Visibility)
	s.Equal(1, ct.RequiredSignatures())

	res, err := s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "")
	s.Require().NoError(err)
	s.True(res.Completed)
	s.Equal(models.StatusCompleted, res.Contract.Status)
}

func (s *ControllerSuite) TestSignRejectsWrongCode() {
	ct := s.createTwoParty()

	_, err := s.ctrl.Sign(ct.ID, s.bob, "000000", "")
	s.ErrorIs(err, ErrInvalidSignatureCode)

	// Nothing changed.
	var sig models.ContractSignature
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&sig).Error)
	s.False(sig.IsSigned)

	var loaded models.Contract
	s.Require().NoError(s.db.First(&loaded, "id = ?", ct.ID).Error)
	s.Equal(models.StatusDraft, loaded.Status)
}

func (s *ControllerSuite) TestSignIsIdempotent() {
	months := 1
	ct, err := s.ctrl.Create(s.alice, CreateInput{
		Title:          "Solo",
		Content:        "x",
		ContractType:   "self",
		StartDate:      time.Now(),
		DurationMonths: &months,
	})
	s.Require().NoError(err)

	code := s.codeFor(ct, s.alice)
	first, err := s.ctrl.Sign(ct.ID, s.alice, code, "")
	s.Require().NoError(err)
	s.True(first.Completed)
	completedAt := *first.Contract.CompletedAt

	// A repeated sign is a friendly no-op and moves no timestamps.
	second, err := s.ctrl.Sign(ct.ID, s.alice, code, "")
	s.Require().NoError(err)
	s.True(second.AlreadySigned)
	s.False(second.Completed)

	var loaded models.Contract
	s.Require().NoError(s.db.First(&loaded, "id = ?", ct.ID).Error)
	s.Require().NotNil(loaded.CompletedAt)
	s.WithinDuration(completedAt, *loaded.CompletedAt, time.Second)
}

func (s *ControllerSuite) TestSignerSeesSignedCounterGrow() {
	ct := s.createTwoParty()
	_, err := s.ctrl.Sign(ct.ID, s.bob, s.codeFor(ct, s.bob), "")
	s.Require().NoError(err)

	var profile models.UserProfile
	s.Require().NoError(s.db.Where("user_id = ?", s.bob.ID).First(&profile).Error)
	s.Equal(uint(1), profile.TotalContractsSigned)
}

func (s *ControllerSuite) TestDeclinePreservesEverything() {
	ct := s.createTwoParty()

	res, err := s.ctrl.Decline(ct.ID, s.bob, "Too ambitious for me")
	s.Require().NoError(err)
	s.False(res.AlreadyDeclined)

	var party models.ContractParty
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&party).Error)
	s.Equal(models.InvitationDeclined, party.InvitationStatus)
	s.Equal("Too ambitious for me", party.DeclineReason)
	s.NotNil(party.DeclinedAt)

	// The contract and its rows survive a decline.
	loaded, err := s.ctrl.Get(ct.ID)
	s.Require().NoError(err)
	s.Len(loaded.Parties, 2)
	s.Len(loaded.Signatures, 2)

	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.alice.ID, models.NotifyContractDeclined).
		First(&n).Error)
	s.Equal(models.PriorityHigh, n.Priority)

	s.NotEmpty(s.mail.to(s.alice.Email))

	// Declining again changes nothing.
	res, err = s.ctrl.Decline(ct.ID, s.bob, "again")
	s.Require().NoError(err)
	s.True(res.AlreadyDeclined)
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&party).Error)
	s.Equal("Too ambitious for me", party.DeclineReason)
}

func (s *ControllerSuite) TestCreatorCannotDecline() {
	ct := s.createTwoParty()
	_, err := s.ctrl.Decline(ct.ID, s.alice, "changed my mind")
	s.ErrorIs(err, ErrCreatorCannotDecline)
}

func (s *ControllerSuite) TestDeclineReopensEditing() {
	ct := s.createTwoParty()

	// One real signature freezes the content.
	_, err := s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "")
	s.Require().NoError(err)
	title := "Softer terms"
	_, err = s.ctrl.Edit(ct.ID, s.alice, EditInput{Title: &title})
	s.ErrorIs(err, ErrNotEditable)

	// A decline opens the contract back up for fixing.
	_, err = s.ctrl.Decline(ct.ID, s.bob, "terms too harsh")
	s.Require().NoError(err)

	edited, err := s.ctrl.Edit(ct.ID, s.alice, EditInput{Title: &title})
	s.Require().NoError(err)
	s.Equal("Softer terms", edited.Title)
}

func (s *ControllerSuite) TestRecreateArchivesOriginal() {
	ct := s.createTwoParty()

	_, err := s.ctrl.Recreate(ct.ID, s.alice, RecreateInput{})
	s.ErrorIs(err, ErrNotDeclined)

	_, err = s.ctrl.Decline(ct.ID, s.bob, "nope")
	s.Require().NoError(err)

	clone, err := s.ctrl.Recreate(ct.ID, s.alice, RecreateInput{})
	s.Require().NoError(err)
	s.NotEqual(ct.ID, clone.ID)
	s.Greater(clone.ContractNumber, ct.ContractNumber)
	s.Equal(models.StatusDraft, clone.Status)
	s.Equal(ct.Title, clone.Title)

	// The second party is re-invited with a clean slate.
	loaded, err := s.ctrl.Get(clone.ID)
	s.Require().NoError(err)
	s.Len(loaded.Parties, 2)
	s.False(loaded.HasDeclinedParties())

	var original models.Contract
	s.Require().NoError(s.db.First(&original, "id = ?", ct.ID).Error)
	s.Equal(models.StatusArchived, original.Status)
	s.False(original.IsEditable)
}

func (s *ControllerSuite) TestInviteRegisteredUser() {
	ct := s.createTwoParty()

	party, err := s.ctrl.Invite(ct.ID, s.alice, InviteInput{UserID: &s.carol.ID})
	s.Require().NoError(err)
	s.True(party.IsRegistered())
	s.Equal(models.InvitationPending, party.InvitationStatus)

	// Carol got a signature row plus her invitation mails.
	var sig models.ContractSignature
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.carol.ID).
		First(&sig).Error)
	s.NotEmpty(sig.SignatureCode)
	s.Len(s.mail.to(s.carol.Email), 2)

	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.carol.ID, models.NotifyContractInvitation).
		First(&n).Error)
	s.NotNil(n.ContractID)

	_, err = s.ctrl.Invite(ct.ID, s.alice, InviteInput{UserID: &s.carol.ID})
	s.ErrorIs(err, ErrDuplicateParty)

	_, err = s.ctrl.Invite(ct.ID, s.bob, InviteInput{UserID: &s.carol.ID})
	s.ErrorIs(err, ErrNotOwner)
}

func (s *ControllerSuite) TestInviteByEmailPrefersAccount() {
	ct := s.createTwoParty()

	party, err := s.ctrl.Invite(ct.ID, s.alice, InviteInput{Email: s.carol.Email})
	s.Require().NoError(err)
	s.True(party.IsRegistered())
	s.Equal(s.carol.ID, *party.UserID)
}

func (s *ControllerSuite) TestInviteManualParty() {
	ct := s.createTwoParty()

	party, err := s.ctrl.Invite(ct.ID, s.alice, InviteInput{
		Name:  "Grandpa Joe",
		Email: "joe@example.org",
		Role:  models.RoleWitness,
	})
	s.Require().NoError(err)
	s.False(party.IsRegistered())
	s.Equal("Grandpa Joe", party.DisplayName())
	s.Equal("joe@example.org", party.DisplayEmail())
	s.Equal(models.RoleWitness, party.Role)

	// Manual parties cannot sign, so no signature row exists for them.
	var count int64
	s.Require().NoError(s.db.Model(&models.ContractSignature{}).
		Where("party_id = ?", party.ID).Count(&count).Error)
	s.Zero(count)

	s.Len(s.mail.to("joe@example.org"), 1)
}

func (s *ControllerSuite) TestRemovePartyGuards() {
	ct := s.createTwoParty()

	party, err := s.ctrl.Invite(ct.ID, s.alice, InviteInput{UserID: &s.carol.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.ctrl.RemoveParty(ct.ID, s.alice, party.ID))

	var count int64
	s.Require().NoError(s.db.Model(&models.ContractSignature{}).
		Where("party_id = ?", party.ID).Count(&count).Error)
	s.Zero(count)

	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.carol.ID, models.NotifyPartyRemoved).
		First(&n).Error)

	// Once someone signed, the contract is past draft and parties are
	// fixed.
	_, err = s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "")
	s.Require().NoError(err)

	var bobParty models.ContractParty
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&bobParty).Error)
	s.ErrorIs(s.ctrl.RemoveParty(ct.ID, s.alice, bobParty.ID), ErrPartyNotRemovable)
}

func (s *ControllerSuite) TestAutoAcceptInvitations() {
	auto := NewController(s.db, notify.NewEmitter(s.db, nil), s.mail, Options{
		AutoAcceptInvitations: true,
		SignatureCodeLength:   6,
	})

	months := 2
	ct, err := auto.Create(s.alice, CreateInput{
		Title:          "Auto",
		Content:        "x",
		SecondPartyID:  &s.bob.ID,
		StartDate:      time.Now(),
		DurationMonths: &months,
	})
	s.Require().NoError(err)

	var party models.ContractParty
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&party).Error)
	s.Equal(models.InvitationAccepted, party.InvitationStatus)
	s.NotNil(party.JoinedAt)
}

func (s *ControllerSuite) TestApproveIsNonGatingLedger() {
	ct := s.createTwoParty()

	approval, err := s.ctrl.Approve(ct.ID, s.bob, "looks fair", "10.0.0.2")
	s.Require().NoError(err)
	s.True(approval.IsApproved)
	s.NotNil(approval.ApprovedAt)

	// Approvals never complete a contract; only signatures do.
	var loaded models.Contract
	s.Require().NoError(s.db.First(&loaded, "id = ?", ct.ID).Error)
	s.Equal(models.StatusDraft, loaded.Status)

	// Approving twice keeps one row.
	again, err := s.ctrl.Approve(ct.ID, s.bob, "still fair", "10.0.0.2")
	s.Require().NoError(err)
	s.Equal(approval.ID, again.ID)
	var count int64
	s.Require().NoError(s.db.Model(&models.ContractApproval{}).
		Where("contract_id = ?", ct.ID).Count(&count).Error)
	s.Equal(int64(1), count)

	_, err = s.ctrl.Approve(ct.ID, s.carol, "", "")
	s.ErrorIs(err, ErrNotParty)
}

func (s *ControllerSuite) TestCommentAccessAndNotification() {
	ct := s.createTwoParty()

	comment, err := s.ctrl.Comment(ct.ID, s.bob, "When do we start?")
	s.Require().NoError(err)
	s.Equal(s.bob.ID, comment.UserID)

	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.alice.ID, models.NotifyCommentAdded).
		First(&n).Error)

	// An outsider has no business on a private contract.
	_, err = s.ctrl.Comment(ct.ID, s.carol, "me too")
	s.ErrorIs(err, ErrNoAccess)

	// But public contracts take comments from anyone.
	s.Require().NoError(s.db.Model(&models.Contract{}).
		Where("id = ?", ct.ID).
		Update("visibility", models.VisibilityPublic).Error)
	_, err = s.ctrl.Comment(ct.ID, s.carol, "interesting pact")
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestDeleteDraftRemovesChildren() {
	ct := s.createTwoParty()
	_, err := s.ctrl.Comment(ct.ID, s.bob, "note")
	s.Require().NoError(err)

	s.ErrorIs(s.ctrl.Delete(ct.ID, s.bob), ErrNotOwner)
	s.Require().NoError(s.ctrl.Delete(ct.ID, s.alice))

	var count int64
	s.Require().NoError(s.db.Model(&models.Contract{}).
		Where("id = ?", ct.ID).Count(&count).Error)
	s.Zero(count)

	for _, model := range []any{
		&models.ContractParty{}, &models.ContractSignature{},
		&models.ContractComment{}, &models.Notification{},
	} {
		count = -1
		s.Require().NoError(s.db.Model(model).
			Where("contract_id = ?", ct.ID).Count(&count).Error)
		s.Zero(count, "leftover rows in %T", model)
	}
}

func (s *ControllerSuite) TestIssueCodeReplacesAndMails() {
	ct := s.createTwoParty()
	old := s.codeFor(ct, s.bob)

	sent, err := s.ctrl.IssueCode(ct.ID, s.bob)
	s.Require().NoError(err)
	s.True(sent)
	s.NotEqual(old, s.codeFor(ct, s.bob))

	_, err = s.ctrl.Sign(ct.ID, s.bob, s.codeFor(ct, s.bob), "")
	s.Require().NoError(err)

	sent, err = s.ctrl.IssueCode(ct.ID, s.bob)
	s.Require().NoError(err)
	s.False(sent)
}

func (s *ControllerSuite) TestArchivedContractRejectsSignatures() {
	ct := s.createTwoParty()

	_, err := s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "")
	s.Require().NoError(err)
	staleCode := s.codeFor(ct, s.bob)

	_, err = s.ctrl.Decline(ct.ID, s.bob, "changed my mind")
	s.Require().NoError(err)
	_, err = s.ctrl.Recreate(ct.ID, s.alice, RecreateInput{})
	s.Require().NoError(err)

	// The archived original is terminal: the old code must not revive it.
	_, err = s.ctrl.Sign(ct.ID, s.bob, staleCode, "")
	s.ErrorIs(err, ErrContractClosed)

	_, err = s.ctrl.IssueCode(ct.ID, s.bob)
	s.ErrorIs(err, ErrContractClosed)

	var original models.Contract
	s.Require().NoError(s.db.First(&original, "id = ?", ct.ID).Error)
	s.Equal(models.StatusArchived, original.Status)
	s.Nil(original.CompletedAt)

	// Unsigned codes on the original were voided when it was archived.
	var sig models.ContractSignature
	s.Require().NoError(s.db.
		Where("contract_id = ? AND user_id = ?", ct.ID, s.bob.ID).
		First(&sig).Error)
	s.Empty(sig.SignatureCode)
}

func (s *ControllerSuite) TestDeliveredMailStampsNotificationSent() {
	ct := s.createTwoParty()

	// The invitation mail went out, so its notification is stamped.
	var invitation models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.bob.ID, models.NotifyContractInvitation).
		First(&invitation).Error)
	s.True(invitation.IsSent)
	s.NotNil(invitation.SentAt)

	// Signing produces a notification without a mail; it stays unstamped.
	_, err := s.ctrl.Sign(ct.ID, s.alice, s.codeFor(ct, s.alice), "")
	s.Require().NoError(err)

	var signed models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.bob.ID, models.NotifyContractSigned).
		First(&signed).Error)
	s.False(signed.IsSent)
	s.Nil(signed.SentAt)

	_, err = s.ctrl.Decline(ct.ID, s.bob, "no")
	s.Require().NoError(err)

	var declined models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.alice.ID, models.NotifyContractDeclined).
		First(&declined).Error)
	s.True(declined.IsSent)
	s.NotNil(declined.SentAt)
}

func (s *ControllerSuite) TestInviteFansOutToExistingParties() {
	ct := s.createTwoParty()

	_, err := s.ctrl.Invite(ct.ID, s.alice, InviteInput{UserID: &s.carol.ID})
	s.Require().NoError(err)

	// Bob learns about the newcomer; carol gets the invitation instead.
	var n models.Notification
	s.Require().NoError(s.db.
		Where("recipient_id = ? AND notification_type = ?", s.bob.ID, models.NotifyPartyAdded).
		First(&n).Error)
	s.Contains(n.Message, "Carol Hunt")

	var count int64
	s.Require().NoError(s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND notification_type = ?", s.carol.ID, models.NotifyPartyAdded).
		Count(&count).Error)
	s.Zero(count)

	// Manual parties fan out to every registered party as well.
	_, err = s.ctrl.Invite(ct.ID, s.alice, InviteInput{
		Name:  "Grandpa Joe",
		Email: "joe@example.org",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Notification{}).
		Where("notification_type = ?", models.NotifyPartyAdded).
		Count(&count).Error)
	s.Equal(int64(3), count)
}

func (s *ControllerSuite) TestContentCarriesPlatformHeader() {
	ct := s.createTwoParty()
	s.Contains(ct.Content, "MYWORDISMYWORD CONTRACT PLATFORM")
	s.Contains(ct.Content, "Alice Stone")
	s.Contains(ct.Content, "Bob Reed")
	s.Contains(ct.Content, "Three sessions a week.")
}
