package lifecycle

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/internal/mailer"
	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/models"
)

// InviteInput identifies who to add: a registered user by id, or a manual
// name/email pair. When only an email is given and it matches an account,
// the account wins.
type InviteInput struct {
	UserID *uint
	Name   string
	Email  string
	Role   models.PartyRole
}

// Invite adds a party to the contract. Registered users get a pending
// signature and are notified by email and notification; manual parties
// only get the email.
func (c *Controller) Invite(contractID uuid.UUID, inviter *models.User, in InviteInput) (*models.ContractParty, error) {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, err
	}
	if ct.CreatorID != inviter.ID {
		return nil, ErrNotOwner
	}
	if ct.IsLocked() {
		return nil, ErrIntegrityViolation
	}

	role := in.Role
	if role == "" {
		role = models.RoleParty
	}

	var user *models.User
	if in.UserID != nil {
		user = &models.User{}
		if err := c.db.First(user, *in.UserID).Error; err != nil {
			return nil, err
		}
	} else if in.Email != "" {
		// Prefer the account when the address belongs to one.
		var found models.User
		err := c.db.Where("email = ?", in.Email).First(&found).Error
		if err == nil {
			user = &found
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if user != nil {
		return c.inviteRegistered(&ct, inviter, user, role)
	}
	return c.inviteManual(&ct, inviter, in.Name, in.Email, role)
}

func (c *Controller) inviteRegistered(ct *models.Contract, inviter, user *models.User, role models.PartyRole) (*models.ContractParty, error) {
	var existing int64
	if err := c.db.Model(&models.ContractParty{}).
		Where("contract_id = ? AND user_id = ?", ct.ID, user.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateParty
	}

	status := models.InvitationPending
	if c.autoAccept {
		status = models.InvitationAccepted
	}

	var (
		party      *models.ContractParty
		code       string
		invitation *models.Notification
	)
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var err error
		party, code, err = c.enrollParty(tx, ct, user, role, status)
		if err != nil {
			return err
		}
		if err := c.notifyPartyAdded(tx, ct, inviter, &user.ID, user.FullName()); err != nil {
			return err
		}
		invitation, err = c.notifier.WithTx(tx).Emit(notify.Event{
			Type:      models.NotifyContractInvitation,
			Recipient: user.ID,
			Sender:    &inviter.ID,
			Contract:  ct,
			Title:     "Contract invitation",
			Message:   inviter.FullName() + " invited you to the contract \"" + ct.Title + "\".",
			Metadata:  map[string]any{"role": string(role)},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.sendMail(user.Email, mailer.InvitationSubject(ct), mailer.InvitationBody(ct, inviter, c.baseURL)) {
		c.notifier.MarkSent(invitation.ID)
	}
	c.sendMail(user.Email, mailer.SignatureCodeSubject(ct), mailer.SignatureCodeBody(ct, code))
	return party, nil
}

// notifyPartyAdded fans the newcomer out to the parties already on the
// contract. The newcomer themselves gets the invitation instead, and the
// inviter already knows.
func (c *Controller) notifyPartyAdded(tx *gorm.DB, ct *models.Contract, inviter *models.User, newUserID *uint, display string) error {
	var parties []models.ContractParty
	if err := tx.Where("contract_id = ?", ct.ID).Find(&parties).Error; err != nil {
		return err
	}
	emitter := c.notifier.WithTx(tx)
	seen := map[uint]bool{inviter.ID: true}
	if newUserID != nil {
		seen[*newUserID] = true
	}
	for i := range parties {
		p := &parties[i]
		if p.UserID == nil || seen[*p.UserID] {
			continue
		}
		seen[*p.UserID] = true
		if _, err := emitter.Emit(notify.Event{
			Type:      models.NotifyPartyAdded,
			Recipient: *p.UserID,
			Sender:    &inviter.ID,
			Contract:  ct,
			Title:     "Party added",
			Message:   display + " was added to the contract \"" + ct.Title + "\".",
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) inviteManual(ct *models.Contract, inviter *models.User, name, email string, role models.PartyRole) (*models.ContractParty, error) {
	party := &models.ContractParty{
		ContractID:       ct.ID,
		Name:             name,
		Email:            email,
		Role:             role,
		InvitationStatus: models.InvitationPending,
	}
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(party).Error; err != nil {
			return err
		}
		return c.notifyPartyAdded(tx, ct, inviter, nil, party.DisplayName())
	})
	if err != nil {
		return nil, err
	}

	c.sendMail(email, mailer.InvitationSubject(ct), mailer.InvitationBody(ct, inviter, c.baseURL))
	return party, nil
}

// RemoveParty takes a party off a draft contract. Blocked once the
// contract left draft, or when the party has a verified signature or an
// approval on record.
func (c *Controller) RemoveParty(contractID uuid.UUID, owner *models.User, partyID uint) error {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return err
	}
	if ct.CreatorID != owner.ID {
		return ErrNotOwner
	}
	if ct.IsLocked() {
		return ErrIntegrityViolation
	}
	if ct.Status != models.StatusDraft {
		return ErrPartyNotRemovable
	}

	var party models.ContractParty
	if err := c.db.Where("id = ? AND contract_id = ?", partyID, ct.ID).First(&party).Error; err != nil {
		return err
	}

	var signed int64
	if err := c.db.Model(&models.ContractSignature{}).
		Where("party_id = ? AND is_signed = ?", party.ID, true).
		Count(&signed).Error; err != nil {
		return err
	}
	if signed > 0 {
		return ErrPartyNotRemovable
	}
	if party.UserID != nil {
		var approved int64
		if err := c.db.Model(&models.ContractApproval{}).
			Where("contract_id = ? AND user_id = ? AND is_approved = ?", ct.ID, *party.UserID, true).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved > 0 {
			return ErrPartyNotRemovable
		}
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("party_id = ?", party.ID).Delete(&models.ContractSignature{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&party).Error; err != nil {
			return err
		}
		if party.UserID != nil {
			if _, err := c.notifier.WithTx(tx).Emit(notify.Event{
				Type:      models.NotifyPartyRemoved,
				Recipient: *party.UserID,
				Sender:    &owner.ID,
				Contract:  &ct,
				Title:     "Removed from contract",
				Message:   "You were removed from the contract \"" + ct.Title + "\".",
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeclineResult reports whether the decline actually changed anything.
type DeclineResult struct {
	Party *models.ContractParty
	// AlreadyDeclined marks the friendly no-op on a repeated decline.
	AlreadyDeclined bool
}

// Decline records a party's rejection of their invitation. The decline is
// terminal for the party but destroys nothing: the contract and the party
// row stay, and the creator is notified so they can edit or recreate.
func (c *Controller) Decline(contractID uuid.UUID, user *models.User, reason string) (*DeclineResult, error) {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, err
	}
	party, err := c.partyOf(&ct, user.ID)
	if err != nil {
		return nil, err
	}
	if ct.CreatorID == user.ID {
		return nil, ErrCreatorCannotDecline
	}
	if party.InvitationStatus == models.InvitationDeclined {
		return &DeclineResult{Party: party, AlreadyDeclined: true}, nil
	}

	var declined *models.Notification
	err = c.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(party).Updates(map[string]any{
			"invitation_status": models.InvitationDeclined,
			"decline_reason":    reason,
			"declined_at":       now,
		}).Error; err != nil {
			return err
		}

		var err error
		declined, err = c.notifier.WithTx(tx).Emit(notify.Event{
			Type:      models.NotifyContractDeclined,
			Recipient: ct.CreatorID,
			Sender:    &user.ID,
			Contract:  &ct,
			Title:     "Contract declined",
			Message:   user.FullName() + " declined the contract \"" + ct.Title + "\".",
			Priority:  models.PriorityHigh,
			Metadata:  map[string]any{"decline_reason": reason},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	var creator models.User
	if err := c.db.First(&creator, ct.CreatorID).Error; err == nil {
		if c.sendMail(creator.Email, mailer.DeclinedSubject(&ct),
			mailer.DeclinedBody(&ct, user.FullName(), reason, c.baseURL)) {
			c.notifier.MarkSent(declined.ID)
		}
	}

	return &DeclineResult{Party: party}, nil
}
