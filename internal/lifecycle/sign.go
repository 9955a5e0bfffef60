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

// SignResult reports what a signing attempt did.
type SignResult struct {
	Contract *models.Contract
	// AlreadySigned marks the friendly no-op: the party had signed
	// before and nothing changed.
	AlreadySigned bool
	// Completed is true when this signature reached the quorum and the
	// contract transitioned to completed.
	Completed bool
}

// Sign verifies the submitted code and records the signature. A code
// mismatch mutates nothing. Reaching the quorum flips the contract to
// completed exactly once: the transition is a guarded update keyed on the
// current status, so concurrent signers cannot complete it twice.
func (c *Controller) Sign(contractID uuid.UUID, user *models.User, code string, ip string) (*SignResult, error) {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, err
	}
	if ct.Status == models.StatusArchived || ct.Status == models.StatusCancelled {
		return nil, ErrContractClosed
	}

	party, err := c.partyOf(&ct, user.ID)
	if err != nil {
		return nil, err
	}

	sig, err := c.signatureOf(&ct, party)
	if err != nil {
		return nil, err
	}
	if sig.IsSigned {
		return &SignResult{Contract: &ct, AlreadySigned: true}, nil
	}
	if sig.SignatureCode == "" || sig.SignatureCode != code {
		return nil, ErrInvalidSignatureCode
	}

	res := &SignResult{}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(sig).Updates(map[string]any{
			"is_signed":  true,
			"signed_at":  now,
			"ip_address": ip,
		}).Error; err != nil {
			return err
		}

		// Signing accepts the invitation implicitly.
		if party.InvitationStatus == models.InvitationPending {
			if err := tx.Model(party).Updates(map[string]any{
				"invitation_status": models.InvitationAccepted,
				"joined_at":         now,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.UserProfile{}).
			Where("user_id = ?", user.ID).
			UpdateColumn("total_contracts_signed", gorm.Expr("total_contracts_signed + 1")).Error; err != nil {
			return err
		}

		emitter := c.notifier.WithTx(tx)
		if err := c.notifyOtherParties(tx, emitter, &ct, user, notify.Event{
			Type:    models.NotifyContractSigned,
			Title:   "Contract signed",
			Message: user.FullName() + " signed the contract \"" + ct.Title + "\".",
		}); err != nil {
			return err
		}

		completed, err := c.tryComplete(tx, emitter, &ct, user, now)
		if err != nil {
			return err
		}
		res.Completed = completed
		return nil
	})
	if err != nil {
		return nil, err
	}

	reloaded, err := c.Get(ct.ID)
	if err != nil {
		return nil, err
	}
	res.Contract = reloaded
	return res, nil
}

// tryComplete evaluates the quorum and performs the completion transition
// at most once. The WHERE clause on the current status makes the update a
// no-op for anyone who lost the race, and for every later call.
func (c *Controller) tryComplete(tx *gorm.DB, emitter *notify.Emitter, ct *models.Contract, actor *models.User, now time.Time) (bool, error) {
	var signed int64
	if err := tx.Model(&models.ContractSignature{}).
		Where("contract_id = ? AND is_signed = ?", ct.ID, true).
		Count(&signed).Error; err != nil {
		return false, err
	}
	if signed < int64(ct.RequiredSignatures()) {
		// First signature moves the draft forward while the rest are
		// still outstanding.
		if ct.Status == models.StatusDraft && signed > 0 {
			if err := tx.Model(&models.Contract{}).
				Where("id = ? AND status = ?", ct.ID, models.StatusDraft).
				Update("status", models.StatusPendingSignatures).Error; err != nil {
				return false, err
			}
		}
		return false, nil
	}

	terminal := []models.ContractStatus{
		models.StatusCompleted, models.StatusArchived, models.StatusCancelled,
	}
	upd := tx.Model(&models.Contract{}).
		Where("id = ? AND status NOT IN ?", ct.ID, terminal).
		Updates(map[string]any{
			"status":       models.StatusCompleted,
			"completed_at": now,
			"is_editable":  false,
		})
	if upd.Error != nil {
		return false, upd.Error
	}
	if upd.RowsAffected == 0 {
		// Someone else completed it first; completed_at stays theirs.
		return false, nil
	}

	var parties []models.ContractParty
	if err := tx.Where("contract_id = ?", ct.ID).Find(&parties).Error; err != nil {
		return false, err
	}
	for i := range parties {
		p := &parties[i]
		if p.UserID == nil {
			continue
		}
		if _, err := emitter.Emit(notify.Event{
			Type:      models.NotifyContractCompleted,
			Recipient: *p.UserID,
			Sender:    &actor.ID,
			Contract:  ct,
			Title:     "Contract completed",
			Message:   "The contract \"" + ct.Title + "\" has been signed by all parties and is now locked.",
			Priority:  models.PriorityHigh,
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

// IssueCode regenerates and re-delivers the signature code for the
// calling party. Returns false when the party already signed (nothing to
// issue).
func (c *Controller) IssueCode(contractID uuid.UUID, user *models.User) (bool, error) {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return false, err
	}
	if ct.Status == models.StatusArchived || ct.Status == models.StatusCancelled {
		return false, ErrContractClosed
	}
	party, err := c.partyOf(&ct, user.ID)
	if err != nil {
		return false, err
	}
	sig, err := c.signatureOf(&ct, party)
	if err != nil {
		return false, err
	}
	if sig.IsSigned {
		return false, nil
	}

	code, err := SignatureCode(c.codeLen)
	if err != nil {
		return false, err
	}
	if err := c.db.Model(sig).Update("signature_code", code).Error; err != nil {
		return false, err
	}

	c.sendMail(user.Email, mailer.SignatureCodeSubject(&ct), mailer.SignatureCodeBody(&ct, code))
	return true, nil
}

// partyOf finds the user's party row on the contract.
func (c *Controller) partyOf(ct *models.Contract, userID uint) (*models.ContractParty, error) {
	var party models.ContractParty
	err := c.db.Where("contract_id = ? AND user_id = ?", ct.ID, userID).First(&party).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotParty
	}
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// signatureOf returns the party's signature row, creating a fresh pending
// one when it is missing (legacy rows created before signatures were
// issued at enrollment).
func (c *Controller) signatureOf(ct *models.Contract, party *models.ContractParty) (*models.ContractSignature, error) {
	var sig models.ContractSignature
	err := c.db.Where("contract_id = ? AND party_id = ?", ct.ID, party.ID).First(&sig).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		code, cerr := SignatureCode(c.codeLen)
		if cerr != nil {
			return nil, cerr
		}
		sig = models.ContractSignature{
			ContractID:    ct.ID,
			PartyID:       party.ID,
			UserID:        party.UserID,
			SignatureCode: code,
		}
		if cerr := c.db.Create(&sig).Error; cerr != nil {
			return nil, cerr
		}
		return &sig, nil
	}
	if err != nil {
		return nil, err
	}
	return &sig, nil
}

// notifyOtherParties emits the event to every registered party except the
// actor, and to the creator when they are not enrolled as a party.
func (c *Controller) notifyOtherParties(tx *gorm.DB, emitter *notify.Emitter, ct *models.Contract, actor *models.User, ev notify.Event) error {
	var parties []models.ContractParty
	if err := tx.Where("contract_id = ?", ct.ID).Find(&parties).Error; err != nil {
		return err
	}
	seen := map[uint]bool{actor.ID: true}
	for i := range parties {
		p := &parties[i]
		if p.UserID == nil || seen[*p.UserID] {
			continue
		}
		seen[*p.UserID] = true
		e := ev
		e.Recipient = *p.UserID
		e.Sender = &actor.ID
		e.Contract = ct
		if _, err := emitter.Emit(e); err != nil {
			return err
		}
	}
	if !seen[ct.CreatorID] {
		e := ev
		e.Recipient = ct.CreatorID
		e.Sender = &actor.ID
		e.Contract = ct
		if _, err := emitter.Emit(e); err != nil {
			return err
		}
	}
	return nil
}
