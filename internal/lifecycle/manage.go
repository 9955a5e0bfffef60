package lifecycle

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/models"
)

// EditInput carries the fields a creator may still change. Nil means
// keep the current value.
type EditInput struct {
	Title      *string
	Content    *string
	Visibility *models.ContractVisibility
}

// Edit updates a contract's title, content or visibility. Allowed only
// while nothing binding happened: a completed or archived contract is
// untouchable, and verified signatures freeze it unless a decline
// reopened it.
func (c *Controller) Edit(contractID uuid.UUID, owner *models.User, in EditInput) (*models.Contract, error) {
	ct, err := c.Get(contractID)
	if err != nil {
		return nil, err
	}
	if ct.CreatorID != owner.ID {
		return nil, ErrNotOwner
	}
	if ct.IsLocked() {
		return nil, ErrIntegrityViolation
	}
	if !ct.IsEditableCheck() {
		return nil, ErrNotEditable
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Visibility != nil && !ct.IsSelfContract {
		updates["visibility"] = *in.Visibility
	}
	if len(updates) == 0 {
		return ct, nil
	}
	if err := c.db.Model(ct).Updates(updates).Error; err != nil {
		return nil, err
	}
	return c.Get(contractID)
}

// Delete removes a contract and everything hanging off it. Completed
// contracts are permanent and cannot be deleted.
func (c *Controller) Delete(contractID uuid.UUID, owner *models.User) error {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return err
	}
	if ct.CreatorID != owner.ID {
		return ErrNotOwner
	}
	if !ct.CanBeDeleted() {
		return ErrIntegrityViolation
	}

	// Children are deleted explicitly so the behavior does not depend
	// on database-level cascade support.
	return c.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&models.ContractSignature{},
			&models.ContractApproval{},
			&models.ContractComment{},
			&models.ContractParty{},
			&models.Notification{},
		} {
			if err := tx.Where("contract_id = ?", ct.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&ct).Error
	})
}

// RecreateInput optionally overrides fields on the cloned contract.
type RecreateInput struct {
	Title          *string
	Content        *string
	SecondPartyID  *uint
	StartDate      *time.Time
	DurationMonths *int
	IsIndefinite   *bool
}

// Recreate clones a declined contract into a fresh draft and archives
// the original. The clone gets a new number and clean signatures; the
// declined original stays on record.
func (c *Controller) Recreate(contractID uuid.UUID, owner *models.User, in RecreateInput) (*models.Contract, error) {
	ct, err := c.Get(contractID)
	if err != nil {
		return nil, err
	}
	if ct.CreatorID != owner.ID {
		return nil, ErrNotOwner
	}
	if ct.IsLocked() {
		return nil, ErrIntegrityViolation
	}
	if !ct.HasDeclinedParties() {
		return nil, ErrNotDeclined
	}

	create := CreateInput{
		Title:        ct.Title,
		Content:      ct.Content,
		Visibility:   ct.Visibility,
		ContractType: ct.ContractType,
		TemplateID:   ct.TemplateID,
		StartDate:    ct.StartDate,
		IsIndefinite: ct.IsIndefinite,
	}
	if ct.DurationMonths != nil {
		d := *ct.DurationMonths
		create.DurationMonths = &d
	}
	if in.Title != nil {
		create.Title = *in.Title
	}
	if in.Content != nil {
		create.Content = *in.Content
	}
	if in.StartDate != nil {
		create.StartDate = *in.StartDate
	}
	if in.DurationMonths != nil {
		create.DurationMonths = in.DurationMonths
	}
	if in.IsIndefinite != nil {
		create.IsIndefinite = *in.IsIndefinite
	}
	if in.SecondPartyID != nil {
		create.SecondPartyID = in.SecondPartyID
	} else {
		// Default to re-inviting the second registered party.
		for _, p := range ct.Parties {
			if p.UserID != nil && *p.UserID != ct.CreatorID {
				id := *p.UserID
				create.SecondPartyID = &id
				break
			}
		}
	}
	// A start date in the past would block the clone; roll it forward.
	if dateOnly(create.StartDate).Before(dateOnly(time.Now())) {
		create.StartDate = time.Now()
	}

	clone, err := c.Create(owner, create)
	if err != nil {
		return nil, err
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Contract{}).
			Where("id = ? AND status <> ?", ct.ID, models.StatusCompleted).
			Updates(map[string]any{"status": models.StatusArchived, "is_editable": false}).Error; err != nil {
			return err
		}
		// Outstanding codes on the original die with it.
		return tx.Model(&models.ContractSignature{}).
			Where("contract_id = ? AND is_signed = ?", ct.ID, false).
			Update("signature_code", "").Error
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// Approve records a user's non-binding endorsement. Approvals are a
// ledger only and never drive the contract's status; signatures do.
func (c *Controller) Approve(contractID uuid.UUID, user *models.User, note, ip string) (*models.ContractApproval, error) {
	var ct models.Contract
	if err := c.db.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, err
	}
	if ct.Status == models.StatusCompleted {
		return nil, ErrIntegrityViolation
	}
	if _, err := c.partyOf(&ct, user.ID); err != nil {
		return nil, err
	}

	var approval models.ContractApproval
	err := c.db.Where("contract_id = ? AND user_id = ?", ct.ID, user.ID).First(&approval).Error
	if err == nil {
		if approval.IsApproved {
			return &approval, nil
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		approval = models.ContractApproval{ContractID: ct.ID, UserID: user.ID}
	} else {
		return nil, err
	}

	now := time.Now()
	approval.IsApproved = true
	approval.ApprovedAt = &now
	approval.Note = note
	approval.IPAddress = ip
	if err := c.db.Save(&approval).Error; err != nil {
		return nil, err
	}
	return &approval, nil
}

// Comment adds a comment and notifies the other registered parties.
// Anyone involved can comment; outsiders only on public contracts.
func (c *Controller) Comment(contractID uuid.UUID, user *models.User, content string) (*models.ContractComment, error) {
	ct, err := c.Get(contractID)
	if err != nil {
		return nil, err
	}
	if !c.CanView(ct, user) {
		return nil, ErrNoAccess
	}

	comment := &models.ContractComment{
		ContractID: ct.ID,
		UserID:     user.ID,
		Content:    content,
		IsPublic:   true,
	}
	err = c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return c.notifyOtherParties(tx, c.notifier.WithTx(tx), ct, user, notify.Event{
			Type:    models.NotifyCommentAdded,
			Title:   "New comment",
			Message: user.FullName() + " commented on the contract \"" + ct.Title + "\".",
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CanView reports whether the user may read the contract: the creator,
// any enrolled party, or anyone when the contract is public.
func (c *Controller) CanView(ct *models.Contract, user *models.User) bool {
	if ct.Visibility == models.VisibilityPublic {
		return true
	}
	if user == nil {
		return false
	}
	if ct.CreatorID == user.ID {
		return true
	}
	for _, p := range ct.Parties {
		if p.UserID != nil && *p.UserID == user.ID {
			return true
		}
	}
	return false
}
