package lifecycle

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/internal/mailer"
	"github.com/doganiot/mywordismyword/internal/notify"
	"github.com/doganiot/mywordismyword/models"
)

// How often contract creation retries when two requests race for the same
// contract number. The unique index on contract_number rejects the loser.
const numberAttempts = 3

// Controller owns every contract state transition. All mutations run
// inside a transaction; notifications are emitted explicitly after the
// rows they describe, and emails go out after commit, best effort.
type Controller struct {
	db       *gorm.DB
	notifier *notify.Emitter
	mail     mailer.Mailer

	baseURL    string
	autoAccept bool
	codeLen    int
}

// Options are the policy knobs injected from configuration.
type Options struct {
	BaseURL string
	// AutoAcceptInvitations flips newly invited parties straight to
	// accepted. A configuration policy, not an environment check.
	AutoAcceptInvitations bool
	SignatureCodeLength   int
}

func NewController(db *gorm.DB, notifier *notify.Emitter, mail mailer.Mailer, opts Options) *Controller {
	if opts.SignatureCodeLength <= 0 {
		opts.SignatureCodeLength = 6
	}
	if mail == nil {
		mail = mailer.Disabled{}
	}
	return &Controller{
		db:         db,
		notifier:   notifier,
		mail:       mail,
		baseURL:    opts.BaseURL,
		autoAccept: opts.AutoAcceptInvitations,
		codeLen:    opts.SignatureCodeLength,
	}
}

// CreateInput is everything the creation form submits.
type CreateInput struct {
	Title          string
	Content        string
	Visibility     models.ContractVisibility
	ContractType   string
	TemplateID     *uint
	SecondPartyID  *uint
	StartDate      time.Time
	DurationMonths *int
	IsIndefinite   bool
}

// Create makes a draft contract. The creator is enrolled as a party with
// a pending signature; a second party, when given, is enrolled the same
// way and invited by email and notification.
func (c *Controller) Create(creator *models.User, in CreateInput) (*models.Contract, error) {
	if err := validateSchedule(&in); err != nil {
		return nil, err
	}

	isSelf := in.ContractType == "self"
	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	// A contract with yourself stays between you and yourself.
	if isSelf {
		visibility = models.VisibilityPrivate
	}

	var second *models.User
	if !isSelf && in.SecondPartyID != nil {
		second = &models.User{}
		if err := c.db.First(second, *in.SecondPartyID).Error; err != nil {
			return nil, err
		}
		if second.ID == creator.ID {
			return nil, ErrDuplicateParty
		}
	}

	var (
		contract   *models.Contract
		secondCode string
		invitation *models.Notification
	)
	for attempt := 0; ; attempt++ {
		contract = nil
		invitation = nil
		err := c.db.Transaction(func(tx *gorm.DB) error {
			number, err := nextContractNumber(tx)
			if err != nil {
				return err
			}

			ct := &models.Contract{
				ContractNumber: number,
				Title:          in.Title,
				Content:        buildContent(in.Content, creator, second, time.Now()),
				TemplateID:     in.TemplateID,
				CreatorID:      creator.ID,
				Status:         models.StatusDraft,
				Visibility:     visibility,
				ContractType:   in.ContractType,
				IsSelfContract: isSelf,
				IsEditable:     true,
				StartDate:      in.StartDate,
				DurationMonths: in.DurationMonths,
				IsIndefinite:   in.IsIndefinite,
			}
			if err := tx.Create(ct).Error; err != nil {
				return err
			}

			if _, _, err := c.enrollParty(tx, ct, creator, models.RoleParty, models.InvitationAccepted); err != nil {
				return err
			}

			if second != nil {
				status := models.InvitationPending
				if c.autoAccept {
					status = models.InvitationAccepted
				}
				_, code, err := c.enrollParty(tx, ct, second, models.RoleParty, status)
				if err != nil {
					return err
				}
				secondCode = code

				n, err := c.notifier.WithTx(tx).Emit(notify.Event{
					Type:      models.NotifyContractInvitation,
					Recipient: second.ID,
					Sender:    &creator.ID,
					Contract:  ct,
					Title:     "Contract invitation",
					Message:   creator.FullName() + " invited you to the contract \"" + ct.Title + "\".",
					Metadata:  map[string]any{"contract_number": ct.ContractNumber},
				})
				if err != nil {
					return err
				}
				invitation = n
			}

			if in.TemplateID != nil {
				if err := tx.Model(&models.ContractTemplate{}).
					Where("id = ?", *in.TemplateID).
					UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.UserProfile{}).
				Where("user_id = ?", creator.ID).
				UpdateColumn("total_contracts_created", gorm.Expr("total_contracts_created + 1")).Error; err != nil {
				return err
			}

			contract = ct
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < numberAttempts-1 {
			slog.Warn("contract number collision, retrying", "attempt", attempt+1)
			continue
		}
		return nil, err
	}

	if second != nil {
		if c.sendMail(second.Email,
			mailer.InvitationSubject(contract),
			mailer.InvitationBody(contract, creator, c.baseURL)) && invitation != nil {
			c.notifier.MarkSent(invitation.ID)
		}
		c.sendMail(second.Email,
			mailer.SignatureCodeSubject(contract),
			mailer.SignatureCodeBody(contract, secondCode))
	}

	return contract, nil
}

// enrollParty creates the party row and its pending signature, returning
// the fresh signature code.
func (c *Controller) enrollParty(tx *gorm.DB, ct *models.Contract, user *models.User, role models.PartyRole, status models.InvitationStatus) (*models.ContractParty, string, error) {
	party := &models.ContractParty{
		ContractID:       ct.ID,
		UserID:           &user.ID,
		Role:             role,
		InvitationStatus: status,
	}
	if status == models.InvitationAccepted {
		now := time.Now()
		party.JoinedAt = &now
	}
	if err := tx.Create(party).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrDuplicateParty
		}
		return nil, "", err
	}

	code, err := SignatureCode(c.codeLen)
	if err != nil {
		return nil, "", err
	}
	sig := &models.ContractSignature{
		ContractID:    ct.ID,
		PartyID:       party.ID,
		UserID:        &user.ID,
		SignatureCode: code,
	}
	if err := tx.Create(sig).Error; err != nil {
		return nil, "", err
	}
	return party, code, nil
}

// nextContractNumber computes the next human-facing sequence value.
// The unique index on contract_number is the backstop when two creations
// read the same maximum; the caller retries on that conflict.
func nextContractNumber(tx *gorm.DB) (int, error) {
	var current int
	row := tx.Model(&models.Contract{}).
		Select("COALESCE(MAX(contract_number), ?)", models.FirstContractNumber-1).
		Row()
	if err := row.Scan(&current); err != nil {
		return 0, err
	}
	return current + 1, nil
}

func validateSchedule(in *CreateInput) error {
	if in.IsIndefinite {
		// Mutually exclusive with a fixed term.
		in.DurationMonths = nil
	} else {
		if in.DurationMonths == nil || *in.DurationMonths < 1 || *in.DurationMonths > models.MaxDurationMonths {
			return ErrInvalidDuration
		}
	}

	// Date-only comparison: starting later today is fine.
	if dateOnly(in.StartDate).Before(dateOnly(time.Now())) {
		return ErrPastStartDate
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Get loads a contract with everything the detail page and the guards
// need.
func (c *Controller) Get(id uuid.UUID) (*models.Contract, error) {
	var ct models.Contract
	err := c.db.
		Preload("Creator").
		Preload("Parties").
		Preload("Parties.User").
		Preload("Signatures").
		Preload("Approvals").
		Preload("Comments").
		Preload("Comments.User").
		First(&ct, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// sendMail delivers best effort: a failure is logged and swallowed, never
// propagated into the lifecycle transition it was attached to. Returns
// whether the adapter accepted the message so callers can stamp the
// matching notification as sent.
func (c *Controller) sendMail(to, subject, body string) bool {
	if to == "" {
		return false
	}
	if err := c.mail.Send(to, subject, body); err != nil {
		slog.Warn("email delivery failed", "to", to, "subject", subject, "error", err)
		return false
	}
	return true
}
