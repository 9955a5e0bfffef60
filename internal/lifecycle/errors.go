package lifecycle

import "errors"

// Typed failures raised at the controller boundary. Handlers translate
// them into user-facing responses; nothing below this package swallows
// them.
var (
	// ErrIntegrityViolation guards the lock invariant: a completed
	// contract can never be edited, deleted or have parties removed.
	ErrIntegrityViolation = errors.New("contract is completed and can no longer be modified")

	// ErrContractClosed rejects signatures on terminal contracts:
	// archived and cancelled never come back to life.
	ErrContractClosed = errors.New("contract is archived or cancelled and can no longer be signed")

	ErrInvalidSignatureCode = errors.New("invalid signature code")
	ErrInvalidDuration      = errors.New("duration must be between 1 and 1200 months unless the contract is indefinite")
	ErrPastStartDate        = errors.New("start date cannot be in the past")
	ErrPartyNotRemovable    = errors.New("party can no longer be removed from this contract")
	ErrDuplicateParty       = errors.New("user is already a party to this contract")
	ErrNotParty             = errors.New("user is not a party to this contract")
	ErrNotOwner             = errors.New("only the contract creator may do this")
	ErrCreatorCannotDecline = errors.New("the creator cannot decline their own contract")
	ErrNotDeclined          = errors.New("contract has no declined parties")
	ErrNotEditable          = errors.New("contract is no longer editable")
	ErrNoAccess             = errors.New("no access to this contract")
)
