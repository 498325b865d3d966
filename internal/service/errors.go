package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation means every regenerated business key collided.
	ErrConstraintViolation = errors.New("business key already in use")
	// ErrTransactionFailure marks any failed cascade; nothing was committed.
	ErrTransactionFailure = errors.New("transaction failed")
	// ErrUnlinkedReference rejects a cascade naming an SR or PO that belongs
	// to a different chain.
	ErrUnlinkedReference = errors.New("reference does not belong to this chain")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CascadeError is the single error reported for a rolled-back cascade. It
// matches ErrTransactionFailure and the underlying cause.
type CascadeError struct {
	PRID  uint
	Stage string // pr | sr | po
	Err   error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade update of PR %d failed at %s stage, all changes rolled back: %v", e.PRID, e.Stage, e.Err)
}

func (e *CascadeError) Unwrap() []error { return []error{ErrTransactionFailure, e.Err} }
