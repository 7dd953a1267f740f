// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cerr defines the consensus core's error taxonomy. Every
// rejection the round state machine, proposal validator or vote tallier
// produces carries one of these Kinds so callers can tell a silently
// droppable message (wrong height, duplicate vote) from one that must
// halt the instance (Internal).
package cerr

import "fmt"

// Kind classifies a consensus-level error.
type Kind string

const (
	KindInvalidProposal    Kind = "InvalidProposal"
	KindInvalidVote        Kind = "InvalidVote"
	KindInvalidSignature   Kind = "InvalidSignature"
	KindNotInCommittee     Kind = "NotInCommittee"
	KindQuorumNotReached   Kind = "QuorumNotReached"
	KindWrongHeight        Kind = "WrongHeight"
	KindWrongRound         Kind = "WrongRound"
	KindTimeout            Kind = "Timeout"
	KindDuplicateVote      Kind = "DuplicateVote"
	KindEquivocation       Kind = "Equivocation"
	KindBlockValidation    Kind = "BlockValidation"
	KindEfficiencyMismatch Kind = "EfficiencyMismatch"
	KindBelowReference     Kind = "BelowReference"
	KindInternal           Kind = "Internal"
)

// Error wraps a Kind with a human-readable message and optional cause.
// Local recovery (signature failures, wrong height/round, duplicates) is
// always a silent drop; Equivocation additionally produces durable
// evidence; Timeout triggers advance_round; Internal is fatal.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a *Error wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*Error)
	return ok && ce.Kind == kind
}

// Fatal reports whether err's kind must halt the instance.
func Fatal(err error) bool {
	return Is(err, KindInternal)
}
