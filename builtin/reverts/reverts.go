// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure of an engine operation.
type Kind uint8

const (
	Unauthorized Kind = iota + 1
	InsufficientBalance
	AllowanceExceeded
	Paused
	NotPaused
	LockExceeded
	InvalidIndex
	InvalidOptionIndex
	InvalidIssueIndex
	LengthMismatch
	AlreadyWithdrawn
	NothingToWithdraw
	NotEligible
	LimitReached
	NoOptions
	InvalidOptions
	ZeroAddress
	VotingClosed
	VotingStillOpen
	InsufficientContractBalance
	InvalidAmount
	NotConfigured
)

var kindNames = map[Kind]string{
	Unauthorized:                "Unauthorized",
	InsufficientBalance:         "InsufficientBalance",
	AllowanceExceeded:           "AllowanceExceeded",
	Paused:                      "Paused",
	NotPaused:                   "NotPaused",
	LockExceeded:                "LockExceeded",
	InvalidIndex:                "InvalidIndex",
	InvalidOptionIndex:          "InvalidOptionIndex",
	InvalidIssueIndex:           "InvalidIssueIndex",
	LengthMismatch:              "LengthMismatch",
	AlreadyWithdrawn:            "AlreadyWithdrawn",
	NothingToWithdraw:           "NothingToWithdraw",
	NotEligible:                 "NotEligible",
	LimitReached:                "LimitReached",
	NoOptions:                   "NoOptions",
	InvalidOptions:              "InvalidOptions",
	ZeroAddress:                 "ZeroAddress",
	VotingClosed:                "VotingClosed",
	VotingStillOpen:             "VotingStillOpen",
	InsufficientContractBalance: "InsufficientContractBalance",
	InvalidAmount:               "InvalidAmount",
	NotConfigured:               "NotConfigured",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrRevert aborts the current call. The runtime rolls back every change the call made.
type ErrRevert struct {
	kind    Kind
	message string
}

// New creates a revert error of the given kind.
func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{kind: kind, message: message}
}

// Newf creates a revert error with a formatted message.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{kind: kind, message: fmt.Sprintf(format, args...)}
}

func (e *ErrRevert) Error() string {
	return e.kind.String() + ": " + e.message
}

func (e *ErrRevert) Kind() Kind      { return e.kind }
func (e *ErrRevert) Message() string { return e.message }

// KindOf returns the kind of a revert error found in err's chain, or zero.
func KindOf(err error) Kind {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.kind
	}
	return 0
}

// Is reports whether err carries a revert of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsRevertErr reports whether err is a business failure rather than an infrastructure one.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	return KindOf(e) != 0
}
