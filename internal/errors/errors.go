// Package errors provides the typed error taxonomy surfaced at scryptenc's
// public boundary. Every failure the Tuner, header codec, stream codec, and
// session orchestrator can produce maps to exactly one Kind, so callers can
// branch with errors.Is/errors.As instead of string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies one of the error categories from the error taxonomy.
type Kind string

const (
	ELIMIT   Kind = "ELIMIT"   // cannot determine available memory
	ECLOCK   Kind = "ECLOCK"   // cannot benchmark scrypt
	EKEY     Kind = "EKEY"     // scrypt key derivation failed internally
	ESALT    Kind = "ESALT"    // cannot read random salt
	ENOMEM   Kind = "ENOMEM"   // allocation failed
	EINVAL   Kind = "EINVAL"   // header not recognized, or final tag mismatch
	EVERSION Kind = "EVERSION" // header version unknown
	ETOOBIG  Kind = "ETOOBIG"  // decryption would exceed memory cap
	ETOOSLOW Kind = "ETOOSLOW" // decryption would exceed time cap
	EPASS    Kind = "EPASS"    // header HMAC mismatch (wrong passphrase)
	EPARAM   Kind = "EPARAM"   // explicit parameters infeasible under budget
	ERDFILE  Kind = "ERDFILE"  // read I/O failure
	EWRFILE  Kind = "EWRFILE"  // write I/O failure
)

// Error wraps an underlying cause with the Kind that classifies it and the
// operation during which it occurred. Op is free text ("derive key", "read
// header", "write ciphertext", ...) used only for diagnostics.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same Kind, so errors.Is(err, errors.EPASS)
// works without callers reaching into the Error struct.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Error makes Kind itself satisfy the error interface, so sentinel-style
// comparisons (errors.Is(err, errors.EPASS)) work whether or not the
// producer wrapped it in an *Error.
func (k Kind) Error() string { return string(k) }

// New creates an *Error of the given kind wrapping err, with an operation
// label for diagnostics.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrap is New with no operation label, for call sites that already have a
// self-describing underlying error.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Is is a thin re-export of errors.Is for callers that import only this
// package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is a thin re-export of errors.As for callers that import only this
// package.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// KindOf extracts the Kind of err if it (or something in its chain) is an
// *Error or a bare Kind; ok is false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	var k Kind
	if stderrors.As(err, &k) {
		return k, true
	}
	return "", false
}
