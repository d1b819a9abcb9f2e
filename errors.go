/*
 * errors.go, part of gochem.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes. Errors returned by this package wrap one of these, so
// callers can test them with errors.Is.
var (
	ErrOutOfRange = errors.New("index out of range")
	ErrSameAtom   = errors.New("an atom cannot be bonded to itself")
	ErrNoModel    = errors.New("no such model")
	ErrModelOrder = errors.New("atoms can only be appended to the last model")
	ErrBadRecord  = errors.New("malformed record")
)

// Error is the error type returned by this package. The Decorate method
// allows to add the names of the functions the error went through, without
// changing its type or wrapping it in something else.
type Error struct {
	msg      string
	deco     []string
	critical bool
	cause    error
}

func newError(cause error, critical bool, caller string, format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), deco: []string{caller}, critical: critical, cause: cause}
}

// Error returns a string with the message, the cause and the decoration.
func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.msg)
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	if len(err.deco) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(err.deco, " <- "))
		b.WriteString("]")
	}
	return b.String()
}

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical reports whether the error should stop the caller. Non-critical
// errors are input problems the caller may log and skip.
func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() error { return err.cause }

// errDecorate decorates err with the caller's name if it is an *Error,
// and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		return e
	}
	return newError(err, true, caller, "%s", "unexpected error")
}

// PanicMsg is a message used for panics, even though it does satisfy the
// error interface. Panics are reserved for programming errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrBondCrossing  = PanicMsg("goChem: atom is not part of the bond")
	ErrDanglingBond  = PanicMsg("goChem: deleted atom still has bonds")
	ErrInvalidAtom   = PanicMsg("goChem: atom index out of range")
	ErrInvalidBond   = PanicMsg("goChem: bond index out of range")
	ErrInvalidTarget = PanicMsg("goChem: hierarchy index out of range")
)
