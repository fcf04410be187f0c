/*
 * errors.go, part of magio.
 *
 * Copyright 2025 The magio Authors.
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
 */

package magio

import (
	"errors"
	"fmt"
	"io/fs"
)

// kind is a failure category. Kinds can have a parent, so that
// errors.Is(ErrCorruptedFile, ErrParseFailure) holds.
type kind struct {
	msg    string
	parent error
}

func (k *kind) Error() string { return k.msg }

func (k *kind) Unwrap() error { return k.parent }

// Failure kinds. Compare against them with errors.Is.
var (
	// ErrParseFailure is the general decode-time failure.
	ErrParseFailure error = &kind{msg: "parse failure"}

	// ErrUnsupportedFormat means the file is well formed, but its variant is not
	// handled by the parser (e.g. scalar OVF data, several segments).
	ErrUnsupportedFormat error = &kind{msg: "unsupported format", parent: ErrParseFailure}

	// ErrCorruptedFile means the content is there, but structurally invalid:
	// truncated payloads, wrong check values, short rows.
	ErrCorruptedFile error = &kind{msg: "corrupted file", parent: ErrParseFailure}

	// ErrFileNotFound is returned by ParseFile for missing paths.
	ErrFileNotFound error = &kind{msg: "file not found", parent: fs.ErrNotExist}

	// ErrInvalidFormat means the content does not look like the format the
	// parser reads at all.
	ErrInvalidFormat error = &kind{msg: "invalid format"}

	// ErrInvalidArgument is returned by the standardization functions.
	ErrInvalidArgument error = &kind{msg: "invalid argument"}
)

// Error is the error type returned by parsers. It carries the failure kind,
// the offending file and the format that was being read. The deco slice
// keeps the names of the functions the error went through.
type Error struct {
	kind     error
	cause    error
	format   string
	filename string //empty if no file is involved
	message  string
	deco     []string
}

// NewError returns an error of the given kind for the file name, read as format.
func NewError(kind error, format, name, message string) *Error {
	return &Error{kind: kind, format: format, filename: name, message: message}
}

// Errorf is like NewError, with a formatted message.
func Errorf(kind error, format, name, msgfmt string, args ...any) *Error {
	return NewError(kind, format, name, fmt.Sprintf(msgfmt, args...))
}

// Wrap returns an error of the given kind whose message is taken from cause.
// Both kind and cause are reachable through errors.Is and errors.As.
func Wrap(kind error, format, name string, cause error) *Error {
	return &Error{kind: kind, cause: cause, format: format, filename: name, message: cause.Error()}
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("%v: %s", err.kind, err.message)
	}
	format := err.format
	if format == "" {
		format = "magio"
	}
	return fmt.Sprintf("%s file %s: %v: %s", format, err.filename, err.kind, err.message)
}

func (err *Error) Unwrap() []error {
	if err.cause == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.cause}
}

// Decorate adds the caller to the decoration slice and returns the slice.
// An empty string just returns the current value.
func (err *Error) Decorate(caller string) []string {
	if caller != "" {
		err.deco = append(err.deco, caller)
	}
	return err.deco
}

// FileName returns the file the error refers to, if any.
func (err *Error) FileName() string { return err.filename }

// Format returns the name of the format being read when the error happened.
func (err *Error) Format() string { return err.format }

// Message returns the human-readable cause.
func (err *Error) Message() string { return err.message }

// ErrDecorate decorates err with the caller name if err is an *Error,
// and returns it unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
