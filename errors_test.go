/*
 * errors_test.go, part of magio.
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
	"io/fs"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	corrupt := NewError(ErrCorruptedFile, "ovf", "m.ovf", "truncated data")
	assert.True(t, errors.Is(corrupt, ErrCorruptedFile))
	assert.True(t, errors.Is(corrupt, ErrParseFailure))
	assert.False(t, errors.Is(corrupt, ErrUnsupportedFormat))

	unsup := Errorf(ErrUnsupportedFormat, "ovf", "m.ovf", "valuedim %d", 1)
	assert.True(t, errors.Is(unsup, ErrParseFailure))
	assert.Equal(t, "valuedim 1", unsup.Message())

	missing := NewError(ErrFileNotFound, "ovf", "m.ovf", "no such file")
	assert.True(t, errors.Is(missing, fs.ErrNotExist))
	assert.False(t, errors.Is(missing, ErrParseFailure))

	invalid := NewError(ErrInvalidFormat, "ovf", "m.ovf", "not an OVF file")
	assert.False(t, errors.Is(invalid, ErrParseFailure))
}

func TestErrorMessage(t *testing.T) {
	err := NewError(ErrCorruptedFile, "ovf", "/data/m.ovf", "bad check value")
	assert.Equal(t, "ovf file /data/m.ovf: corrupted file: bad check value", err.Error())
	assert.Equal(t, "/data/m.ovf", err.FileName())
	assert.Equal(t, "ovf", err.Format())

	arg := NewError(ErrInvalidArgument, "", "", "weights sum to zero")
	assert.Equal(t, "invalid argument: weights sum to zero", arg.Error())
}

func TestWrap(t *testing.T) {
	_, cause := strconv.ParseFloat("1.x", 64)
	err := Wrap(ErrParseFailure, "table", "table.txt", cause)
	assert.True(t, errors.Is(err, ErrParseFailure))
	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "1.x", numErr.Num)
}

func TestDecorate(t *testing.T) {
	err := NewError(ErrParseFailure, "ovf", "m.ovf", "oops")
	assert.Equal(t, []string{"readData"}, err.Decorate("readData"))
	assert.Equal(t, []string{"readData"}, err.Decorate(""))
	var e error = err
	e = ErrDecorate(e, "ParseFile")
	var got *Error
	require.True(t, errors.As(e, &got))
	assert.Equal(t, []string{"readData", "ParseFile"}, got.Decorate(""))

	plain := errors.New("plain")
	assert.Equal(t, plain, ErrDecorate(plain, "ParseFile"))
}
