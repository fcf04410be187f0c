/*
 * compress_test.go, part of magio.
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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "# OOMMF OVF 2.0\n# Segment count: 1\n"

func compress(t *testing.T, suffix string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch suffix {
	case SuffixGzip:
		w = gzip.NewWriter(&buf)
	case SuffixZlib:
		w = zlib.NewWriter(&buf)
	case SuffixZstd:
		w, err = zstd.NewWriter(&buf)
		require.NoError(t, err)
	}
	_, err = w.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenCompressed(t *testing.T) {
	dir := t.TempDir()
	for _, suffix := range []string{SuffixGzip, SuffixZstd, SuffixZlib} {
		t.Run(suffix, func(t *testing.T) {
			p := writeFile(t, dir, "m000000.ovf"+suffix, compress(t, suffix))
			r, err := Open(p)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.NoError(t, r.Close())
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestOpenPlain(t *testing.T) {
	p := writeFile(t, t.TempDir(), "m000000.ovf", []byte(payload))
	r, err := Open(p)
	require.NoError(t, err)
	defer r.Close()
	_, ok := r.(*os.File)
	assert.True(t, ok)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.ovf.gz"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, dir, "bad.ovf.gz", []byte("not gzip at all"))
	_, err = Open(p)
	assert.Error(t, err)
}

func TestTrimCompression(t *testing.T) {
	assert.Equal(t, "m.ovf", TrimCompression("m.ovf.gz"))
	assert.Equal(t, "m.ovf", TrimCompression("m.ovf.ZST"))
	assert.Equal(t, "table.txt", TrimCompression("table.txt.zz"))
	assert.Equal(t, "m.ovf", TrimCompression("m.ovf"))
}
