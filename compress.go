/*
 * compress.go, part of magio.
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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression suffixes recognized by Open.
const (
	SuffixGzip = ".gz"
	SuffixZstd = ".zst"
	SuffixZlib = ".zz"
)

// zstdCloser gives a *zstd.Decoder the io.ReadCloser signature.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// compressed closes the decompressor and then the file under it.
type compressed struct {
	io.ReadCloser
	f *os.File
}

func (c *compressed) Close() error {
	err := c.ReadCloser.Close()
	if err2 := c.f.Close(); err == nil {
		err = err2
	}
	return err
}

// Open opens the named file for reading. Files ending in .gz, .zst or .zz are
// decompressed on the fly (gzip, zstandard and zlib, respectively).
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(Extension(name)) {
	case SuffixGzip:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case SuffixZstd:
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdCloser{d}, nil
		}
	case SuffixZlib:
		AnyNewReader = zlib.NewReader
	default:
		return f, nil
	}
	r, err := AnyNewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &compressed{r, f}, nil
}

// TrimCompression removes a compression suffix recognized by Open
// from name, if there is one.
func TrimCompression(name string) string {
	ext := Extension(name)
	switch strings.ToLower(ext) {
	case SuffixGzip, SuffixZstd, SuffixZlib:
		return strings.TrimSuffix(name, ext)
	}
	return name
}
