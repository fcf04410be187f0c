/*
 * base.go, part of magio.
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
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// FileInfo describes a file at the time it was requested.
type FileInfo struct {
	Path      string
	Filename  string
	Extension string
	Exists    bool
	Readable  bool
	Size      int64 //bytes, 0 if the file does not exist
}

// Base implements the format-independent part of a Parser: file validation,
// introspection and logging. It is not modified after construction, so it
// can be shared among goroutines.
type Base struct {
	verbose    bool
	extensions []string
	logger     *slog.Logger
}

// NewBase returns a Base accepting files with the given extensions (all files,
// if none is given). Extensions include the leading dot. If logger is nil,
// a logger writing to stderr is created with NewLogger.
func NewBase(verbose bool, logger *slog.Logger, extensions ...string) *Base {
	if logger == nil {
		logger = NewLogger(os.Stderr, verbose)
	}
	return &Base{verbose: verbose, extensions: slices.Clone(extensions), logger: logger}
}

// NewLogger returns a text logger writing to w. Info messages are only
// enabled if verbose is true, otherwise the level is Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Verbose returns true if info messages are logged.
func (B *Base) Verbose() bool {
	return B.verbose
}

// Extensions returns a copy of the accepted extensions.
func (B *Base) Extensions() []string {
	return slices.Clone(B.extensions)
}

// Logger returns the logger used by B.
func (B *Base) Logger() *slog.Logger {
	return B.logger
}

// ValidateFile returns false if the file does not exist, if its extension is
// not accepted, or if it can't be opened and read. It never fails.
// For compressed files (see Open) the extension checked is the one before
// the compression suffix, so "m.ovf.gz" is accepted as ".ovf".
// Only one character (or byte) is read from the file.
func (B *Base) ValidateFile(name string) bool {
	if _, err := os.Stat(name); err != nil {
		B.LogError("file does not exist", "path", name)
		return false
	}
	ext := Extension(TrimCompression(name))
	if len(B.extensions) > 0 && !slices.Contains(B.extensions, ext) {
		B.LogWarn("file extension not in supported list", "path", name, "extension", ext, "supported", B.extensions)
		return false
	}
	if !readsText(name) && !readsBinary(name) {
		B.LogError("cannot read file", "path", name)
		return false
	}
	return true
}

// FileInfo returns a description of the file. For a file that does not exist,
// Size is 0 and Readable false. Otherwise Readable is the result of ValidateFile.
func (B *Base) FileInfo(name string) FileInfo {
	info := FileInfo{
		Path:      name,
		Filename:  filename(name),
		Extension: Extension(name),
	}
	st, err := os.Stat(name)
	if err != nil {
		return info
	}
	info.Exists = true
	info.Size = st.Size()
	info.Readable = B.ValidateFile(name)
	return info
}

// LogInfo logs msg at Info level, but only if B is verbose.
func (B *Base) LogInfo(msg string, args ...any) {
	if B.verbose && B.logger != nil {
		B.logger.Info(msg, args...)
	}
}

// LogWarn logs msg at Warn level.
func (B *Base) LogWarn(msg string, args ...any) {
	if B.logger != nil {
		B.logger.Warn(msg, args...)
	}
}

// LogError logs msg at Error level.
func (B *Base) LogError(msg string, args ...any) {
	if B.logger != nil {
		B.logger.Error(msg, args...)
	}
}

// Extension returns the last suffix of the file name, including the dot.
// Hidden files without another dot (".bashrc") and names ending in a dot
// have no extension.
func Extension(name string) string {
	base := filename(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

func filename(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}

// readsText tries to read one UTF-8 character from the file.
// An empty file is readable.
func readsText(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	r, size, err := bufio.NewReaderSize(f, utf8.UTFMax).ReadRune()
	if err == io.EOF {
		return true
	}
	if err != nil {
		return false
	}
	return r != utf8.RuneError || size != 1
}

// readsBinary tries to read one byte from the file.
func readsBinary(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	var b [1]byte
	_, err = f.Read(b[:])
	return err == nil || err == io.EOF
}
