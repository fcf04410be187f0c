/*
 * interfaces.go, part of magio.
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

// Parser is implemented by every format reader. Concrete parsers usually
// embed a *Base, which supplies everything except ParseFile.
type Parser interface {

	//ParseFile decodes the file and returns its content in the standard
	//form. The error, if not nil, is an *Error of kind ErrFileNotFound,
	//ErrInvalidFormat, ErrCorruptedFile, ErrUnsupportedFormat or ErrParseFailure.
	ParseFile(name string) (*Result, error)

	//ValidateFile reports whether the file looks like something the parser
	//can read. It never fails.
	ValidateFile(name string) bool

	//FileInfo describes the file without parsing it.
	FileInfo(name string) FileInfo

	//Extensions returns the file suffixes accepted by the parser.
	//An empty slice means any suffix.
	Extensions() []string
}

// FileError is implemented by the errors returned by ParseFile.
type FileError interface {
	Error() string
	Decorate(string) []string
	FileName() string
	Format() string
}

var _ FileError = (*Error)(nil)
