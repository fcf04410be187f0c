/*
 * doc.go, part of magio.
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

/*
Package magio is the main package of the magio library. It defines what a
reader for micromagnetic simulation output (OOMMF, MuMax3 and similar) must
provide, and the functions every reader uses to put vector-field data in a
standard form.

	**magio Capabilities**

	The Parser interface, implemented by all readers. Format-specific readers
	live in their own packages (see ovf and table) and embed a *Base, which
	validates and describes files and logs through an injected slog.Logger.

	Standardization of raw arrays: StandardizeCoordinates and
	StandardizeMagnetization. The latter adds the magnitude, the unit vectors
	and the polar and azimuthal angles of each sample.

	Volume averages, weighted or not.

	Transparent reading of gzip, zstandard and zlib compressed files (Open).

	A small error taxonomy: ErrFileNotFound, ErrInvalidFormat, ErrParseFailure,
	and the more specific ErrCorruptedFile and ErrUnsupportedFormat.
	Use errors.Is to tell them apart.

Everything in this package is safe for concurrent use.
*/
package magio
