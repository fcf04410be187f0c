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
Package ovf reads the OOMMF Vector Field format (OVF), as written by OOMMF
and MuMax3, into the standard magio form.

# Supported variants

OVF 1.0 ("# OOMMF: rectangular mesh v1.0" or "# OOMMF: irregular mesh v1.0")
and OVF 2.0 ("# OOMMF OVF 2.0"), with a single segment and three-component
values. The data block can be "Text", "Binary 4" or "Binary 8". Binary blocks
start with a check value (1234567.0 for 4-byte, 123456789012345.0 for 8-byte
floats) and are little-endian in OVF 2.0 and big-endian in OVF 1.0.

For rectangular meshes the position of each cell center is
base + i*stepsize along each axis, with x changing fastest, then y, then z.
Irregular meshes store, for each point, x y z followed by the 3 value
components.

Files ending in .gz, .zst or .zz are decompressed on the fly.
*/
package ovf
