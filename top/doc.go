/*
 * doc.go, part of goMSO.
 *
 * Copyright 2026 The goMSO developers
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
Top is a package for reading/editing/writing the virtual-site related
sections of force-field topologies. Only Gromacs itp/top files can be read
and written with the current version, and only the generic virtual_sitesn
header is supported; the fixed-geometry virtual_sitesX headers, with X
between 1 and 4, are not.

Besides round-tripping the text format, the package turns what it reads
into resolvable goMSO virtual sites: every virtual_sitesn entry becomes a
VirtualSite whose VirtualType carries the weighted-combination position
expression the entry declares (center of geometry for funct 1, center of
mass for funct 2, explicit weights for funct 3).
*/
package top
