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
Package gmso models virtual sites in a molecular topology: massless,
non-physical particles (lone pairs, off-atom charge sites, dummy interaction
centers) whose position and charge are derived from one or more real "parent"
sites instead of being stored directly.



	**goMSO Capabilities**


    Real sites (atoms) and a minimal topology holding them, with live
	coordinate views: moving the topology coordinates moves the sites.

    Shared, immutable VirtualType descriptors carrying a symbolic position
	expression, an optional non-bonded potential (stored, not evaluated)
	and an optional default charge.

    VirtualSite objects with an ordered list of parent sites, an optional
	charge override, and on-demand, cache-free resolution of position and
	charge. Position resolution binds the expression variables r_i, r_j,
	r_k, ... to the parent positions in order and evaluates numerically.

    Charges resolve with override precedence: the site's own charge wins
	over the type's default; with neither, the charge is undefined rather
	than zero.

    Reading and writing the virtual-site related sections of Gromacs
	itp/top files ([ atoms ], [ virtual_sitesn ], [ exclusions ]), and
	building resolvable VirtualSites from them (package top).

    YAML libraries of named virtual types (package typelib).

    Compressed plain-text coordinate frames for replaying parent motion
	(package traj/stf).

Position and charge resolution are pure and synchronous. Resolving the same
site repeatedly from several goroutines is safe as long as the topology is
not being mutated at the same time; the package performs no locking and
leaves that synchronization to the caller.
*/
package gmso
