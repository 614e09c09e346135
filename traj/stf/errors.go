/*
 * errors.go, part of goMSO.
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

package stf

// Error is the trajectory error of the package. Critical distinguishes real
// failures from the normal last-frame termination.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

// Decorate adds the dec string to the decoration slice of strings of the
// error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file to which the failing trajectory
// was associated.
func (err Error) Format() string { return "stf" }

// Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

// trajError aliases Error so it can be embedded in lastFrameError without
// the field name shadowing the promoted Error method.
type trajError = Error

// lastFrameError signals that the trajectory ended normally. It can be
// filtered out in a type switch looking for the LastFrameError interface.
type lastFrameError struct {
	trajError
}

// NormalLastFrameTermination does nothing; it only separates this type
// from other trajectory errors.
func (err lastFrameError) NormalLastFrameTermination() {}

func newLastFrameError(filename, caller string) error {
	return lastFrameError{trajError{"No more frames", filename, []string{caller}, false}}
}

// LastFrameError distinguishes the harmless end-of-trajectory condition.
type LastFrameError interface {
	NormalLastFrameTermination()
	FileName() string
	Format() string
	Critical() bool
}
