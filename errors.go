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

package gmso

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //The decorate slice should contain a list of functions in the calling stack, plus, for each function, any relevant information, or nothing.
}

// CError is the general-purpose error of the library.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of strings of the
// error, and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

// MissingPotentialError signals that position resolution was attempted on a
// virtual site lacking the declarative specification it needs: either no
// VirtualType is assigned, or the assigned type has no position expression.
type MissingPotentialError struct {
	msg  string
	deco []string
}

func (err MissingPotentialError) Error() string { return err.msg }

func (err MissingPotentialError) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

// ParentSiteMismatchError signals that the number of parent sites assigned to
// a virtual site does not match the number of independent variables of its
// type's position expression. The parent list is never padded or truncated
// to compensate.
type ParentSiteMismatchError struct {
	Required   int
	Got        int
	Expression string
	deco       []string
}

func (err ParentSiteMismatchError) Error() string {
	return fmt.Sprintf("Virtual site has %d parent sites, but the expression %q requires %d", err.Got, err.Expression, err.Required)
}

func (err ParentSiteMismatchError) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

// errDecorate asserts that the error implements the library's Error interface
// and decorates it with the caller's name before returning it. Using it with
// any other error will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
