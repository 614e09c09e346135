/*
 * units.go, part of goMSO.
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

//Package units handles the quantities used by the virtual-site machinery.
//Charges are kept canonically in elementary-charge units and lengths in nm,
//which are the units force-field files use. Conversion from and to SI goes
//through the gonum unit types.
package units

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

//The 2019 SI definition, exact.
const elementaryCharge = 1.602176634e-19 //C

//Charge is an electric charge in elementary-charge units.
type Charge float64

//NewCharge returns the charge of the given magnitude and unit symbol,
//normalized to elementary-charge units. An empty symbol means the magnitude
//is already in elementary charges.
func NewCharge(magnitude float64, symbol string) (Charge, error) {
	switch symbol {
	case "", "e":
		return Charge(magnitude), nil
	case "C":
		return Charge(magnitude / elementaryCharge), nil
	}
	return 0, Error{fmt.Sprintf("Unknown charge unit: %s", symbol), []string{"NewCharge"}}
}

//ParseCharge reads a charge from a "magnitude unit" string, such as
//"-1.04 e" or "1.2e-19 C". A bare number is taken to be in elementary
//charges already.
func ParseCharge(s string) (Charge, error) {
	f := strings.Fields(strings.TrimSpace(s))
	if len(f) == 0 || len(f) > 2 {
		return 0, Error{fmt.Sprintf("Ill-formatted charge: %q", s), []string{"ParseCharge"}}
	}
	m, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, Error{fmt.Sprintf("Ill-formatted charge magnitude: %q", s), []string{"ParseCharge"}}
	}
	symbol := ""
	if len(f) == 2 {
		symbol = f[1]
	}
	q, err := NewCharge(m, symbol)
	if err != nil {
		return 0, errDecorate(err, "ParseCharge")
	}
	return q, nil
}

//E returns the magnitude of the charge, in elementary charges.
func (q Charge) E() float64 { return float64(q) }

//SI returns the charge as a gonum SI quantity (Coulombs).
func (q Charge) SI() unit.Charge {
	return unit.Charge(float64(q) * elementaryCharge)
}

func (q Charge) String() string {
	return fmt.Sprintf("%g e", float64(q))
}

//Length is a length in nm.
type Length float64

//NewLength returns the length of the given magnitude and unit symbol,
//normalized to nm. An empty symbol means nm.
func NewLength(magnitude float64, symbol string) (Length, error) {
	switch symbol {
	case "", "nm":
		return Length(magnitude), nil
	case "A", "Å", "angstrom":
		return Length(magnitude * 0.1), nil
	case "pm":
		return Length(magnitude * 1e-3), nil
	case "m":
		return Length(magnitude * 1e9), nil
	}
	return 0, Error{fmt.Sprintf("Unknown length unit: %s", symbol), []string{"NewLength"}}
}

//Nm returns the magnitude of the length, in nm.
func (l Length) Nm() float64 { return float64(l) }

//SI returns the length as a gonum SI quantity (meters).
func (l Length) SI() unit.Length {
	return unit.Length(float64(l) * 1e-9)
}

func (l Length) String() string {
	return fmt.Sprintf("%g nm", float64(l))
}

//Error is the error type for the units package, compatible with the
//Decorate-style error handling used in the rest of the library.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the error,
//and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2 := err.(errorInt)
	err2.Decorate(caller)
	return err2
}
