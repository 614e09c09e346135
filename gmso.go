/*
 * gmso.go, part of goMSO.
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

import (
	"fmt"

	v3 "github.com/askforarun/gmso/v3"
)

// Site is what the virtual-site machinery needs from a real site: a live
// position, in nm, and a printable identity. The position may be nil if the
// site has no coordinates assigned yet.
type Site interface {
	Position() *v3.Matrix
	String() string
}

// A map for assigning mass to elements, used when a COM-weighted virtual
// site is built from atoms that don't carry explicit masses.
// Just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Zn": 65.38,
	"Fe": 55.84,
}

// Atom is a real site. Its coordinates live in the Topology that owns it;
// the atom only holds a view into them.
type Atom struct {
	Name    string
	ID      int
	MolName string
	MolID   int
	Chain   byte
	Symbol  string
	Charge  float64 //partial charge, in elementary-charge units
	Mass    float64
	pos     *v3.Matrix
}

// Position returns a view of the atom's current coordinates, in nm, or nil
// if the owning topology has no coordinates set.
func (A *Atom) Position() *v3.Matrix {
	return A.pos
}

func (A *Atom) String() string {
	return A.Name
}

// Copy returns a copy of the Atom object. The coordinate view is not
// copied: the new atom belongs to no topology.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	Newat.Name = A.Name
	Newat.ID = A.ID
	Newat.MolName = A.MolName
	Newat.MolID = A.MolID
	Newat.Chain = A.Chain
	Newat.Symbol = A.Symbol
	Newat.Charge = A.Charge
	Newat.Mass = A.Mass
	return Newat
}

/*****Topology type***/

// Topology contains the real sites of a system and owns their coordinates.
// Parent-site positions queried during virtual-site resolution are views
// into the topology coordinates, so updating those coordinates updates what
// every site, virtual or not, reports.
type Topology struct {
	atoms    []*Atom
	coords   *v3.Matrix
	charge   int
	unpaired int
}

// MakeTopology makes a topology with ats atoms, total charge charge and
// unpaired unpaired electrons, and returns it. It returns an error if the
// atom slice is nil.
func MakeTopology(ats []*Atom, charge, unpaired int) (*Topology, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil atom slice", []string{"MakeTopology"}}
	}
	top := new(Topology)
	top.atoms = ats
	top.charge = charge
	top.unpaired = unpaired
	return top, nil
}

/*Topology methods*/

// Atom returns the Atom corresponding to the index i of the atom slice in
// the Topology. It panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	return T.atoms[i]
}

// AtomByID returns the atom with the given ID, or nil if there is none.
func (T *Topology) AtomByID(id int) *Atom {
	for _, a := range T.atoms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Charge gets the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

// SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

// Unpaired gets the number of unpaired electrons in the topology.
func (T *Topology) Unpaired() int {
	return T.unpaired
}

// SetUnpaired sets the number of unpaired electrons in the topology to i.
func (T *Topology) SetUnpaired(i int) {
	T.unpaired = i
}

// SetCoords gives the topology its coordinates, one vector per atom, in nm.
// Each atom gets a view into the given matrix, so later changes to it are
// seen by the atoms, and through them, by any virtual site resolved against
// them.
func (T *Topology) SetCoords(c *v3.Matrix) error {
	if c == nil {
		return CError{"Supplied nil coordinates", []string{"SetCoords"}}
	}
	if c.NVecs() != T.Len() {
		return CError{fmt.Sprintf("Got %d coordinates for %d atoms", c.NVecs(), T.Len()), []string{"SetCoords"}}
	}
	T.coords = c
	for i, at := range T.atoms {
		at.pos = c.VecView(i)
	}
	return nil
}

// Coords returns the coordinate matrix of the topology, or nil if none has
// been set. The matrix is the live one: changes to it move the atoms.
func (T *Topology) Coords() *v3.Matrix {
	return T.coords
}

// MassOf returns the mass of the atom: the explicit one if set, else the
// one its element symbol implies. It returns an error if neither works.
func MassOf(at *Atom) (float64, error) {
	if at.Mass > 0 {
		return at.Mass, nil
	}
	m, ok := symbolMass[at.Symbol]
	if !ok {
		return 0, CError{fmt.Sprintf("Couldn't get the mass of atom %s (symbol %q)", at.Name, at.Symbol), []string{"MassOf"}}
	}
	return m, nil
}

// Masses returns a slice with the mass of each atom in the topology. Atoms
// without an explicit mass get one from their element symbol; if that also
// fails, an error is returned.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i, at := range T.atoms {
		m, err := MassOf(at)
		if err != nil {
			return nil, errDecorate(err, "Masses")
		}
		mass[i] = m
	}
	return mass, nil
}
