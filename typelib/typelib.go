/*
 * typelib.go, part of goMSO.
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
Package typelib reads and writes YAML libraries of named virtual-site types,
so a set of VirtualTypes can be kept in a file and assigned to sites by name.
A library file looks like:

	virtual_types:
	  - name: tip4p-mw
	    position: "0.128012065*r_i + 0.435993967*r_j + 0.435993967*r_k"
	    charge: -1.04
	  - name: dummy-lp
	    position: "0.5*r_i + 0.5*r_j"
	    potential:
	      expression: "4.0*epsilon*((sigma/r)^12 - (sigma/r)^6)"
	      parameters:
	        sigma: 0.316
	        epsilon: 0.65

Charges are in elementary-charge units. The potential is carried along
verbatim; only the position expression is compiled.
*/
package typelib

import (
	"fmt"
	"io"
	"os"

	gmso "github.com/askforarun/gmso"
	"github.com/askforarun/gmso/expr"
	"github.com/askforarun/gmso/units"
	"github.com/goccy/go-yaml"
)

type potentialEntry struct {
	Expression string             `yaml:"expression"`
	Parameters map[string]float64 `yaml:"parameters,omitempty"`
}

type typeEntry struct {
	Name      string          `yaml:"name"`
	Position  string          `yaml:"position,omitempty"`
	Charge    *float64        `yaml:"charge,omitempty"` //elementary charge
	Potential *potentialEntry `yaml:"potential,omitempty"`
}

type libFile struct {
	VirtualTypes []typeEntry `yaml:"virtual_types"`
}

// Library is a named collection of shared VirtualTypes.
type Library struct {
	types   map[string]*gmso.VirtualType
	entries map[string]typeEntry
	order   []string
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		types:   make(map[string]*gmso.VirtualType),
		entries: make(map[string]typeEntry),
	}
}

// Read builds a library from YAML data in the given reader. Unknown fields
// in the data are an error, not ignored.
func Read(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Couldn't read type library: %w", err)
	}
	var f libFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("Couldn't parse type library: %w", err)
	}
	L := NewLibrary()
	for _, e := range f.VirtualTypes {
		if e.Name == "" {
			return nil, fmt.Errorf("Type library contains an entry with no name")
		}
		vt, err := buildType(e)
		if err != nil {
			return nil, fmt.Errorf("Couldn't build virtual type %q: %w", e.Name, err)
		}
		if err := L.add(e.Name, vt, e); err != nil {
			return nil, err
		}
	}
	return L, nil
}

// Open builds a library from the YAML file with the given name.
func Open(name string) (*Library, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open type library %s: %w", name, err)
	}
	defer f.Close()
	L, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("In type library %s: %w", name, err)
	}
	return L, nil
}

func buildType(e typeEntry) (*gmso.VirtualType, error) {
	var p *expr.Position
	var err error
	if e.Position != "" {
		p, err = expr.NewPosition(e.Position)
		if err != nil {
			return nil, err
		}
	}
	var pot *gmso.Potential
	if e.Potential != nil {
		pot = gmso.NewPotential(e.Potential.Expression, e.Potential.Parameters)
	}
	vt := gmso.NewVirtualType(p, pot)
	if e.Charge != nil {
		vt = vt.WithCharge(units.Charge(*e.Charge))
	}
	return vt, nil
}

func (L *Library) add(name string, vt *gmso.VirtualType, e typeEntry) error {
	if _, ok := L.types[name]; ok {
		return fmt.Errorf("Duplicated virtual type %q", name)
	}
	L.types[name] = vt
	L.entries[name] = e
	L.order = append(L.order, name)
	return nil
}

// Add puts a new named type in the library. The position expression source
// and charge are recovered from the type for later serialization.
func (L *Library) Add(name string, vt *gmso.VirtualType) error {
	if name == "" {
		return fmt.Errorf("Can't add a virtual type with no name")
	}
	e := typeEntry{Name: name}
	if p := vt.Position(); p != nil {
		e.Position = p.String()
	}
	if q, ok := vt.Charge(); ok {
		f := q.E()
		e.Charge = &f
	}
	if pot := vt.Potential(); pot != nil {
		e.Potential = &potentialEntry{Expression: pot.Expression(), Parameters: pot.Params()}
	}
	return L.add(name, vt, e)
}

// Get returns the type with the given name, and whether it exists.
func (L *Library) Get(name string) (*gmso.VirtualType, bool) {
	vt, ok := L.types[name]
	return vt, ok
}

// Names returns the type names, in the order they were added or read.
func (L *Library) Names() []string {
	r := make([]string, len(L.order))
	copy(r, L.order)
	return r
}

// Len returns the number of types in the library.
func (L *Library) Len() int {
	return len(L.order)
}

// Write serializes the library as YAML to the given writer.
func (L *Library) Write(w io.Writer) error {
	var f libFile
	for _, name := range L.order {
		f.VirtualTypes = append(f.VirtualTypes, L.entries[name])
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("Couldn't serialize type library: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("Couldn't write type library: %w", err)
	}
	return nil
}
