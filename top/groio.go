/*
 * groio.go, part of goMSO.
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	gmso "github.com/askforarun/gmso"
)

type cond struct {
	reading bool
}

func newCond() *cond {
	c := new(cond)
	c.reading = true
	return c
}

// a function to read conditional parts of gromacs topologies
// depending on the defined flags that should be in 'defines'
func (c *cond) read(line string, defines []string) bool {
	if strings.HasPrefix(line, "#ifdef") {
		if slices.Contains(defines, fi(line)[1]) {
			c.reading = true
			return false
		} else {
			c.reading = false
			return false
		}
	}
	if strings.HasPrefix(line, "#else") {
		c.reading = !c.reading
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		c.reading = true
		return false
	}
	return c.reading
}

// VSite is one virtual_sitesn entry: the ID of the constructed site, the
// Gromacs function type (1 COG, 2 COM, 3 explicit weights) and the IDs of
// the constructing atoms, with their weights for funct 3.
type VSite struct {
	ID       int
	FuncType int
	Atoms    []int
	Factors  []float64
}

// FF gathers the virtual-site related contents of a Gromacs topology: the
// molecule whose [ atoms ] section gets filled in, the virtual_sitesn
// entries and the exclusions.
type FF struct {
	currentHeader string
	Mol           *gmso.Topology
	VSites        []*VSite
	Exclusions    [][]int
}

func NewFF(mol *gmso.Topology) *FF {
	ret := new(FF)
	ret.Mol = mol
	return ret
}

//The high-level functions

// Fill will fill the receiver with data from the given StringReader, which
// must be in Gromacs itp/top format. If followIncludes values are given, the
// first one determines whether #include statements trigger opening and
// reading the included file(s). Any defines given behave as if set with
// -D for the #ifdef conditionals in the file.
// NOTE: Only the headers relevant to virtual sites are read (atoms,
// virtual_sitesn, exclusions); everything else is skipped. Of the
// virtual-site headers, only the generic virtual_sitesn is supported.
func (F *FF) Fill(r StringReader, followIncludes bool, defines ...string) error {
	follow := followIncludes
	var err error
	var s string
	read := newCond()
	h := NewTopHeader()
	if F.Mol == nil {
		return fmt.Errorf("Can't read topology if no molecule is loaded on the FF object")
	}
	for s, err = r.ReadString('\n'); err == nil; s, err = r.ReadString('\n') {
		s = cleanString(s)
		if s == "" {
			continue
		}
		if !read.read(s, defines) {
			continue
		}
		//This should allow us to 'follow' include files. Probably a risky thing to use.
		if strings.Contains(s, "#include") && follow {
			f := fi(s)
			fname := strings.Trim(f[len(f)-1], "\"'")
			file, err := os.Open(fname)
			if err != nil {
				return fmt.Errorf("Failed to include file: %s. Error: %w", fname, err)
			}
			defer file.Close()
			reader := bufio.NewReader(file)
			err = F.Fill(reader, follow, defines...)
			if err != nil {
				return fmt.Errorf("Failed to include file: %s. Error: %w", fname, err)
			}
			continue
		}
		if h.Is(s) {
			F.currentHeader = h.Which(s)
			continue
		}
		var vs *VSite

		switch F.currentHeader {

		case "atoms":
			err = F.AtomDataFromGro(s)
		case "vsitesn":
			vs, err = VSitesNFromGro(s)
			if err == nil {
				F.VSites = append(F.VSites, vs)
			}
		case "exclusions":
			err = F.ExclusionsFromGro(s)
		default:
			continue

		}

		if err != nil {
			return fmt.Errorf("Couldn't read header %s. Line: %s. Error: %w", F.currentHeader, s, err)
		}
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return err
}

// AllToGro writes the contents of the receiver to the given writer, in
// Gromacs top format.
func (F *FF) AllToGro(r io.StringWriter) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s", rec)
		}
	}()

	_, err = r.WriteString("[ atoms ]\n")
	qerr(err)
	for i := 0; i < F.Mol.Len(); i++ {
		_, err = r.WriteString(F.Atom2Gro(i))
		qerr(err)
	}
	if len(F.Exclusions) > 0 {
		_, err = r.WriteString("\n[ exclusions ]\n")
		qerr(err)
		err = printExcluGro(r, F.Exclusions)
		qerr(err)
	}
	if len(F.VSites) > 0 {
		_, err = r.WriteString("\n[ virtual_sitesn ]\n")
		qerr(err)
		err = printGro(r, F.VSites)
		qerr(err)
	}
	return nil
}

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

func printExcluGro(r io.StringWriter, g [][]int) error {
	for _, v := range g {
		v1 := exclusion(v)
		m, e := v1.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t ")

}

func (F *FF) ExclusionsFromGro(s string) error {
	ex, err := parseints(fi(s)...)
	if err != nil {
		return err
	}
	F.Exclusions = append(F.Exclusions, ex)
	return nil

}

type exclusion []int

func (e exclusion) ToGro() (string, error) {
	ret := make([]string, 0, len(e)+1)
	for _, v := range e {
		ret = append(ret, sf("%4d", v))
	}
	ret = append(ret, "\n")
	return strings.Join(ret, " "), nil

}

// Adds the data in the gromacs-topology atom-section string to the atom
// with the matching ID in the molecule in F.
func (F *FF) AtomDataFromGro(s string) (err error) {
	s = cleanString(s)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	l := fi(s)
	ID, err := strconv.Atoi(l[0])
	qerr(err)
	at := F.Mol.AtomByID(ID)
	if at == nil {
		err = fmt.Errorf("Couldn't find atom with ID %d", ID)
		return
	}
	at.Symbol = l[1]
	at.MolID, err = strconv.Atoi(l[2])
	qerr(err)
	at.MolName = l[3]
	at.Name = l[4]
	at.Charge, err = strconv.ParseFloat(l[6], 64)
	qerr(err)
	if len(l) > 7 {
		at.Mass, err = strconv.ParseFloat(l[7], 64)
		qerr(err)
	}
	return nil
}

// Writes the ith (0-based) atom in the FF molecule to a Gromacs topology line
func (F *FF) Atom2Gro(i int) string {
	A := F.Mol.Atom(i)
	return fmt.Sprintf("    %5d  %4s %5d  %4s  %4s %5d  %6.4f \n", A.ID, A.Symbol, A.MolID, A.MolName, A.Name, A.ID, A.Charge)
}

// Returns a *VSite with the information in the string s containing a
// virtual_sitesn line.
func VSitesNFromGro(s string) (vsit *VSite, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	vsit = new(VSite)
	f := fi(cleanString(s))
	id, err := strconv.Atoi(f[0])
	qerr(err)
	typ, err := strconv.Atoi(f[1])
	qerr(err)
	if id < 0 || typ < 0 {
		return nil, fmt.Errorf("ill-formatted vsiten string: %s", s)
	}
	vsit.ID = id
	vsit.FuncType = typ
	var ids []int
	if typ != 3 {
		ids, err = parseints(f[2:]...)
		if err != nil {
			return nil, fmt.Errorf("ill-formatted vsiten string: %s Error: %w", s, err)
		}
	} else {
		//each couple is an atom and a weight
		terms := len(f[2:])
		if terms%2 != 0 {
			return nil, fmt.Errorf("ill-formatted vsiten string for site with weights: %s", s)
		}
		ws := make([]float64, 0, terms/2)
		ids = make([]int, 0, terms/2)
		for i := 0; i < terms; i += 2 {
			num, err := strconv.Atoi(f[2+i])
			if err != nil {
				return nil, fmt.Errorf("ill-formatted vsiten string: %s Error: %w", s, err)
			}
			weight, err := strconv.ParseFloat(f[3+i], 64)
			if err != nil {
				return nil, fmt.Errorf("ill-formatted vsiten string: %s Error: %w", s, err)
			}
			ids = append(ids, num)
			ws = append(ws, weight)
		}
		vsit.Factors = ws
	}
	vsit.Atoms = ids
	return vsit, err
}

// Returns a Gromacstop-formatted virtual_sitesn string with the information
// in the receiver.
func (V *VSite) ToGro() (string, error) {
	ret := make([]string, 0, 8)
	ret = append(ret, sf("%5d", V.ID))
	ret = append(ret, sf("%2d", V.FuncType))
	if V.FuncType == 3 && len(V.Factors) != len(V.Atoms) {
		return "", fmt.Errorf("virtual_sitesn with weights detected, but weights don't match atoms")
	}
	for i, v := range V.Atoms {
		if V.FuncType == 3 {
			ret = append(ret, sf("%5d %5.3f", v, V.Factors[i]))
		} else {
			ret = append(ret, sf("%5d", v))
		}
	}
	ret = append(ret, "\n")
	return strings.Join(ret, " "), nil

}
