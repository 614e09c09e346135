/*
 * virtual.go, part of goMSO.
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
	"fmt"
	"strconv"
	"strings"

	gmso "github.com/askforarun/gmso"
	"github.com/askforarun/gmso/expr"
)

/*Building resolvable virtual sites from the parsed vsitesn entries.
 * Every entry is a weighted combination of its constructing atoms, so the
 * position expression is always of the form w1*r_i + w2*r_j + ... The
 * weights depend on the Gromacs function type: equal (center of geometry),
 * mass-proportional (center of mass) or explicit.*/

// VirtualSites turns the vsitesn entries read so far into goMSO virtual
// sites, with their parent sites taken from the FF's molecule by atom ID.
// Entries whose weighted combination is the same share a single
// VirtualType. If the constructed site's ID matches an atom of the
// molecule, that atom lends the site its name and its charge (as an
// override, in elementary-charge units).
func (F *FF) VirtualSites() ([]*gmso.VirtualSite, error) {
	if F.Mol == nil {
		return nil, fmt.Errorf("No molecule loaded on the FF object")
	}
	var err error
	shared := make(map[string]*gmso.VirtualType)
	ret := make([]*gmso.VirtualSite, 0, len(F.VSites))
	for _, vs := range F.VSites {
		if len(vs.Atoms) == 0 {
			return nil, fmt.Errorf("Virtual site %d has no constructing atoms", vs.ID)
		}
		var ws []float64
		switch vs.FuncType {
		case 1: //center of geometry
			ws = make([]float64, len(vs.Atoms))
			for i := range ws {
				ws[i] = 1.0 / float64(len(vs.Atoms))
			}
		case 2: //center of mass
			ws, err = F.comWeights(vs)
			if err != nil {
				return nil, err
			}
		case 3: //explicit weights
			if len(vs.Factors) != len(vs.Atoms) {
				return nil, fmt.Errorf("Virtual site %d has %d weights for %d atoms", vs.ID, len(vs.Factors), len(vs.Atoms))
			}
			ws = vs.Factors
		default:
			return nil, fmt.Errorf("Unsupported virtual_sitesn function type %d in site %d", vs.FuncType, vs.ID)
		}
		source, err := weightExpr(ws)
		if err != nil {
			return nil, fmt.Errorf("Can't build expression for virtual site %d: %w", vs.ID, err)
		}
		vt, ok := shared[source]
		if !ok {
			p, err := expr.NewPosition(source)
			if err != nil {
				return nil, fmt.Errorf("Can't compile expression for virtual site %d: %w", vs.ID, err)
			}
			vt = gmso.NewVirtualType(p, nil)
			shared[source] = vt
		}
		parents := make([]gmso.Site, len(vs.Atoms))
		for i, id := range vs.Atoms {
			at := F.Mol.AtomByID(id)
			if at == nil {
				return nil, fmt.Errorf("Virtual site %d constructed from unknown atom ID %d", vs.ID, id)
			}
			parents[i] = at
		}
		name := sf("v%d", vs.ID)
		site := gmso.NewVirtualSite(name, vt, parents...)
		if self := F.Mol.AtomByID(vs.ID); self != nil {
			site.Name = self.Name
			site.SetChargeValue(self.Charge)
		}
		ret = append(ret, site)
	}
	return ret, nil
}

// comWeights returns the mass fractions of the constructing atoms of the
// given entry. Only those atoms need masses; the rest of the molecule may
// well contain massless virtual-site placeholders.
func (F *FF) comWeights(vs *VSite) ([]float64, error) {
	ws := make([]float64, len(vs.Atoms))
	total := 0.0
	for i, id := range vs.Atoms {
		at := F.Mol.AtomByID(id)
		if at == nil {
			return nil, fmt.Errorf("Virtual site %d constructed from unknown atom ID %d", vs.ID, id)
		}
		m, err := gmso.MassOf(at)
		if err != nil {
			return nil, fmt.Errorf("Can't build COM virtual site %d: %w", vs.ID, err)
		}
		ws[i] = m
		total += m
	}
	if total <= 0 {
		return nil, fmt.Errorf("Virtual site %d has non-positive total mass", vs.ID)
	}
	for i := range ws {
		ws[i] /= total
	}
	return ws, nil
}

// weightExpr writes the weighted combination of the first len(ws) position
// variables: "0.25*r_i + 0.75*r_j".
func weightExpr(ws []float64) (string, error) {
	terms := make([]string, 0, len(ws))
	for i, w := range ws {
		v, err := expr.VarName(i)
		if err != nil {
			return "", err
		}
		terms = append(terms, floatLit(w)+"*"+v)
	}
	return strings.Join(terms, " + "), nil
}

// floatLit formats w so that it always reads back as a float literal;
// the expression language does not promote ints.
func floatLit(w float64) string {
	s := strconv.FormatFloat(w, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
