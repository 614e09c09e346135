/*
 * virtualsite.go, part of goMSO.
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
	"strings"

	"github.com/askforarun/gmso/expr"
	"github.com/askforarun/gmso/units"
	v3 "github.com/askforarun/gmso/v3"
)

// VirtualSite is a massless particle whose position and charge are derived
// from its parent sites through its VirtualType. It holds back-references to
// the parents; their lifetime belongs to the topology. The order of the
// parents is fixed and meaningful: parent 0 binds to r_i in the type's
// position expression, parent 1 to r_j, and so on.
//
// A VirtualSite is massless by construction and exposes no mass at all.
// It also does not implement Site: its position can fail to resolve, so the
// signature differs.
type VirtualSite struct {
	Name    string
	parents []Site
	charge  *units.Charge
	vtype   *VirtualType
}

// NewVirtualSite returns a virtual site with the given name, type and
// parent sites, in binding order. Both the type and the parents may be
// omitted and set later; the parent count is checked against the type at
// resolution time, not here, so sites can be built incrementally.
func NewVirtualSite(name string, vt *VirtualType, parents ...Site) *VirtualSite {
	V := new(VirtualSite)
	V.Name = name
	V.vtype = vt
	V.SetParentSites(parents...)
	return V
}

// ParentSites returns the parent sites, in binding order. The returned
// slice is a copy: the site's own list only changes through SetParentSites.
func (V *VirtualSite) ParentSites() []Site {
	r := make([]Site, len(V.parents))
	copy(r, V.parents)
	return r
}

// SetParentSites replaces the whole ordered parent list atomically. There
// is deliberately no way to append to or remove from the list in place, as
// that would let the index-to-variable binding shift silently.
func (V *VirtualSite) SetParentSites(parents ...Site) {
	n := make([]Site, len(parents))
	copy(n, parents)
	V.parents = n
}

// VirtualType returns the shared type of the site, or nil if the site is
// not parametrized.
func (V *VirtualSite) VirtualType() *VirtualType {
	return V.vtype
}

// SetVirtualType points the site at the given shared type.
func (V *VirtualSite) SetVirtualType(vt *VirtualType) {
	V.vtype = vt
}

// SetCharge sets an explicit charge override on the site.
func (V *VirtualSite) SetCharge(q units.Charge) {
	V.charge = &q
}

// SetChargeValue sets an explicit charge override from a bare number,
// which is interpreted as already being in elementary-charge units.
func (V *VirtualSite) SetChargeValue(f float64) {
	q := units.Charge(f)
	V.charge = &q
}

// ClearCharge removes the site's charge override, letting the type default
// take over, if there is one.
func (V *VirtualSite) ClearCharge() {
	V.charge = nil
}

// Charge resolves the effective charge of the site: the site's own override
// if set, else the type's default charge. The second return value is false
// when neither exists; an undefined charge is not zero charge, and callers
// must not assume a default.
func (V *VirtualSite) Charge() (units.Charge, bool) {
	if V.charge != nil {
		return *V.charge, true
	}
	if V.vtype != nil {
		return V.vtype.Charge()
	}
	return 0, false
}

// Position resolves the current position of the virtual site, in nm, from
// the type's position expression and the current positions of the parent
// sites. The result is computed on every call, never cached: after the
// parents move, the next call reflects the new positions. The call is pure;
// it modifies neither the site, nor its type, nor the parents.
//
// It fails with a MissingPotentialError if the site has no type or the type
// has no position expression, and with a ParentSiteMismatchError if the
// number of parents does not match the expression's variables.
func (V *VirtualSite) Position() (*v3.Matrix, error) {
	if V.vtype == nil {
		return nil, MissingPotentialError{"No VirtualType associated with this VirtualSite", nil}
	}
	pos := V.vtype.Position()
	if pos == nil {
		return nil, MissingPotentialError{"No position expression associated with this VirtualType", nil}
	}
	if pos.NVars() != len(V.parents) {
		return nil, ParentSiteMismatchError{Required: pos.NVars(), Got: len(V.parents), Expression: pos.String()}
	}
	bindings := make(map[string]*v3.Matrix, len(V.parents))
	for i, p := range V.parents {
		if p == nil {
			return nil, CError{fmt.Sprintf("Parent site %d of virtual site %s is nil", i, V.Name), []string{"Position"}}
		}
		r := p.Position()
		if r == nil {
			return nil, CError{fmt.Sprintf("Parent site %d (%v) of virtual site %s has no coordinates", i, p, V.Name), []string{"Position"}}
		}
		name, err := expr.VarName(i)
		if err != nil {
			return nil, errDecorate(err, "Position")
		}
		bindings[name] = r
	}
	vec, err := pos.Eval(bindings)
	if err != nil {
		return nil, errDecorate(err, "Position")
	}
	return vec, nil
}

// String returns the name of the site followed by the representations of
// its parent sites, hyphen-joined in binding order.
func (V *VirtualSite) String() string {
	if len(V.parents) == 0 {
		return V.Name
	}
	reprs := make([]string, len(V.parents))
	for i, p := range V.parents {
		reprs[i] = fmt.Sprintf("%v", p)
	}
	return V.Name + ": " + strings.Join(reprs, "-")
}
