/*
 * virtualtype.go, part of goMSO.
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
	"github.com/askforarun/gmso/expr"
	"github.com/askforarun/gmso/units"
)

// Potential describes the non-bonded interaction of a virtual site: an
// expression and its named parameters. It is carried for downstream use
// and never evaluated by this library.
type Potential struct {
	expression string
	params     map[string]float64
}

// NewPotential returns a potential with the given expression source and
// parameters. The parameter map is copied.
func NewPotential(expression string, params map[string]float64) *Potential {
	p := make(map[string]float64, len(params))
	for k, v := range params {
		p[k] = v
	}
	return &Potential{expression: expression, params: p}
}

// Expression returns the source of the potential expression.
func (P *Potential) Expression() string {
	return P.expression
}

// Params returns a copy of the potential parameters.
func (P *Potential) Params() map[string]float64 {
	r := make(map[string]float64, len(P.params))
	for k, v := range P.params {
		r[k] = v
	}
	return r
}

// VirtualType describes how the virtual sites referencing it compute their
// position and interact non-bondedly. A VirtualType is immutable and meant
// to be shared: many virtual sites may reference the same one, and no site
// owns it. The With* methods return modified copies, so "changing" a shared
// type never retroactively changes sites still pointing to the old value.
type VirtualType struct {
	position  *expr.Position
	potential *Potential
	charge    *units.Charge
}

// NewVirtualType returns a type with the given position expression and
// potential, either of which may be nil, and no default charge.
func NewVirtualType(position *expr.Position, potential *Potential) *VirtualType {
	return &VirtualType{position: position, potential: potential}
}

// Position returns the position expression of the type, or nil if it has
// none. If non-nil, the expression's variable count is the number of parent
// sites any virtual site of this type requires.
func (V *VirtualType) Position() *expr.Position {
	return V.position
}

// Potential returns the stored non-bonded potential of the type, or nil.
func (V *VirtualType) Potential() *Potential {
	return V.potential
}

// Charge returns the default charge of the type and whether one is set.
func (V *VirtualType) Charge() (units.Charge, bool) {
	if V.charge == nil {
		return 0, false
	}
	return *V.charge, true
}

// WithCharge returns a copy of the type with the given default charge.
func (V *VirtualType) WithCharge(q units.Charge) *VirtualType {
	n := *V
	n.charge = &q
	return &n
}

// WithPosition returns a copy of the type with the given position expression.
func (V *VirtualType) WithPosition(p *expr.Position) *VirtualType {
	n := *V
	n.position = p
	return &n
}

// WithPotential returns a copy of the type with the given potential.
func (V *VirtualType) WithPotential(p *Potential) *VirtualType {
	n := *V
	n.potential = p
	return &n
}
