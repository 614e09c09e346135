package typelib

import (
	"fmt"
	"strings"
	"testing"

	gmso "github.com/askforarun/gmso"
	"github.com/askforarun/gmso/expr"
	"github.com/askforarun/gmso/units"
	v3 "github.com/askforarun/gmso/v3"
)

const lib = `
virtual_types:
  - name: midpoint
    position: "0.5*r_i + 0.5*r_j"
    charge: -1.04
  - name: lone-pair
    position: "0.75*r_i + 0.25*r_j"
    potential:
      expression: "4.0*epsilon*((sigma/r)^12 - (sigma/r)^6)"
      parameters:
        sigma: 0.316
        epsilon: 0.65
`

func TestRead(Te *testing.T) {
	L, err := Read(strings.NewReader(lib))
	if err != nil {
		Te.Fatal(err)
	}
	if L.Len() != 2 {
		Te.Fatalf("Expected 2 types, got %d", L.Len())
	}
	names := L.Names()
	if names[0] != "midpoint" || names[1] != "lone-pair" {
		Te.Errorf("Names out of order: %v", names)
	}
	mid, ok := L.Get("midpoint")
	if !ok {
		Te.Fatal("midpoint type missing")
	}
	q, ok := mid.Charge()
	if !ok || q.E() != -1.04 {
		Te.Errorf("midpoint charge should be -1.04 e: %v %v", q, ok)
	}
	lp, _ := L.Get("lone-pair")
	if _, ok := lp.Charge(); ok {
		Te.Error("lone-pair has no charge in the file, so none should be set")
	}
	pot := lp.Potential()
	if pot == nil || pot.Params()["sigma"] != 0.316 {
		Te.Errorf("lone-pair potential wasn't carried along: %+v", pot)
	}
	if _, ok := L.Get("nope"); ok {
		Te.Error("Get with an unknown name should report absence")
	}
}

func TestReadRejects(Te *testing.T) {
	bad := strings.Replace(lib, "position:", "possition:", 1)
	if _, err := Read(strings.NewReader(bad)); err == nil {
		Te.Error("Unknown fields should be rejected, not ignored")
	}
	noname := strings.Replace(lib, "name: midpoint", "name: \"\"", 1)
	if _, err := Read(strings.NewReader(noname)); err == nil {
		Te.Error("Entries without a name should be rejected")
	}
	badexpr := strings.Replace(lib, "0.5*r_i + 0.5*r_j", "0.5*r_i + 0.5*r_k", 1)
	if _, err := Read(strings.NewReader(badexpr)); err == nil {
		Te.Error("Ill-specified position expressions should be rejected at load time")
	}
}

func TestResolveFromLibrary(Te *testing.T) {
	L, err := Read(strings.NewReader(lib))
	if err != nil {
		Te.Fatal(err)
	}
	ats := []*gmso.Atom{
		{Name: "O1", ID: 1, Symbol: "O"},
		{Name: "O2", ID: 2, Symbol: "O"},
	}
	mol, err := gmso.MakeTopology(ats, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0})
	if err := mol.SetCoords(c); err != nil {
		Te.Fatal(err)
	}
	vt, _ := L.Get("midpoint")
	vs := gmso.NewVirtualSite("LP", vt, mol.Atom(0), mol.Atom(1))
	pos, err := vs.Position()
	if err != nil {
		Te.Fatal(err)
	}
	if pos.At(0, 0) != 1 {
		Te.Errorf("Library midpoint type should resolve to (1,0,0), got %v", pos)
	}
	fmt.Println(vs, pos)
}

func TestRoundTrip(Te *testing.T) {
	L, err := Read(strings.NewReader(lib))
	if err != nil {
		Te.Fatal(err)
	}
	p, err := expr.NewPosition("2.0*r_i + -1.0*r_j")
	if err != nil {
		Te.Fatal(err)
	}
	added := gmso.NewVirtualType(p, nil).WithCharge(units.Charge(0.52))
	if err := L.Add("extended", added); err != nil {
		Te.Fatal(err)
	}
	if err := L.Add("extended", added); err == nil {
		Te.Error("Duplicated names should be rejected")
	}
	var b strings.Builder
	if err := L.Write(&b); err != nil {
		Te.Fatal(err)
	}
	fmt.Println(b.String())
	M, err := Read(strings.NewReader(b.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if M.Len() != 3 {
		Te.Fatalf("Round trip lost types: %d", M.Len())
	}
	ext, ok := M.Get("extended")
	if !ok {
		Te.Fatal("extended type lost in round trip")
	}
	q, ok := ext.Charge()
	if !ok || q.E() != 0.52 {
		Te.Errorf("extended charge lost in round trip: %v %v", q, ok)
	}
	if ext.Position().NVars() != 2 {
		Te.Errorf("extended position expression lost in round trip: %v", ext.Position())
	}
}
