package expr

import (
	"fmt"
	"testing"

	v3 "github.com/askforarun/gmso/v3"
)

func vec(x, y, z float64) *v3.Matrix {
	v, _ := v3.NewMatrix([]float64{x, y, z})
	return v
}

func TestVarNames(Te *testing.T) {
	names, err := VarNames(5)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"r_i", "r_j", "r_k", "r_l", "r_m"}
	for i, v := range want {
		if names[i] != v {
			Te.Errorf("Variable %d should be %s, got %s", i, v, names[i])
		}
	}
	if _, err := VarNames(MaxVars + 1); err == nil {
		Te.Error("Too many variables should be rejected")
	}
}

func TestMidpoint(Te *testing.T) {
	P, err := NewPosition("0.5*r_i + 0.5*r_j")
	if err != nil {
		Te.Fatal(err)
	}
	if P.NVars() != 2 {
		Te.Errorf("Midpoint expression should have 2 variables, got %d", P.NVars())
	}
	got, err := P.Eval(map[string]*v3.Matrix{"r_i": vec(0, 0, 0), "r_j": vec(2, 0, 0)})
	if err != nil {
		Te.Fatal(err)
	}
	if got.At(0, 0) != 1 || got.At(0, 1) != 0 || got.At(0, 2) != 0 {
		Te.Errorf("Midpoint of (0,0,0) and (2,0,0) should be (1,0,0), got %v", got)
	}
	fmt.Println(P, "->", got)
}

func TestVariableOrder(Te *testing.T) {
	//the textual order of the variables in the source must not matter,
	//only the canonical binding order
	P, err := NewPosition("0.25*r_j + 0.75*r_i")
	if err != nil {
		Te.Fatal(err)
	}
	vars := P.Vars()
	if vars[0] != "r_i" || vars[1] != "r_j" {
		Te.Errorf("Variables should come back in binding order, got %v", vars)
	}
}

func TestGapRejected(Te *testing.T) {
	_, err := NewPosition("0.5*r_i + 0.5*r_k")
	if err == nil {
		Te.Error("Expression with a gap in its variables should be rejected")
	}
	fmt.Println(err)
}

func TestBadIdentifier(Te *testing.T) {
	_, err := NewPosition("0.5*r_i + 0.5*foo")
	if err == nil {
		Te.Error("Expression with a non-position variable should be rejected")
	}
	_, err = NewPosition("r_i >= 0.0")
	if err == nil {
		Te.Error("Expression not evaluating to a number should be rejected")
	}
}

func TestMissingBinding(Te *testing.T) {
	P, err := NewPosition("0.5*r_i + 0.5*r_j")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = P.Eval(map[string]*v3.Matrix{"r_i": vec(0, 0, 0)})
	if err == nil {
		Te.Error("Evaluation with a missing binding should fail")
	}
	_, err = P.Eval(map[string]*v3.Matrix{"r_i": vec(0, 0, 0), "r_k": vec(1, 1, 1)})
	if err == nil {
		Te.Error("Evaluation with a wrong binding should fail")
	}
}

func TestDeterminism(Te *testing.T) {
	P, err := NewPosition("0.75*r_i + 0.25*r_j")
	if err != nil {
		Te.Fatal(err)
	}
	b := map[string]*v3.Matrix{"r_i": vec(2, 0, 0), "r_j": vec(0, 0, 0)}
	a1, err := P.Eval(b)
	if err != nil {
		Te.Fatal(err)
	}
	a2, err := P.Eval(b)
	if err != nil {
		Te.Fatal(err)
	}
	for c := 0; c < 3; c++ {
		if a1.At(0, c) != a2.At(0, c) {
			Te.Errorf("Two evaluations with the same bindings differ: %v vs %v", a1, a2)
		}
	}
	if a1.At(0, 0) != 1.5 {
		Te.Errorf("0.75*(2,0,0) + 0.25*(0,0,0) should be (1.5,0,0), got %v", a1)
	}
}
