package units

import (
	"fmt"
	"math"
	"testing"
)

func TestCharge(Te *testing.T) {
	q, err := NewCharge(-1.04, "e")
	if err != nil {
		Te.Fatal(err)
	}
	if q.E() != -1.04 {
		Te.Errorf("Expected -1.04 e, got %v", q)
	}
	qc, err := NewCharge(-1.04*1.602176634e-19, "C")
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(qc.E()-q.E()) > 1e-12 {
		Te.Errorf("Coulomb charge doesn't normalize to e: %v vs %v", qc, q)
	}
	fmt.Println(q, q.SI())
	_, err = NewCharge(1, "statC")
	if err == nil {
		Te.Error("Unknown charge unit should be rejected, not coerced")
	}
}

func TestParseCharge(Te *testing.T) {
	q, err := ParseCharge("0.52")
	if err != nil {
		Te.Fatal(err)
	}
	//a bare number is interpreted as already being in e
	if q.E() != 0.52 {
		Te.Errorf("Bare number should parse as e: %v", q)
	}
	q2, err := ParseCharge(" -1.04 e ")
	if err != nil {
		Te.Fatal(err)
	}
	if q2.E() != -1.04 {
		Te.Errorf("Expected -1.04 e, got %v", q2)
	}
	if _, err := ParseCharge("one e"); err == nil {
		Te.Error("Garbage magnitude should be rejected")
	}
}

func TestLength(Te *testing.T) {
	l, err := NewLength(2.5, "A")
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(l.Nm()-0.25) > 1e-12 {
		Te.Errorf("2.5 A should be 0.25 nm, got %v", l)
	}
	m, err := NewLength(1e-9, "m")
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(m.Nm()-1.0) > 1e-12 {
		Te.Errorf("1e-9 m should be 1 nm, got %v", m)
	}
	fmt.Println(l, l.SI())
}
