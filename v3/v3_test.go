package v3

import (
	"fmt"
	"testing"
)

func TestViews(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("Expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("Changes in a view should be reflected in the viewed matrix")
	}
	fmt.Println("View\n", A, "\n", View)
}

func TestBadShape(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4}
	_, err := NewMatrix(a)
	if err == nil {
		Te.Error("Slice with length not divisible by 3 should be rejected")
	}
	fmt.Println(err)
}

func TestCross(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
}
