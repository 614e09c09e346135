package stf

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	gmso "github.com/askforarun/gmso"
	"github.com/askforarun/gmso/expr"
	v3 "github.com/askforarun/gmso/v3"
)

func writeFrames(Te *testing.T, name string, frames [][]float64) {
	natoms := len(frames[0]) / 3
	W, err := NewWriter(name, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	for _, f := range frames {
		c, err := v3.NewMatrix(f)
		if err != nil {
			Te.Fatal(err)
		}
		if err := W.WNext(c); err != nil {
			Te.Fatal(err)
		}
	}
	W.Close()
}

func TestRoundTrip(Te *testing.T) {
	frames := [][]float64{
		{0, 0, 0, 2, 0, 0},
		{0, 0, 0, 4, 0, 0},
		{1, 1, 1, 3, 1, 1},
	}
	//one file per supported compressor
	for _, name := range []string{"traj.stf", "traj.stz", "traj.str", "traj.stl"} {
		fname := filepath.Join(Te.TempDir(), name)
		writeFrames(Te, fname, frames)
		R, err := New(fname)
		if err != nil {
			Te.Fatal(err)
		}
		if R.Len() != 2 {
			Te.Errorf("%s: expected 2 atoms, got %d", name, R.Len())
		}
		out := v3.Zeros(2)
		for i := range frames {
			if err := R.Next(out); err != nil {
				Te.Fatalf("%s frame %d: %v", name, i, err)
			}
			for j := 0; j < 6; j++ {
				if math.Abs(out.At(j/3, j%3)-frames[i][j]) > 1e-4 {
					Te.Errorf("%s frame %d: got %v", name, i, out)
				}
			}
		}
		err = R.Next(out)
		if err == nil {
			Te.Fatalf("%s: expected a last-frame signal", name)
		}
		if _, ok := err.(LastFrameError); !ok {
			Te.Errorf("%s: end of trajectory should be a LastFrameError, got %T: %v", name, err, err)
		}
		R.Close()
	}
}

func TestSkipFrame(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "traj.stf")
	writeFrames(Te, fname, [][]float64{
		{0, 0, 0, 2, 0, 0},
		{0, 0, 0, 6, 0, 0},
	})
	R, err := New(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if err := R.Next(nil); err != nil { //discard the first frame
		Te.Fatal(err)
	}
	out := v3.Zeros(2)
	if err := R.Next(out); err != nil {
		Te.Fatal(err)
	}
	if out.At(1, 0) != 6 {
		Te.Errorf("Skipping should leave the second frame next, got %v", out)
	}
}

func TestShapeChecks(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "traj.stf")
	W, err := NewWriter(fname, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(v3.Zeros(3)); err == nil {
		Te.Error("Wrong coordinate count should be rejected")
	}
	if err := W.WNext(nil); err == nil {
		Te.Error("Nil coordinates should be rejected")
	}
	W.Close()
	if err := W.WNext(v3.Zeros(2)); err == nil {
		Te.Error("Writing to a closed trajectory should fail")
	}
}

// A virtual site resolved against a topology whose coordinates are replayed
// from a trajectory must track the replay with no invalidation step.
func TestReplayResolution(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "water.stf")
	writeFrames(Te, fname, [][]float64{
		{0, 0, 0, 2, 0, 0},
		{0, 0, 0, 4, 0, 0},
	})
	ats := []*gmso.Atom{
		{Name: "O1", ID: 1, Symbol: "O"},
		{Name: "O2", ID: 2, Symbol: "O"},
	}
	mol, err := gmso.MakeTopology(ats, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(2)
	if err := mol.SetCoords(coords); err != nil {
		Te.Fatal(err)
	}
	p, err := expr.NewPosition("0.5*r_i + 0.5*r_j")
	if err != nil {
		Te.Fatal(err)
	}
	vs := gmso.NewVirtualSite("MW", gmso.NewVirtualType(p, nil), mol.Atom(0), mol.Atom(1))
	R, err := New(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	want := []float64{1, 2}
	for i := 0; i < 2; i++ {
		if err := R.Next(coords); err != nil {
			Te.Fatal(err)
		}
		pos, err := vs.Position()
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(pos.At(0, 0)-want[i]) > 1e-4 {
			Te.Errorf("Frame %d: expected x=%g, got %v", i, want[i], pos)
		}
		fmt.Println("frame", i, vs, pos)
	}
}
