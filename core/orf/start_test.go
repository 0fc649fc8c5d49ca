// core/orf/start_test.go
package orf

import (
	"strings"
	"testing"

	"circanno-core/genome"
)

// genomeWith lays codons onto an all-C circle of length n.
func genomeWith(t *testing.T, n int, at map[int]string) *genome.Genome {
	t.Helper()
	seq := []byte(strings.Repeat("C", n))
	for pos, s := range at {
		for i := 0; i < len(s); i++ {
			seq[((pos+i-1)%n+n)%n] = s[i]
		}
	}
	return genome.New("t1", seq)
}

func TestFindStartInPlace(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{10: "ATG"})
	f := cdsAt(t, 10, 12, 0)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 10 || f.Length != 12 || f.Phase != 0 {
		t.Errorf("got %d+%d phase %d", f.Pos, f.Length, f.Phase)
	}
}

func TestFindStartConsumesPhase(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{10: "ATG"})
	f := cdsAt(t, 9, 13, 1)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 10 || f.Length != 12 || f.Phase != 0 {
		t.Errorf("got %d+%d phase %d, want 10+12 phase 0", f.Pos, f.Length, f.Phase)
	}
}

func TestFindStartForward(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{13: "ATG"})
	f := cdsAt(t, 10, 12, 0)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 13 || f.Length != 9 {
		t.Errorf("got %d+%d, want 13+9", f.Pos, f.Length)
	}
}

func TestFindStartBackward(t *testing.T) {
	// forward blocked by an immediate stop, ATG two codons upstream
	g := genomeWith(t, 60, map[int]string{13: "TAA", 4: "ATG"})
	f := cdsAt(t, 10, 12, 0)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 4 || f.Length != 18 {
		t.Errorf("got %d+%d, want 4+18", f.Pos, f.Length)
	}
}

func TestFindStartForwardWinsTies(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{7: "ATG", 13: "ATG"})
	f := cdsAt(t, 10, 12, 0)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 13 {
		t.Errorf("Pos = %d, want 13", f.Pos)
	}
}

func TestFindStartPrefersCloserBackward(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{7: "ATG", 16: "ATG"})
	f := cdsAt(t, 10, 12, 0)
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 7 {
		t.Errorf("Pos = %d, want 7", f.Pos)
	}
}

func TestFindStartNone(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{13: "TAA", 7: "TAG"})
	f := cdsAt(t, 10, 12, 0)
	if FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("found a start in stop-flanked C run")
	}
	if f.Pos != 10 || f.Length != 12 {
		t.Errorf("feature moved: %d+%d", f.Pos, f.Length)
	}
}

// The forward scan stays inside the feature: an ATG sitting exactly at
// the feature end is out of reach.
func TestFindStartForwardBound(t *testing.T) {
	g := genomeWith(t, 30, map[int]string{16: "ATG"})
	f := cdsAt(t, 10, 6, 0)
	if FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatalf("found start outside feature, now %d+%d", f.Pos, f.Length)
	}
}

func TestFindStartPolicyCodons(t *testing.T) {
	g := genomeWith(t, 60, map[int]string{10: "GTG"})

	f := cdsAt(t, 10, 12, 0)
	f.Path.Gene = "rps19"
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Error("GTG rejected for rps19")
	}

	f = cdsAt(t, 10, 12, 0)
	if FindStart(g, &f, DefaultStartPolicy()) {
		t.Error("GTG accepted for default gene")
	}
}

func TestFindStartCommitAcrossOrigin(t *testing.T) {
	g := genomeWith(t, 30, map[int]string{28: "ATG"})
	f := cdsAt(t, 28, 6, 0) // 28..3
	if !FindStart(g, &f, DefaultStartPolicy()) {
		t.Fatal("not found")
	}
	if f.Pos != 28 || f.Length != 6 {
		t.Errorf("got %d+%d, want 28+6", f.Pos, f.Length)
	}
}
