// core/stacks/stacks_test.go
package stacks

import (
	"testing"

	"circanno-core/feature"
	"circanno-core/project"
	"circanno-core/template"
)

func path(t *testing.T, s string) feature.Path {
	t.Helper()
	p, err := feature.ParsePath(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func templatesFor(t *testing.T, paths ...string) template.Set {
	t.Helper()
	ts := template.Set{}
	for _, s := range paths {
		ts[s] = &template.Template{Path: s, MedianLength: 10, MinCounts: 1, MinCoverage: 0}
	}
	return ts
}

func ann(t *testing.T, p string, pos, length int) project.Annotation {
	t.Helper()
	return project.Annotation{Genome: "ref", Path: path(t, p), Pos: pos, Length: length}
}

func TestAccumulateSingleAnnotation(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1")
	s := Accumulate(20, []project.Annotation{ann(t, "a/1/CDS/1", 10, 5)}, ts, 1)

	st := s.Stack(path(t, "a/1/CDS/1"))
	if st == nil {
		t.Fatal("stack missing")
	}
	if st.AnnCount != 1 {
		t.Errorf("AnnCount = %d", st.AnnCount)
	}
	for i, c := range st.Counts {
		want := int32(0)
		if i >= 9 && i <= 13 {
			want = 3
		}
		if c != want {
			t.Errorf("Counts[%d] = %d, want %d", i, c, want)
		}
	}
	for i, c := range s.Shadow {
		want := int32(-1)
		if i >= 9 && i <= 13 {
			want = -2
		}
		if c != want {
			t.Errorf("Shadow[%d] = %d, want %d", i, c, want)
		}
	}

	sig := s.Signal(st)
	if got := sig.At(10); got != 1 {
		t.Errorf("At(10) = %d", got)
	}
	if got := sig.At(1); got != -1 {
		t.Errorf("At(1) = %d", got)
	}
	if got := sig.Sum(10, 5); got != 5 {
		t.Errorf("Sum = %d", got)
	}
}

func TestAccumulateDoubleCover(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1")
	anns := []project.Annotation{
		ann(t, "a/1/CDS/1", 5, 10),
		ann(t, "a/1/CDS/1", 5, 10),
	}
	s := Accumulate(20, anns, ts, 2)
	sig := s.Signal(s.Stack(path(t, "a/1/CDS/1")))
	if got := sig.At(5); got != 3 { // 6 stack, -3 shadow
		t.Errorf("At(5) = %d", got)
	}
}

// Evidence for another path at the same position drags the net signal
// down through the shared shadow.
func TestShadowIsSharedAcrossPaths(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1", "b/1/CDS/1")
	anns := []project.Annotation{
		ann(t, "a/1/CDS/1", 5, 10),
		ann(t, "b/1/CDS/1", 5, 10),
	}
	s := Accumulate(20, anns, ts, 2)
	sig := s.Signal(s.Stack(path(t, "a/1/CDS/1")))
	if got := sig.At(5); got != 0 { // 3 stack, -3 shadow
		t.Errorf("At(5) = %d", got)
	}
}

func TestAccumulateDropsTemplatelessPath(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1")
	anns := []project.Annotation{
		ann(t, "a/1/CDS/1", 5, 10),
		ann(t, "nix/1/CDS/1", 5, 10),
	}
	s := Accumulate(20, anns, ts, 1)
	if st := s.Stack(path(t, "nix/1/CDS/1")); st != nil {
		t.Errorf("templateless stack kept: %+v", st)
	}
	// and it leaves no shadow behind either
	if got := s.Shadow[4]; got != -2 {
		t.Errorf("Shadow[4] = %d", got)
	}
	if got := len(s.Stacks()); got != 1 {
		t.Errorf("Stacks() length = %d", got)
	}
}

func TestAccumulateWrapsOrigin(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1")
	s := Accumulate(20, []project.Annotation{ann(t, "a/1/CDS/1", 19, 4)}, ts, 1)
	st := s.Stack(path(t, "a/1/CDS/1"))
	for _, i := range []int{18, 19, 0, 1} {
		if st.Counts[i] != 3 {
			t.Errorf("Counts[%d] = %d", i, st.Counts[i])
		}
	}
	if st.Counts[2] != 0 {
		t.Errorf("Counts[2] = %d", st.Counts[2])
	}
}

func TestStacksOrdering(t *testing.T) {
	ts := templatesFor(t, "a/1/CDS/1", "b/1/CDS/1", "c/1/tRNA/1")
	anns := []project.Annotation{
		ann(t, "c/1/tRNA/1", 1, 2),
		ann(t, "a/1/CDS/1", 1, 2),
		ann(t, "b/1/CDS/1", 1, 2),
	}
	s := Accumulate(20, anns, ts, 1)
	got := s.Stacks()
	if len(got) != 3 {
		t.Fatalf("got %d stacks", len(got))
	}
	for i, want := range []string{"a/1/CDS/1", "b/1/CDS/1", "c/1/tRNA/1"} {
		if got[i].Path.String() != want {
			t.Errorf("Stacks()[%d] = %s, want %s", i, got[i].Path, want)
		}
	}
}

func TestPassesThresholds(t *testing.T) {
	p := path(t, "a/1/CDS/1")
	ts := template.Set{
		"a/1/CDS/1": {Path: "a/1/CDS/1", MedianLength: 10, MinCounts: 2, MinCoverage: 0.5},
	}

	// one full-length copy: count gate fails
	s := Accumulate(20, []project.Annotation{ann(t, "a/1/CDS/1", 1, 10)}, ts, 2)
	if s.PassesThresholds(s.Stack(p)) {
		t.Error("single annotation passed MinCounts=2")
	}

	// two full-length copies: sum/3 = 20 against expected 2*10
	s = Accumulate(20, []project.Annotation{
		ann(t, "a/1/CDS/1", 1, 10),
		ann(t, "a/1/CDS/1", 1, 10),
	}, ts, 2)
	if !s.PassesThresholds(s.Stack(p)) {
		t.Error("two full copies failed")
	}

	// two slivers: count gate passes, coverage 4/20 does not
	s = Accumulate(20, []project.Annotation{
		ann(t, "a/1/CDS/1", 1, 2),
		ann(t, "a/1/CDS/1", 1, 2),
	}, ts, 2)
	if s.PassesThresholds(s.Stack(p)) {
		t.Error("slivers passed MinCoverage=0.5")
	}
}

func TestDepth(t *testing.T) {
	p := path(t, "a/1/CDS/1")
	ts := templatesFor(t, "a/1/CDS/1")

	s := Accumulate(20, []project.Annotation{ann(t, "a/1/CDS/1", 1, 10)}, ts, 2)
	if got := s.Depth(s.Stack(p), 1, 10); got != 0.5 {
		t.Errorf("single-copy depth = %v", got)
	}

	s = Accumulate(20, []project.Annotation{
		ann(t, "a/1/CDS/1", 1, 10),
		ann(t, "a/1/CDS/1", 1, 10),
	}, ts, 2)
	if got := s.Depth(s.Stack(p), 1, 10); got != 1 {
		t.Errorf("double-copy depth = %v", got)
	}
	if got := s.Depth(s.Stack(p), 1, 0); got != 0 {
		t.Errorf("zero-length depth = %v", got)
	}
}
