// core/annotate/annotate_test.go
package annotate

import (
	"strings"
	"testing"

	"circanno-core/blocks"
	"circanno-core/feature"
	"circanno-core/genome"
	"circanno-core/template"
)

// revCompString mirrors a sequence for planting genes on the reverse
// frame of a hand-built genome.
func revCompString(t *testing.T, s string) string {
	t.Helper()
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c, ok := comp[s[len(s)-1-i]]
		if !ok {
			t.Fatalf("bad base %c", s[len(s)-1-i])
		}
		out[i] = c
	}
	return string(out)
}

// plant overwrites seq with s starting at a 1-based position.
func plant(seq []byte, pos int, s string) {
	copy(seq[pos-1:], s)
}

func refSource(t *testing.T, bs blocks.Set, fwd, rev []feature.Feature) *Source {
	t.Helper()
	src, err := NewSource(&feature.RefGenome{ID: "ref1", Length: 1000, Fwd: fwd, Rev: rev}, bs)
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func cdsTemplates(t *testing.T, median int) template.Set {
	t.Helper()
	return template.Set{"gene1/1/CDS/1": {Path: "gene1/1/CDS/1", MedianLength: median, MinCounts: 1}}
}

var gene120 = "ATG" + strings.Repeat("GCT", 38) + "TAA"

func TestAnnotateSingleGene(t *testing.T) {
	seq := []byte(strings.Repeat("C", 1000))
	plant(seq, 101, gene120)
	g := genome.New("t1", seq)

	src := refSource(t, blocks.Set{"t1": {{Src: 1, Tgt: 1, Len: 1000}}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 120}}, nil)
	a := New(Config{Templates: cdsTemplates(t, 120)})

	res, err := a.Annotate(g, []*Source{src}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.GenomeID != "t1" || res.Length != 1000 {
		t.Errorf("result head = %s/%d", res.GenomeID, res.Length)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records: %+v", len(res.Records), res.Records)
	}
	r := res.Records[0]
	if r.ID != "gene1/1/CDS/1" {
		t.Errorf("ID = %s", r.ID)
	}
	if r.Strand != feature.Forward {
		t.Errorf("strand = %v", r.Strand)
	}
	if r.Pos != 101 || r.Length != 120 || r.Phase != 0 {
		t.Errorf("placement = %d+%d phase %d", r.Pos, r.Length, r.Phase)
	}
	if r.RelLength != 1 || r.Depth != 1 {
		t.Errorf("rel %v depth %v", r.RelLength, r.Depth)
	}
	if r.Note != "" {
		t.Errorf("note = %q", r.Note)
	}
}

// A reverse-strand copy 30 bases short of the forward one comes out as
// instance 2 with a pseudogene note.
func TestAnnotateTwoStrandCopies(t *testing.T) {
	gene90 := "ATG" + strings.Repeat("GCT", 28) + "TAA"
	seq := []byte(strings.Repeat("C", 1000))
	plant(seq, 101, gene120)
	plant(seq, 811, revCompString(t, gene90)) // reverse frame 101..190
	g := genome.New("t1", seq)

	src := refSource(t, blocks.Set{"t1": {{Src: 1, Tgt: 1, Len: 1000}}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 120}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 90}})
	a := New(Config{Templates: cdsTemplates(t, 120)})

	res, err := a.Annotate(g, []*Source{src}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records: %+v", len(res.Records), res.Records)
	}

	fwd, rev := res.Records[0], res.Records[1]
	if fwd.ID != "gene1/1/CDS/1" || fwd.Strand != feature.Forward || fwd.Note != "" {
		t.Errorf("forward = %+v", fwd)
	}
	if rev.ID != "gene1/2/CDS/1" {
		t.Errorf("reverse ID = %s", rev.ID)
	}
	if rev.Strand != feature.Reverse {
		t.Errorf("reverse strand = %v", rev.Strand)
	}
	if rev.Pos != 101 || rev.Length != 90 || rev.Phase != 0 {
		t.Errorf("reverse placement = %d+%d phase %d", rev.Pos, rev.Length, rev.Phase)
	}
	if rev.RelLength != 0.75 || rev.Depth != 1 {
		t.Errorf("reverse rel %v depth %v", rev.RelLength, rev.Depth)
	}
	if rev.Note != "possible pseudogene, shorter than 2nd copy" {
		t.Errorf("reverse note = %q", rev.Note)
	}
}

func TestAnnotateIRRows(t *testing.T) {
	seq := []byte(strings.Repeat("C", 1000))
	plant(seq, 101, gene120)
	g := genome.New("t1", seq)

	src := refSource(t, blocks.Set{"t1": {{Src: 1, Tgt: 1, Len: 1000}}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 120}}, nil)
	a := New(Config{Templates: cdsTemplates(t, 120)})

	res, err := a.Annotate(g, []*Source{src}, &IR{PosA: 300, PosB: 600, Length: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records", len(res.Records))
	}
	ra, rb := res.Records[1], res.Records[2]
	if ra.ID != "IR/1/repeat_region/1" || ra.Strand != feature.Forward || ra.Pos != 300 || ra.Length != 50 {
		t.Errorf("IR/1 = %+v", ra)
	}
	if ra.RelLength != 1 {
		t.Errorf("IR/1 rel = %v", ra.RelLength)
	}
	if rb.ID != "IR/2/repeat_region/1" || rb.Strand != feature.Reverse || rb.Pos != 600 {
		t.Errorf("IR/2 = %+v", rb)
	}
}

func TestProjectBothFrames(t *testing.T) {
	seq := []byte(strings.Repeat("C", 1000))
	plant(seq, 101, gene120)
	g := genome.New("t1", seq)

	src := refSource(t, blocks.Set{"t1": {{Src: 1, Tgt: 1, Len: 1000}}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 120}},
		[]feature.Feature{{Path: mustPath(t, "gene1/1/CDS/1"), Pos: 101, Length: 90}})
	a := New(Config{Templates: cdsTemplates(t, 120)})

	frames, err := a.Project(g, []*Source{src})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames[0]) != 1 || len(frames[1]) != 1 {
		t.Fatalf("got %d fwd and %d rev fragments", len(frames[0]), len(frames[1]))
	}
	fwd := frames[0][0]
	if fwd.Genome != "ref1" || fwd.Pos != 101 || fwd.Length != 120 {
		t.Errorf("fwd = %+v", fwd)
	}
	if fwd.Offset5 != 0 || fwd.Offset3 != 0 {
		t.Errorf("fwd offsets = %d/%d", fwd.Offset5, fwd.Offset3)
	}
	rev := frames[1][0]
	if rev.Pos != 101 || rev.Length != 90 {
		t.Errorf("rev = %+v", rev)
	}
}

func TestProjectErrors(t *testing.T) {
	a := New(Config{Templates: cdsTemplates(t, 120)})
	src := refSource(t, blocks.Set{}, nil, nil)

	if _, err := a.Project(genome.New("t1", nil), []*Source{src}); err == nil {
		t.Error("empty genome accepted")
	}
	if _, err := a.Project(genome.New("t1", []byte("ACGT")), nil); err == nil {
		t.Error("no sources accepted")
	}
}

func TestAnnotateErrors(t *testing.T) {
	a := New(Config{Templates: cdsTemplates(t, 120)})
	src := refSource(t, blocks.Set{}, nil, nil)

	if _, err := a.Annotate(genome.New("t1", nil), []*Source{src}, nil); err == nil {
		t.Error("empty genome accepted")
	}
	g := genome.New("t1", []byte("ACGT"))
	if _, err := a.Annotate(g, nil, nil); err == nil {
		t.Error("no sources accepted")
	}
}

func TestAnnotateNoBlocksDiag(t *testing.T) {
	rec := &diagRecorder{}
	g := genome.New("t9", []byte(strings.Repeat("C", 100)))
	src := refSource(t, blocks.Set{"other": {{Src: 1, Tgt: 1, Len: 100}}}, nil, nil)
	a := New(Config{Templates: template.Set{}, Diagf: rec.f})

	res, err := a.Annotate(g, []*Source{src}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 0 {
		t.Errorf("got %d records", len(res.Records))
	}
	if !rec.contains("no alignment blocks") {
		t.Errorf("missing diagnostic, got %v", rec.msgs)
	}
}
