// core/annotate/annotate.go
package annotate

import (
	"errors"
	"fmt"

	"circanno-core/blocks"
	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/genome"
	"circanno-core/index"
	"circanno-core/orf"
	"circanno-core/project"
	"circanno-core/refine"
	"circanno-core/stacks"
	"circanno-core/template"
)

// Source bundles one reference genome: its per-strand feature indexes
// plus the alignment blocks mapping it onto targets.
type Source struct {
	Ref    *feature.RefGenome
	Fwd    *index.Index
	Rev    *index.Index
	Blocks blocks.Set
}

// NewSource indexes both strands of a reference table.
func NewSource(ref *feature.RefGenome, bs blocks.Set) (*Source, error) {
	fwd, err := index.New(ref.Fwd, ref.Length)
	if err != nil {
		return nil, fmt.Errorf("%s fwd: %w", ref.ID, err)
	}
	rev, err := index.New(ref.Rev, ref.Length)
	if err != nil {
		return nil, fmt.Errorf("%s rev: %w", ref.ID, err)
	}
	return &Source{Ref: ref, Fwd: fwd, Rev: rev, Blocks: bs}, nil
}

// IR marks an inverted-repeat pair to report alongside the gene rows.
// Starts are 1-based.
type IR struct {
	PosA   int
	PosB   int
	Length int
}

// Config tunes the annotator. Zero fields fall back to stock values
// in New.
type Config struct {
	Templates  template.Set
	Starts     orf.StartPolicy
	NoORF      map[string]bool // genes exempt from ORF and start correction
	Schedule   []int           // chunked-expansion ladder
	WindowKeep float64         // fraction of the top window score retained
	MaxGap     int             // largest boundary gap handed to the fulcrum
	Diagf      func(format string, a ...any)
}

// Annotator infers gene annotations for target genomes from projected
// reference evidence.
type Annotator struct {
	cfg Config
}

func New(cfg Config) *Annotator {
	if cfg.WindowKeep <= 0 || cfg.WindowKeep > 1 {
		cfg.WindowKeep = 0.9
	}
	if cfg.MaxGap <= 0 {
		cfg.MaxGap = 100
	}
	if len(cfg.Schedule) == 0 {
		cfg.Schedule = refine.DefaultSchedule
	}
	if cfg.NoORF == nil {
		cfg.NoORF = map[string]bool{"rps12": true}
	}
	if cfg.Starts.GTG == nil && cfg.Starts.ACG == nil {
		cfg.Starts = orf.DefaultStartPolicy()
	}
	if cfg.Diagf == nil {
		cfg.Diagf = func(string, ...any) {}
	}
	return &Annotator{cfg: cfg}
}

// Result is one genome's finished annotation.
type Result struct {
	GenomeID string
	Length   int
	Records  []Record
}

// Annotate runs the full inference for one target genome: project
// every source onto both strand frames, accumulate evidence, place and
// refine features, assemble gene models, and build output records.
func (a *Annotator) Annotate(g *genome.Genome, sources []*Source, ir *IR) (*Result, error) {
	n := g.Len()
	if n == 0 {
		return nil, fmt.Errorf("genome %q is empty", g.ID)
	}
	if len(sources) == 0 {
		return nil, errors.New("no reference sources")
	}

	frames := [2]*genome.Genome{g, g.RevComp()}
	var (
		sets   [2]*stacks.Set
		models [2][]*Model
	)
	for si := range frames {
		anns, cov := a.projectFrame(g, sources, si)
		set := stacks.Accumulate(n, anns, a.cfg.Templates, len(sources))
		byPath := groupByPath(anns)
		feats := a.placeFeatures(set, byPath, cov)
		ms := buildModels(feats)
		for _, m := range ms {
			a.refineModel(m, frames[si], set, byPath)
		}
		sets[si] = set
		models[si] = ms
	}

	return &Result{
		GenomeID: g.ID,
		Length:   n,
		Records:  a.buildRecords(frames, models, sets, ir),
	}, nil
}

// Project runs only the projection step, returning the raw projected
// annotations for the forward and reverse frames of one target genome.
// The dump is exactly what evidence accumulation later consumes.
func (a *Annotator) Project(g *genome.Genome, sources []*Source) ([2][]project.Annotation, error) {
	var out [2][]project.Annotation
	if g.Len() == 0 {
		return out, fmt.Errorf("genome %q is empty", g.ID)
	}
	if len(sources) == 0 {
		return out, errors.New("no reference sources")
	}
	for si := range out {
		out[si], _ = a.projectFrame(g, sources, si)
	}
	return out, nil
}

// projectFrame projects every source onto one strand frame of the
// target, frame 0 forward and frame 1 reverse complement, and reports
// per-source block coverage of that frame.
func (a *Annotator) projectFrame(g *genome.Genome, sources []*Source, si int) ([]project.Annotation, map[string]float64) {
	n := g.Len()
	var anns []project.Annotation
	cov := map[string]float64{}
	for _, src := range sources {
		bs := src.Blocks.For(g.ID)
		if len(bs) == 0 {
			if si == 0 {
				a.cfg.Diagf("%s: no alignment blocks from %s", g.ID, src.Ref.ID)
			}
			continue
		}
		norm := blocks.Normalize(bs, src.Ref.Length, n)
		ix := src.Fwd
		if si == 1 {
			norm = blocks.ReverseFrame(norm, src.Ref.Length, n)
			ix = src.Rev
		}
		anns = append(anns, project.Project(src.Ref.ID, norm, ix, n)...)
		cov[src.Ref.ID] = blocks.Coverage(norm, n)
	}
	return anns, cov
}

func groupByPath(anns []project.Annotation) map[string][]project.Annotation {
	m := map[string][]project.Annotation{}
	for _, a := range anns {
		key := a.Path.String()
		m[key] = append(m[key], a)
	}
	return m
}

// placeFeatures turns gated stacks into candidate features: template
// windows matched against the signal, edges grown greedily, then
// re-elected by weighted vote. Identical placements collapse to one.
func (a *Annotator) placeFeatures(set *stacks.Set, byPath map[string][]project.Annotation, cov map[string]float64) []*feature.Feature {
	type key struct {
		path string
		pos  int
		len  int
	}
	seen := map[key]struct{}{}
	var out []*feature.Feature
	for _, st := range set.Stacks() {
		if !set.PassesThresholds(st) {
			continue
		}
		sig := set.Signal(st)
		width := st.Template.MedianLength
		if width > set.GenomeLen {
			width = set.GenomeLen
		}
		for _, cand := range refine.WindowMatch(sig, width, a.cfg.WindowKeep) {
			f := &feature.Feature{Path: st.Path, Pos: cand.Pos, Length: width}
			a.expandEdges(sig, f)
			refine.Vote(f, byPath[st.Path.String()], cov, set.GenomeLen)
			k := key{path: st.Path.String(), pos: f.Pos, len: f.Length}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// expandEdges grows both feature edges outward while the chunked
// signal consents, each by at most one template width.
func (a *Annotator) expandEdges(sig stacks.Signal, f *feature.Feature) {
	n := sig.Len()
	end := refine.ExpandChunked(sig, f.Pos+f.Length-1, +1, f.Length, a.cfg.Schedule)
	start := refine.ExpandChunked(sig, f.Pos, -1, f.Length, a.cfg.Schedule)
	f.Pos = circ.Wrap(start, n)
	f.Length = circ.SpanLen(f.Pos, circ.Wrap(end, n), n)
}
