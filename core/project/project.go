// core/project/project.go
package project

import (
	"circanno-core/blocks"
	"circanno-core/circ"
	"circanno-core/feature"
	"circanno-core/index"
)

// Annotation is one fragment of a reference feature carried onto a
// target genome by an alignment block. Offsets record how much of the
// feature lies outside the fragment on each side, so downstream stages
// can reconstruct where the fragment sat within its feature.
type Annotation struct {
	Genome  string // source genome ID
	Path    feature.Path
	Pos     int // 1-based target position
	Length  int
	Offset5 int
	Offset3 int
	Phase   int
}

// Project maps every alignment block through the feature index,
// clipping overlapped features to the block and transferring the
// clipped runs onto the target frame. Blocks must be normalized to
// linear runs. Coding fragments get their phase advanced past the
// clipped 5' bases.
func Project(sourceID string, bs []blocks.Block, ix *index.Index, targetLen int) []Annotation {
	var out []Annotation
	for _, b := range bs {
		for _, h := range ix.Overlapping(b.Src, b.Src+b.Len-1) {
			startA := h.Start
			if b.Src > startA {
				startA = b.Src
			}
			endX := h.End + 1
			if bEnd := b.Src + b.Len; bEnd < endX {
				endX = bEnd
			}
			flen := endX - startA
			if flen <= 0 {
				continue
			}
			off5 := startA - h.Start
			a := Annotation{
				Genome:  sourceID,
				Path:    h.Feature.Path,
				Pos:     circ.Wrap(startA-b.Src+b.Tgt, targetLen),
				Length:  flen,
				Offset5: off5,
				Offset3: h.Feature.Length - off5 - flen,
			}
			if h.Feature.Path.IsCDS() {
				a.Phase = circ.Phase(h.Feature.Phase, off5)
			}
			out = append(out, a)
		}
	}
	return out
}

// Overlaps reports whether the annotation's span intersects the span
// starting at pos with the given length, on a genome of length n.
func (a *Annotation) Overlaps(pos, length, n int) bool {
	return circ.Dist(pos, a.Pos, n) < length || circ.Dist(a.Pos, pos, n) < a.Length
}
