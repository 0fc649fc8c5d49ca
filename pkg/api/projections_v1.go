// pkg/api/projections_v1.go
package api

// ProjectionV1 is the stable schema for one raw projected fragment as
// emitted by circanno-project. Genome is the target, Source the reference
// the fragment was carried over from.
type ProjectionV1 struct {
	Genome  string `json:"genome"`
	Source  string `json:"source"`
	Path    string `json:"path"`
	Strand  string `json:"strand"` // "+" | "-"
	Start   int    `json:"start"`
	Length  int    `json:"length"`
	Offset5 int    `json:"offset5"`
	Offset3 int    `json:"offset3"`
	Phase   int    `json:"phase"`
}
