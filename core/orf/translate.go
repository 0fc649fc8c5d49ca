// core/orf/translate.go
package orf

import (
	"sync"

	"circanno-core/feature"
	"circanno-core/genome"
)

// The coding-sequence scratch buffer is shared across goroutines and
// guarded by transMu; deferring the unlock keeps the buffer released
// on every exit path.
var (
	transMu  sync.Mutex
	transBuf []byte
)

// Translate renders the concatenated coding sequence of feats, in the
// order given, as a protein string. Each feature contributes from its
// first in-frame base; a trailing partial codon is dropped.
func Translate(g *genome.Genome, feats []*feature.Feature) string {
	transMu.Lock()
	defer transMu.Unlock()

	buf := transBuf[:0]
	for _, f := range feats {
		start := f.Pos + f.Phase
		for k := 0; k < f.Length-f.Phase; k++ {
			buf = append(buf, g.Base(start+k))
		}
	}
	transBuf = buf

	nc := len(buf) - len(buf)%3
	if nc == 0 {
		return ""
	}
	out := make([]byte, 0, nc/3)
	for i := 0; i < nc; i += 3 {
		out = append(out, AminoAcid([3]byte{buf[i], buf[i+1], buf[i+2]}))
	}
	return string(out)
}
