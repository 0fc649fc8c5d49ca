// core/genome/genome.go
package genome

import (
	"circanno-core/circ"
)

// Genome is one circular DNA sequence held in memory, uppercased.
type Genome struct {
	ID  string
	seq []byte
}

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['R'] = 'Y'
	complement['Y'] = 'R'
	complement['S'] = 'S'
	complement['W'] = 'W'
	complement['K'] = 'M'
	complement['M'] = 'K'
	complement['B'] = 'V'
	complement['V'] = 'B'
	complement['D'] = 'H'
	complement['H'] = 'D'
	complement['N'] = 'N'
}

// New copies seq, uppercasing it. Bases outside the IUPAC alphabet
// become 'N'.
func New(id string, seq []byte) *Genome {
	s := make([]byte, len(seq))
	for i, b := range seq {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		if complement[b] == 0 {
			b = 'N'
		}
		s[i] = b
	}
	return &Genome{ID: id, seq: s}
}

func (g *Genome) Len() int { return len(g.seq) }

// Seq exposes the raw sequence. Callers must not modify it.
func (g *Genome) Seq() []byte { return g.seq }

// Base returns the base at a 1-based circular position.
func (g *Genome) Base(pos int) byte {
	return g.seq[circ.Index(pos, len(g.seq))]
}

// Codon returns the three bases starting at a 1-based circular position.
func (g *Genome) Codon(pos int) [3]byte {
	return [3]byte{g.Base(pos), g.Base(pos + 1), g.Base(pos + 2)}
}

// SubSeq copies length bases starting at a 1-based circular position.
func (g *Genome) SubSeq(pos, length int) []byte {
	out := make([]byte, length)
	for k := 0; k < length; k++ {
		out[k] = g.Base(pos + k)
	}
	return out
}

// RevComp returns the reverse-complement frame of g under the same ID.
// Position p on the result corresponds to position Len()-p+1 on g.
func (g *Genome) RevComp() *Genome {
	n := len(g.seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[g.seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return &Genome{ID: g.ID, seq: out}
}
