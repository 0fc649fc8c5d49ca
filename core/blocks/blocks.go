// core/blocks/blocks.go
package blocks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"circanno-core/circ"
)

// Block maps a collinear run of source-genome positions onto a target
// genome: source position Src+k aligns to target position Tgt+k for
// k in 0..Len-1. Positions are 1-based.
type Block struct {
	Src int
	Tgt int
	Len int
}

// Set groups blocks by target genome ID. TSV inputs carry no target
// name and load under the empty key, which For treats as a wildcard.
type Set map[string][]Block

// For returns the blocks mapping onto the named target genome.
func (s Set) For(targetID string) []Block {
	if bs, ok := s[targetID]; ok {
		return bs
	}
	return s[""]
}

// ReadTSV loads a three-column block table: src_start, tgt_start, length.
// Lines starting with '#' and blank lines are skipped.
func ReadTSV(path string) (Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var list []Block
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		var b Block
		if b.Src, err = strconv.Atoi(f[0]); err != nil {
			return nil, fmt.Errorf("%s:%d bad src: %v", path, ln, err)
		}
		if b.Tgt, err = strconv.Atoi(f[1]); err != nil {
			return nil, fmt.Errorf("%s:%d bad tgt: %v", path, ln, err)
		}
		if b.Len, err = strconv.Atoi(f[2]); err != nil {
			return nil, fmt.Errorf("%s:%d bad length: %v", path, ln, err)
		}
		if b.Src < 1 || b.Tgt < 1 || b.Len < 1 {
			return nil, fmt.Errorf("%s:%d non-positive block field", path, ln)
		}
		list = append(list, b)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Set{"": list}, nil
}

// ReadFile loads blocks from a TSV table or, for .sam paths, from a
// SAM alignment.
func ReadFile(path string) (Set, error) {
	if strings.HasSuffix(path, ".sam") {
		return ReadSAM(path)
	}
	return ReadTSV(path)
}

// Normalize rewrites blocks so every run lies linearly inside both
// genomes, splitting runs that wrap through either origin.
func Normalize(bs []Block, srcLen, tgtLen int) []Block {
	out := make([]Block, 0, len(bs))
	for _, b := range bs {
		for b.Len > 0 {
			s := circ.Wrap(b.Src, srcLen)
			t := circ.Wrap(b.Tgt, tgtLen)
			l := b.Len
			if rem := srcLen - s + 1; l > rem {
				l = rem
			}
			if rem := tgtLen - t + 1; l > rem {
				l = rem
			}
			out = append(out, Block{Src: s, Tgt: t, Len: l})
			b = Block{Src: b.Src + l, Tgt: b.Tgt + l, Len: b.Len - l}
		}
	}
	return out
}

// ReverseFrame mirrors normalized blocks into the reverse-complement
// frames of both genomes. A run over source positions s..s+L-1 covers
// reverse-frame positions srcLen-s-L+2 onward, and likewise for the
// target, so collinearity is preserved.
func ReverseFrame(bs []Block, srcLen, tgtLen int) []Block {
	out := make([]Block, 0, len(bs))
	for _, b := range bs {
		out = append(out, Block{
			Src: srcLen - b.Src - b.Len + 2,
			Tgt: tgtLen - b.Tgt - b.Len + 2,
			Len: b.Len,
		})
	}
	return out
}

// Coverage reports the fraction of the target genome covered by bs as
// the summed block length over the genome length, capped at 1.
func Coverage(bs []Block, tgtLen int) float64 {
	if tgtLen <= 0 {
		return 0
	}
	sum := 0
	for _, b := range bs {
		sum += b.Len
	}
	cov := float64(sum) / float64(tgtLen)
	if cov > 1 {
		cov = 1
	}
	return cov
}
