// core/feature/reader.go
package feature

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// RefGenome is one reference genome's feature table, split by strand.
// Reverse-strand features are kept in reverse-frame coordinates, i.e.
// positions count along the reverse complement, so both slices read 5'→3'.
type RefGenome struct {
	ID     string
	Length int
	Fwd    []Feature
	Rev    []Feature
}

// Strand returns the features on one strand frame.
func (r *RefGenome) Strand(s Strand) []Feature {
	if s == Reverse {
		return r.Rev
	}
	return r.Fwd
}

// ReadTable loads a reference feature table. The first non-comment line
// names the genome and its length; every following line is one feature:
//
//	psbA/1/CDS/1	+	482	1062	0
//
// Rows whose gene is a placeholder ("unassigned", "predicted") and rows
// carrying a "pseudo" flag column are dropped. Both strand slices come
// back sorted by start position.
func ReadTable(path string) (*RefGenome, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	ref := &RefGenome{}
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
		if ref.ID == "" {
			if len(f) != 2 {
				return nil, fmt.Errorf("%s:%d bad header (want id and length)", path, ln)
			}
			n, err := strconv.Atoi(f[1])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%s:%d bad genome length %q", path, ln, f[1])
			}
			ref.ID, ref.Length = f[0], n
			continue
		}
		if len(f) < 5 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		p, err := ParsePath(f[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", path, ln, err)
		}
		if skipGene(p.Gene) || hasFlag(f[5:], "pseudo") {
			continue
		}
		strand, err := ParseStrand(f[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", path, ln, err)
		}
		ft := Feature{Path: p}
		if ft.Pos, err = strconv.Atoi(f[2]); err != nil {
			return nil, fmt.Errorf("%s:%d bad start: %v", path, ln, err)
		}
		if ft.Length, err = strconv.Atoi(f[3]); err != nil {
			return nil, fmt.Errorf("%s:%d bad length: %v", path, ln, err)
		}
		if ft.Phase, err = strconv.Atoi(f[4]); err != nil {
			return nil, fmt.Errorf("%s:%d bad phase: %v", path, ln, err)
		}
		if ft.Pos < 1 || ft.Pos > ref.Length {
			return nil, fmt.Errorf("%s:%d start %d outside genome of length %d", path, ln, ft.Pos, ref.Length)
		}
		if ft.Length < 1 {
			return nil, fmt.Errorf("%s:%d non-positive length %d", path, ln, ft.Length)
		}
		if ft.Phase < 0 || ft.Phase > 2 {
			return nil, fmt.Errorf("%s:%d phase %d out of range", path, ln, ft.Phase)
		}
		if strand == Reverse {
			ref.Rev = append(ref.Rev, ft)
		} else {
			ref.Fwd = append(ref.Fwd, ft)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if ref.ID == "" {
		return nil, fmt.Errorf("%s: missing header line", path)
	}
	sortByPos(ref.Fwd)
	sortByPos(ref.Rev)
	return ref, nil
}

func sortByPos(fs []Feature) {
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Pos < fs[j].Pos })
}

func skipGene(gene string) bool {
	return strings.HasPrefix(gene, "unassigned") || strings.HasPrefix(gene, "predicted")
}

func hasFlag(rest []string, flag string) bool {
	for _, f := range rest {
		if f == flag {
			return true
		}
	}
	return false
}
