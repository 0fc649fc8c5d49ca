// core/blocks/sam.go
package blocks

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"
)

// ReadSAM loads alignment blocks from a SAM file in which the queries
// are source-genome segments aligned against target genomes. Each
// match run of a CIGAR becomes one block; the SAM reference name keys
// the target genome.
//
// Query names may carry a ":start-end" suffix giving the segment's
// 0-based offset within the source genome, so sources split before
// alignment still project with whole-genome coordinates.
//
// Unmapped records and reverse-strand records are skipped; the engine
// derives reverse frames itself.
func ReadSAM(path string) (Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	sr, err := sam.NewReader(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	set := Set{}
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if rec.Flags&sam.Unmapped != 0 || rec.Flags&sam.Reverse != 0 || rec.Ref == nil {
			continue
		}
		_, qOff := splitSegmentSuffix(rec.Name)
		target := rec.Ref.Name()
		ref := rec.Pos
		q := qOff
		for _, co := range rec.Cigar {
			con := co.Type().Consumes()
			if con.Query == 1 && con.Reference == 1 && co.Len() > 0 {
				set[target] = append(set[target], Block{Src: q + 1, Tgt: ref + 1, Len: co.Len()})
			}
			ref += co.Len() * con.Reference
			q += co.Len() * con.Query
		}
	}
	return set, nil
}

// splitSegmentSuffix splits a "name:start-end" query name into the bare
// name and the 0-based start offset. Names without the suffix return
// offset 0.
func splitSegmentSuffix(name string) (string, int) {
	i := strings.LastIndexByte(name, ':')
	if i < 0 {
		return name, 0
	}
	rest := name[i+1:]
	j := strings.IndexByte(rest, '-')
	if j < 1 {
		return name, 0
	}
	start, err := strconv.Atoi(rest[:j])
	if err != nil || start < 0 {
		return name, 0
	}
	if _, err := strconv.Atoi(rest[j+1:]); err != nil {
		return name, 0
	}
	return name[:i], start
}
