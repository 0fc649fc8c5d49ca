// core/template/template.go
package template

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Template carries the per-path statistics used to gate and size feature
// placement: the median reference length plus the evidence thresholds a
// candidate must clear.
type Template struct {
	Path         string
	MedianLength int
	MinCounts    float64
	MinCoverage  float64
}

// Set maps feature path strings to their templates.
type Set map[string]*Template

// Read loads a template table. The first non-comment line is a column
// header and is skipped; every other line is one template:
//
//	path	threshold_counts	threshold_coverage	median_length
//
// Duplicate paths are an error.
func Read(path string) (Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	set := Set{}
	sc := bufio.NewScanner(fh)
	ln := 0
	header := true
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if header {
			header = false
			continue
		}
		f := strings.Fields(line)
		if len(f) != 4 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		t := &Template{Path: f[0]}
		if t.MinCounts, err = strconv.ParseFloat(f[1], 64); err != nil {
			return nil, fmt.Errorf("%s:%d bad counts threshold: %v", path, ln, err)
		}
		if t.MinCoverage, err = strconv.ParseFloat(f[2], 64); err != nil {
			return nil, fmt.Errorf("%s:%d bad coverage threshold: %v", path, ln, err)
		}
		if t.MedianLength, err = strconv.Atoi(f[3]); err != nil || t.MedianLength < 1 {
			return nil, fmt.Errorf("%s:%d bad median length %q", path, ln, f[3])
		}
		if _, dup := set[t.Path]; dup {
			return nil, fmt.Errorf("%s:%d duplicate template path %q", path, ln, t.Path)
		}
		set[t.Path] = t
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// Write renders templates as the TSV consumed by Read, sorted by path.
func Write(w io.Writer, ts []Template) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "path\tthreshold_counts\tthreshold_coverage\tmedian_length"); err != nil {
		return err
	}
	sorted := append([]Template(nil), ts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	for _, t := range sorted {
		if _, err := fmt.Fprintf(bw, "%s\t%g\t%g\t%d\n", t.Path, t.MinCounts, t.MinCoverage, t.MedianLength); err != nil {
			return err
		}
	}
	return bw.Flush()
}
