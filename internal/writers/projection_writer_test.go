package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"circanno-core/feature"
	"circanno-core/project"
	"circanno/internal/output"
	"circanno/internal/projoutput"
	"circanno/pkg/api"
)

func testProjection(t *testing.T, id string) projoutput.Projection {
	t.Helper()
	p, err := feature.ParsePath("psbA/1/CDS/1")
	if err != nil {
		t.Fatal(err)
	}
	return projoutput.Projection{
		GenomeID: id,
		Length:   1000,
		Fwd:      []project.Annotation{{Genome: "ref1", Path: p, Pos: 101, Length: 120}},
		Rev:      []project.Annotation{{Genome: "ref1", Path: p, Pos: 51, Length: 60, Offset5: 30, Offset3: 30, Phase: 1}},
	}
}

func TestProjectionWriterText(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartProjectionWriter(&buf, output.FormatText, false, true, 2)
	in <- testProjection(t, "t1")
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != projoutput.TSVHeader {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "t1\tref1\tpsbA/1/CDS/1\t+\t101\t120") {
		t.Errorf("fwd row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "t1\tref1\tpsbA/1/CDS/1\t-\t51\t60\t30\t30\t1") {
		t.Errorf("rev row = %q", lines[2])
	}
}

func TestProjectionWriterKeepsAcceptingAfterWriteError(t *testing.T) {
	boom := errors.New("disk full")
	in, done := StartProjectionWriter(failWriter{err: boom}, output.FormatText, false, true, 1)
	for i := 0; i < 16; i++ {
		in <- testProjection(t, "t1")
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestProjectionJSONL_StreamsValidV1(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartProjectionWriter(&buf, output.FormatJSONL, false, false, 2)
	in <- testProjection(t, "t1")
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	var strands []string
	for sc.Scan() {
		var v api.ProjectionV1
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("bad json line: %v\n%s", err, sc.Text())
		}
		if v.Genome != "t1" || v.Source != "ref1" {
			t.Fatalf("line = %+v", v)
		}
		strands = append(strands, v.Strand)
	}
	if len(strands) != 2 || strands[0] != "+" || strands[1] != "-" {
		t.Fatalf("strand order = %v", strands)
	}
}
