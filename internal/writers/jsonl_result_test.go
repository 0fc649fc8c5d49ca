package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"circanno-core/annotate"
	"circanno/internal/output"
	"circanno/pkg/api"
)

func TestRecordJSONL_StreamsValidV1(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartRecordJSONLWriter(&buf, 2)
	in <- testResult("t1", testRecord("psbA/1/CDS/1"), testRecord("ndhB/1/CDS/1"))
	in <- testResult("t2", testRecord("psbA/1/CDS/1"))
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	var n int
	var genomes []string
	for sc.Scan() {
		n++
		var v api.RecordV1
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("bad json line %d: %v\n%s", n, err, sc.Text())
		}
		if v.Genome == "" {
			t.Fatalf("line %d lost its genome id: %s", n, sc.Text())
		}
		genomes = append(genomes, v.Genome)
	}
	if n != 3 {
		t.Fatalf("want 3 lines, got %d", n)
	}
	if genomes[0] != "t1" || genomes[1] != "t1" || genomes[2] != "t2" {
		t.Fatalf("genome ids = %v", genomes)
	}
}

// Enough records to overflow the pooled 64 KiB buffer, so the write
// error surfaces while the producer is still sending. The encoder must
// keep consuming or the send below wedges.
func TestRecordJSONLKeepsAcceptingAfterEncodeError(t *testing.T) {
	boom := errors.New("disk full")
	recs := make([]annotate.Record, 16)
	for i := range recs {
		recs[i] = testRecord("psbA/1/CDS/1")
	}

	in, done := StartRecordJSONLWriter(failWriter{err: boom}, 1)
	for i := 0; i < 64; i++ {
		in <- testResult("t1", recs...)
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestResultWriterJSONLViaRegistry(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartResultWriter(&buf, output.FormatJSONL, false, false, 2)
	in <- testResult("t1", testRecord("psbA/1/CDS/1"))
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	var v api.RecordV1
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &v); err != nil {
		t.Fatalf("bad jsonl: %v\n%s", err, buf.String())
	}
	if v.Genome != "t1" || v.ID != "psbA/1/CDS/1" {
		t.Fatalf("line = %+v", v)
	}
}
