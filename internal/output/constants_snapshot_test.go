package output

import "testing"

func TestTSVHeader_Stable(t *testing.T) {
	const want = "id\tstrand\tstart\tlength\tphase\trel_length\tdepth\tnote"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got:  %q\n want: %q", TSVHeader, want)
	}
}
