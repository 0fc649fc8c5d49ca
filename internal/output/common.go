package output

// Output format names accepted by --output across the tools.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical column header for text/TSV record output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "id\tstrand\tstart\tlength\tphase\trel_length\tdepth\tnote"
