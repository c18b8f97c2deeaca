package tabular

// ReaderConfig holds format-specific read options
type ReaderConfig struct {
	Sheet     string `json:"sheet"`     // XLSX sheet; empty selects the first sheet
	Delimiter rune   `json:"delimiter"` // CSV delimiter; 0 picks ',' (or '\t' for .tsv)
}

// DefaultReaderConfig returns sensible defaults for tabular sources
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}

// Supported file types
const (
	FileTypeCSV  = "csv"
	FileTypeTSV  = "tsv"
	FileTypeXLSX = "xlsx"
	FileTypeJSON = "json"
)
