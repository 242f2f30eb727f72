package models

// ULB represents one urban local body row extracted from a source table.
// Name already carries its type suffix (" Corporation" or " Municipality").
type ULB struct {
	Name      string
	District  string
	WardCount int
}

// Stats counts what happened during extraction
type Stats struct {
	Rows      int // data rows seen (header excluded)
	Parsed    int // rows that produced a record
	Skipped   int // rows with too few cells
	Defaulted int // ward counts substituted with a placeholder
}

// Add merges another set of counters into s
func (s *Stats) Add(o Stats) {
	s.Rows += o.Rows
	s.Parsed += o.Parsed
	s.Skipped += o.Skipped
	s.Defaulted += o.Defaulted
}
