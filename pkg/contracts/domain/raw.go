package domain

// CellKind discriminates the closed set of raw cell value types.
type CellKind int

const (
	// CellNull marks an empty or whitespace-only cell.
	CellNull CellKind = iota
	// CellString holds free text.
	CellString
	// CellNumber holds a numeric value delivered as such by the source.
	CellNumber
)

// Cell is a single raw tabular value: string, number or null.
// Sources deliver loosely typed data; all downstream coercion to typed
// fields is total and reports a reason instead of panicking.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NullCell returns the null sentinel cell.
func NullCell() Cell { return Cell{Kind: CellNull} }

// StringCell wraps s as a string cell.
func StringCell(s string) Cell { return Cell{Kind: CellString, Text: s} }

// NumberCell wraps n as a numeric cell.
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// IsNull reports whether the cell is the null sentinel.
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// RawTable is loosely structured tabular input: a header row in source
// order plus one column of cells per header. All columns have the same
// length.
type RawTable struct {
	Headers []string
	Columns map[string][]Cell
}

// Rows returns the number of data rows in the table.
func (t RawTable) Rows() int {
	for _, col := range t.Columns {
		return len(col)
	}
	return 0
}

// Empty reports whether the table has no headers or no data rows.
func (t RawTable) Empty() bool {
	return len(t.Headers) == 0 || t.Rows() == 0
}

// Column returns the named column and whether it exists.
func (t RawTable) Column(name string) ([]Cell, bool) {
	col, ok := t.Columns[name]
	return col, ok
}
