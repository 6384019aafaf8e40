package export

import "fmt"

// Table is tabular export content.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t Table) validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("export requires at least one header")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}

// Renderer turns a table into file bytes.
type Renderer interface {
	Render(Table) ([]byte, error)
	ContentType() string
	Extension() string
}
