package dataset

import "context"

// MockSource is a simple in-memory source for testing
type MockSource struct {
	Table *Table
	Err   error
	Loads int
}

// NewMockSource creates a mock source serving the given rows under the
// standard column set.
func NewMockSource(rows []Row) *MockSource {
	return &MockSource{
		Table: &Table{
			Path:    "mock",
			Columns: RequiredColumns(),
			Rows:    rows,
		},
	}
}

func (m *MockSource) Load(ctx context.Context) (*Table, error) {
	m.Loads++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Table, nil
}
