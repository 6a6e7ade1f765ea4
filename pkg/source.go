package noise

// Source is a read-only view of a structured data file. Paths address fields
// inside tables, e.g. "CalibTree/EventHeader/trigger".
type Source interface {
	Name() string
	Has(path string) bool
	Shape(path string) ([]int, error)
	// ReadRows returns rows [start, stop) of the field at path.
	ReadRows(path string, start, stop int) (Array, error)
	Close() error
}

type Opener func(name string) (Source, error)
