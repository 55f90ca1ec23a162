package ports

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPageNumber   = 1_000_000_000
)

// Page is a normalised page-based pagination request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page number and size into their valid ranges. The
// page number ceiling keeps offset and next-link arithmetic clear of
// integer overflow for hostile query values.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }
