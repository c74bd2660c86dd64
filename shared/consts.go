package shared

const (
	// MinWidth and MaxWidth bound the number of bits used per run field.
	// 2^MaxWidth-1 must fit into a uint32 run.
	MinWidth = 1
	MaxWidth = 31

	DefaultWidth = 8

	// HeaderFieldSize is the size in bits of the width field, regardless of the width.
	HeaderFieldSize = 8

	// CountFieldSize is the size in bits of the explicit run count field.
	CountFieldSize = 32
)
