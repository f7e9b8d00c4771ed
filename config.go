package streamjson

// ParserConfig enumerates the knobs spec.md §6 calls out by name. The
// zero value is not valid; use DefaultParserConfig to get sane defaults
// and override only the fields that matter to the caller.
type ParserConfig struct {
	// MaxDepth bounds object/array nesting. Exceeding it yields
	// ErrMaxDepthExceeded. Default 1024.
	MaxDepth int
	// MaxLexemeLength bounds the length of any single string, field
	// name, or number lexeme. Zero means unbounded. Exceeding it yields
	// ErrLexemeTooLong.
	MaxLexemeLength int
	// AllowBufferGrowth permits the push feeder to reallocate its ring
	// buffer when full instead of reporting zero bytes accepted.
	// Default true.
	AllowBufferGrowth bool
	// InitialBufferCap is the push feeder's starting capacity. Default
	// 4096.
	InitialBufferCap int
	// MaxBufferCap is the ceiling AllowBufferGrowth will grow the push
	// buffer to; once there, PushBytes accepts only the bytes that fit
	// and returns that count. Default 1<<20.
	MaxBufferCap int
}

// DefaultParserConfig returns the configuration used by New when no
// configuration is supplied.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MaxDepth:          1024,
		MaxLexemeLength:   0,
		AllowBufferGrowth: true,
		InitialBufferCap:  4096,
		MaxBufferCap:      1 << 20,
	}
}

func (c *ParserConfig) setDefaults() {
	if c.MaxDepth <= 0 {
		c.MaxDepth = 1024
	}
	if c.InitialBufferCap <= 0 {
		c.InitialBufferCap = 4096
	}
	if c.MaxBufferCap <= 0 {
		c.MaxBufferCap = 1 << 20
	}
	if c.MaxBufferCap < c.InitialBufferCap {
		c.MaxBufferCap = c.InitialBufferCap
	}
}
