package sheetio

// DefaultSheetName names the worksheet written to xlsx files.
const DefaultSheetName = "Sheet1"

// Options holds configuration for the writers.
type Options struct {
	colors    Colors
	sheetName string
}

func defaultOptions() *Options {
	return &Options{sheetName: DefaultSheetName}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a writer.
type Option func(*Options)

// WithColors sets the per-cell background colors for xlsx and pdf output.
// Cells outside the grid fall back to DefaultColor.
func WithColors(colors Colors) Option {
	return func(o *Options) { o.colors = colors }
}

// WithSheetName sets the worksheet name for xlsx output.
func WithSheetName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.sheetName = name
		}
	}
}
