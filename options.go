package docnum

// ExtractOptions holds configuration for label extraction.
type ExtractOptions struct {
	// Output filtering
	skipUnnumbered bool
	withoutSuffix  bool

	// Resolution
	maxLinkDepth int // 0 keeps the registry default
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		skipUnnumbered: false,
		withoutSuffix:  false,
		maxLinkDepth:   0,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		skipUnnumbered: o.skipUnnumbered,
		withoutSuffix:  o.withoutSuffix,
		maxLinkDepth:   o.maxLinkDepth,
	}
}
