// Package pagination bounds the page sizes list RPCs accept.
package pagination

// PageSizeConfig is the page size used when a request asks for none, and the
// largest one served. Max <= 0 means unbounded.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize returns the page size to serve for a requested value. The
// result is always at least 1.
func ClampPageSize(requested int32, cfg PageSizeConfig) int {
	size := int(requested)
	if size <= 0 {
		size = cfg.Default
	}
	if cfg.Max > 0 {
		size = min(size, cfg.Max)
	}
	return max(size, 1)
}
