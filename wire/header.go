package wire

// Header holds name/value pairs. It backs both the custom headers of a
// Request and the query parameters of a URI; iteration order follows the
// underlying map and is not stable.
type Header map[string]string

// clone returns an independent copy of h.
func (h Header) clone() Header {
	c := make(Header, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}
