package domain

// TransportOptions configures outbound transfers. TLS verification is
// always on; there is deliberately no knob to disable it.
type TransportOptions struct {
	// TimeoutSeconds bounds the whole request, connection included.
	TimeoutSeconds int

	// UserAgent is sent with every request.
	UserAgent string

	// MaxRedirects caps redirect following before the transfer is
	// abandoned.
	MaxRedirects int

	// MaxBodyBytes caps how large a response body may grow while being
	// captured. 0 means unbounded.
	MaxBodyBytes int
}

// HTTPResponse is a fully captured response body plus its status code.
// The caller owns Body exclusively.
type HTTPResponse struct {
	Body       []byte
	StatusCode int
}
