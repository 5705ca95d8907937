// Package throttle provides an [http.RoundTripper] that holds outbound
// requests back to a token-bucket rate from [golang.org/x/time/rate].
//
// Wrap an existing transport with [NewRoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(10, 5, nil, http.DefaultTransport)
//	hc := &http.Client{Transport: rt}
//
// A request waits for a token until one is available or its context ends.
// The round tripper never retries and never imposes its own deadline.
package throttle
