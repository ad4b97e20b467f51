// Package identity is the client for the external identity service that hands out
// client ids and auth tokens.
//
// Every call is a POST with an empty form body and the static credential headers
// from Config. Handshake chains the two calls, passing the client id from the
// first as X-Client-Id on the second:
//
//	client, err := identity.NewFromConfig(cfg, identity.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	hs := client.Handshake(ctx)
//	if id, ok := hs.ClientID.Get(); ok {
//		// ...
//	}
//
// An empty 2xx body is an absent result, not an error. Each attempt is bounded by
// a timeout. Network errors, 5xx and 429 responses are retried with exponential
// backoff, and after BreakerThreshold consecutive failed calls a circuit breaker
// rejects calls with ErrCircuitOpen (wrapped in ErrServiceUnavailable) until the
// cooldown elapses. Certificates are always verified.
package identity
