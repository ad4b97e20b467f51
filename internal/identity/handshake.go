package identity

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrymomot/rango/core/logger"
)

// Handshake is the outcome of the two sequential identity calls.
type Handshake struct {
	ClientID  Optional[string]
	AuthToken Optional[string]
}

// Handshake requests a client id and then an auth token. The client id, when
// present, is sent as X-Client-Id on the second call; otherwise the second call
// is made without it. Failures are logged and leave the value absent.
func (c *Client) Handshake(ctx context.Context) Handshake {
	ctx, span := c.tracer.Start(ctx, "identity.handshake")
	defer span.End()

	var hs Handshake

	id, err := c.FetchClientID(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "client id request failed",
			logger.Component("identity"),
			logger.Event("client_id"),
			logger.Error(err),
		)
	}
	hs.ClientID = id

	headers := http.Header{}
	if v, ok := id.Get(); ok {
		headers.Set(HeaderClientID, v)
	}

	token, err := c.FetchAuthToken(ctx, headers)
	if err != nil {
		c.logger.ErrorContext(ctx, "auth token request failed",
			logger.Component("identity"),
			logger.Event("auth_token"),
			logger.Error(err),
		)
	}
	hs.AuthToken = token

	span.SetAttributes(
		attribute.Bool("identity.client_id", hs.ClientID.IsPresent()),
		attribute.Bool("identity.auth_token", hs.AuthToken.IsPresent()),
	)
	return hs
}
