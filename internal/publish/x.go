package publish

import (
	"context"
	"log/slog"
	"net/http"
)

const tweetsURL = "https://api.twitter.com/2/tweets"

// X posts a single tweet through the bearer-token v2 endpoint.
type X struct {
	bearerToken string
	base        string
	client      *http.Client
	log         *slog.Logger
}

func NewX(bearerToken string, log *slog.Logger) *X {
	return &X{
		bearerToken: bearerToken,
		base:        tweetsURL,
		client:      newClient(),
		log:         log,
	}
}

func (x *X) Post(ctx context.Context, text string) Result {
	payload := map[string]string{"text": text}
	headers := map[string]string{
		"Authorization": "Bearer " + x.bearerToken,
	}

	ok, body := postJSON(ctx, x.client, x.base, payload, headers, x.log)

	return Result{Platform: "x", OK: ok, Body: body}
}
