// Package publish wraps the one-shot REST publishing APIs of the
// supported social platforms. Every call is a single attempt with a
// fixed timeout; failures fold into (ok=false, diagnostic body) and
// are never retried automatically.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const publishTimeout = 30 * time.Second

// Result is what a publisher reports back to the caller: a success
// flag plus the raw (or diagnostic) response body.
type Result struct {
	Platform string `json:"platform"`
	OK       bool   `json:"ok"`
	Body     string `json:"body"`
}

// Registry holds the configured publishers. A nil entry means the
// platform's credentials are missing and it must be skipped.
type Registry struct {
	Facebook  *Facebook
	Instagram *Instagram
	LinkedIn  *LinkedIn
	X         *X
	Telegram  *Telegram
}

func newClient() *http.Client {
	return &http.Client{Timeout: publishTimeout}
}

func postForm(
	ctx context.Context,
	client *http.Client,
	endpoint string,
	form url.Values,
	log *slog.Logger,
) (bool, string) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return false, err.Error()
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return do(ctx, client, req, log)
}

func postJSON(
	ctx context.Context,
	client *http.Client,
	endpoint string,
	payload any,
	headers map[string]string,
	log *slog.Logger,
) (bool, string) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, err.Error()
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return false, err.Error()
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return do(ctx, client, req, log)
}

func do(
	ctx context.Context,
	client *http.Client,
	req *http.Request,
	log *slog.Logger,
) (bool, string) {
	resp, err := client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.WarnContext(ctx, "Failed to close response body",
				"error", closeErr,
				"url", req.URL.String())
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Sprintf("read response: %v", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	return ok, string(data)
}
