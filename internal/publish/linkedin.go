package publish

import (
	"context"
	"log/slog"
	"net/http"
)

const linkedInUGCPostsURL = "https://api.linkedin.com/v2/ugcPosts"

// LinkedIn publishes a text-only UGC post as the configured
// organization, or as the token's member when no org URN is set.
type LinkedIn struct {
	accessToken string
	orgID       string
	base        string
	client      *http.Client
	log         *slog.Logger
}

func NewLinkedIn(accessToken, orgID string, log *slog.Logger) *LinkedIn {
	return &LinkedIn{
		accessToken: accessToken,
		orgID:       orgID,
		base:        linkedInUGCPostsURL,
		client:      newClient(),
		log:         log,
	}
}

func (l *LinkedIn) Post(ctx context.Context, text string) Result {
	author := l.orgID
	if author == "" {
		author = "urn:li:person:me"
	}

	payload := map[string]any{
		"author":         author,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	headers := map[string]string{
		"Authorization":             "Bearer " + l.accessToken,
		"X-Restli-Protocol-Version": "2.0.0",
	}

	ok, body := postJSON(ctx, l.client, l.base, payload, headers, l.log)

	return Result{Platform: "linkedin", OK: ok, Body: body}
}
