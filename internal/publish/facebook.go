package publish

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
)

const graphAPIBase = "https://graph.facebook.com/v20.0"

// Facebook posts to a page feed, or as a photo post when an image URL
// is attached.
type Facebook struct {
	pageID      string
	accessToken string
	base        string
	client      *http.Client
	log         *slog.Logger
}

func NewFacebook(pageID, accessToken string, log *slog.Logger) *Facebook {
	return &Facebook{
		pageID:      pageID,
		accessToken: accessToken,
		base:        graphAPIBase,
		client:      newClient(),
		log:         log,
	}
}

func (f *Facebook) Post(ctx context.Context, message, imageURL string) Result {
	endpoint := f.base + "/" + f.pageID + "/feed"
	form := url.Values{
		"message":      {message},
		"access_token": {f.accessToken},
	}

	if imageURL != "" {
		endpoint = f.base + "/" + f.pageID + "/photos"
		form = url.Values{
			"url":          {imageURL},
			"caption":      {message},
			"access_token": {f.accessToken},
		}
	}

	ok, body := postForm(ctx, f.client, endpoint, form, f.log)

	return Result{Platform: "facebook", OK: ok, Body: body}
}
