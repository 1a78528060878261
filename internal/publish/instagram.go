package publish

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// instagramSettleDelay gives the Graph API time to process the media
// container before the publish step.
const instagramSettleDelay = 2 * time.Second

// Instagram publishes via the Graph API's two-step flow: create a
// media container for the image, then publish it. An image URL is
// mandatory.
type Instagram struct {
	userID      string
	accessToken string
	base        string
	settleDelay time.Duration
	client      *http.Client
	log         *slog.Logger
}

func NewInstagram(userID, accessToken string, log *slog.Logger) *Instagram {
	return &Instagram{
		userID:      userID,
		accessToken: accessToken,
		base:        graphAPIBase,
		settleDelay: instagramSettleDelay,
		client:      newClient(),
		log:         log,
	}
}

func (i *Instagram) Post(ctx context.Context, caption, imageURL string) Result {
	if imageURL == "" {
		return Result{Platform: "instagram", OK: false, Body: "image URL is required"}
	}

	createForm := url.Values{
		"image_url":    {imageURL},
		"caption":      {caption},
		"access_token": {i.accessToken},
	}

	ok, body := postForm(ctx, i.client, i.base+"/"+i.userID+"/media", createForm, i.log)
	if !ok {
		return Result{Platform: "instagram", OK: false, Body: body}
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(body), &container); err != nil || container.ID == "" {
		return Result{Platform: "instagram", OK: false, Body: "media container ID missing: " + body}
	}

	select {
	case <-time.After(i.settleDelay):
	case <-ctx.Done():
		return Result{Platform: "instagram", OK: false, Body: ctx.Err().Error()}
	}

	publishForm := url.Values{
		"creation_id":  {container.ID},
		"access_token": {i.accessToken},
	}

	ok, body = postForm(ctx, i.client, i.base+"/"+i.userID+"/media_publish", publishForm, i.log)

	return Result{Platform: "instagram", OK: ok, Body: body}
}
