package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressdesk/internal/publish"
)

type publishRequest struct {
	Facebook  bool `json:"facebook"`
	Instagram bool `json:"instagram"`
	LinkedIn  bool `json:"linkedin"`
	X         bool `json:"x"`
	Telegram  bool `json:"telegram"`

	PressRelease   string `json:"press_release"`
	WebsiteArticle string `json:"website_article"`
	SocialFBIG     string `json:"social_fb_ig"`
	SocialLI       string `json:"social_li"`
	SocialX        string `json:"social_x"`

	PhotoFilename string `json:"photo_filename"`
}

func (s *Server) handlePublish(c *gin.Context) {
	ctx := c.Request.Context()

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})

		return
	}

	photoURL := ""
	if req.PhotoFilename != "" {
		photoURL = s.cfg.BasePublicURL + "/uploads/" + req.PhotoFilename
	}

	var results []publish.Result

	if req.Facebook {
		message := firstNonEmpty(req.SocialFBIG, req.WebsiteArticle, req.PressRelease)

		if s.publishers.Facebook != nil {
			results = append(results, s.publishers.Facebook.Post(ctx, message, photoURL))
		} else {
			results = append(results, notConfigured("facebook"))
		}
	}

	if req.Instagram {
		if s.publishers.Instagram != nil {
			results = append(results, s.publishers.Instagram.Post(ctx, req.SocialFBIG, photoURL))
		} else {
			results = append(results, notConfigured("instagram"))
		}
	}

	if req.LinkedIn {
		text := firstNonEmpty(req.SocialLI, req.WebsiteArticle)

		if s.publishers.LinkedIn != nil {
			results = append(results, s.publishers.LinkedIn.Post(ctx, text))
		} else {
			results = append(results, notConfigured("linkedin"))
		}
	}

	if req.X {
		if s.publishers.X != nil {
			results = append(results, s.publishers.X.Post(ctx, req.SocialX))
		} else {
			results = append(results, notConfigured("x"))
		}
	}

	if req.Telegram {
		message := firstNonEmpty(req.SocialFBIG, req.WebsiteArticle, req.PressRelease)

		if s.publishers.Telegram != nil {
			results = append(results, s.publishers.Telegram.Post(ctx, message))
		} else {
			results = append(results, notConfigured("telegram"))
		}
	}

	for _, result := range results {
		if !result.OK {
			s.log.WarnContext(ctx, "Publish attempt failed",
				"platform", result.Platform,
				"body", result.Body)
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func notConfigured(platform string) publish.Result {
	return publish.Result{
		Platform: platform,
		OK:       false,
		Body:     "platform is not configured",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
