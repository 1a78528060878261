package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pressdesk/internal/channel"
	"pressdesk/internal/domain"
	"pressdesk/internal/extract"
	"pressdesk/internal/rewrite"
)

// sectionByChannel maps each output channel to the completion section
// it renders.
var sectionByChannel = map[channel.Channel]rewrite.Section{
	channel.Press:     rewrite.SectionPressRelease,
	channel.Website:   rewrite.SectionWebsiteArticle,
	channel.Social:    rewrite.SectionSocialFBIG,
	channel.Facebook:  rewrite.SectionSocialFBIG,
	channel.Instagram: rewrite.SectionSocialFBIG,
	channel.LinkedIn:  rewrite.SectionSocialLinkedIn,
	channel.X:         rewrite.SectionSocialX,
}

type generateResponse struct {
	Source   rewrite.Source                  `json:"source"`
	Reason   string                          `json:"reason,omitempty"`
	PhotoURL string                          `json:"photo_url,omitempty"`
	Results  map[string]domain.ChannelResult `json:"results"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := s.resolveProfile(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

		return
	}

	pasted := strings.TrimSpace(c.PostForm("text"))

	var parts []string

	if filesText := s.extractUploads(c); filesText != "" {
		parts = append(parts, filesText)
	}

	urls := extract.FindURLs(c.PostForm("urls") + "\n" + pasted)
	if urlText := s.extractor.FromURLs(ctx, urls); urlText != "" {
		parts = append(parts, urlText)
	}

	if pasted != "" {
		parts = append(parts, pasted)
	}

	sourceText := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if sourceText == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "no usable input: provide text, files or URLs",
		})

		return
	}

	photoURL := s.savePhoto(c)

	outcome := s.generator.Generate(ctx, rewrite.Request{
		SourceText:   sourceText,
		Profile:      profile,
		Audience:     c.DefaultPostForm("audience", "cittadini"),
		Topics:       c.PostForm("topics"),
		PhotoURL:     photoURL,
		Hashtags:     c.DefaultPostForm("hashtags", "true") == "true",
		CallToAction: c.DefaultPostForm("call_to_action", "true") == "true",
	})

	results := make(map[string]domain.ChannelResult, len(profile.Channels))
	for _, ch := range profile.Channels {
		section := sectionByChannel[ch]

		formatted := channel.Format(outcome.Sections[section], ch)

		result := domain.ChannelResult{Text: formatted}
		if ch.ShortForm() {
			result.Chunks = channel.Split(formatted, s.cfg.ShortPostLimit)
		}

		results[ch.String()] = result
	}

	draft := domain.Draft{
		CreatedAt: time.Now().UTC(),
		Profile:   profile,
		Input:     sourceText,
		Results:   results,
	}
	if err := s.drafts.Append(draft); err != nil {
		s.log.ErrorContext(ctx, "Failed to append draft",
			"error", err,
			"profile", profile.Name)
	}

	c.JSON(http.StatusOK, generateResponse{
		Source:   outcome.Source,
		Reason:   outcome.Reason,
		PhotoURL: photoURL,
		Results:  results,
	})
}

// resolveProfile loads a saved profile when the request names one and
// otherwise builds it from the inline form fields.
func (s *Server) resolveProfile(c *gin.Context) (domain.Profile, error) {
	if name := strings.TrimSpace(c.PostForm("profile")); name != "" && s.db != nil {
		profile, err := s.db.LoadProfile(c.Request.Context(), name)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("profile %q: %w", name, err)
		}

		return profile, nil
	}

	return domain.Profile{
		Name:         c.PostForm("name"),
		Role:         c.PostForm("role"),
		Organization: c.PostForm("organization"),
		Tones:        splitField(c.PostForm("tones")),
		CustomTone:   c.PostForm("custom_tone"),
		UseEmoji:     c.DefaultPostForm("use_emoji", "true") == "true",
		Channels:     channel.ParseSet(splitField(c.PostForm("channels"))),
		StyleGuide:   c.PostForm("style_guide"),
	}, nil
}

// extractUploads saves every uploaded source file and extracts its
// text. Upload or extraction failures degrade to skipped files.
func (s *Server) extractUploads(c *gin.Context) string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return ""
	}

	var paths []string

	for _, file := range form.File["files"] {
		if file.Filename == "" {
			continue
		}

		dest := filepath.Join(s.cfg.UploadDir, randomName(file.Filename))
		if err := c.SaveUploadedFile(file, dest); err != nil {
			s.log.WarnContext(c.Request.Context(), "Failed to save upload",
				"error", err,
				"filename", file.Filename)

			continue
		}

		paths = append(paths, dest)
	}

	return s.extractor.FromFiles(c.Request.Context(), paths)
}

// savePhoto stores an attached photo and returns its public URL, or
// an empty string when no photo was sent.
func (s *Server) savePhoto(c *gin.Context) string {
	file, err := c.FormFile("photo")
	if err != nil || file == nil || file.Filename == "" {
		return ""
	}

	name := randomName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		s.log.WarnContext(c.Request.Context(), "Failed to save photo",
			"error", err,
			"filename", file.Filename)

		return ""
	}

	return s.cfg.BasePublicURL + "/uploads/" + name
}

func randomName(original string) string {
	buf := make([]byte, 16)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf) + "_" + filepath.Base(original)
}

func splitField(s string) []string {
	var values []string

	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}
