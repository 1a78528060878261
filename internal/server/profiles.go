package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pressdesk/internal/channel"
	"pressdesk/internal/domain"
	"pressdesk/internal/store"
)

func (s *Server) handleListProfiles(c *gin.Context) {
	names, err := s.db.ListProfiles(c.Request.Context())
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to list profiles",
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list profiles"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": names})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	name := c.Param("name")

	profile, err := s.db.LoadProfile(c.Request.Context(), name)
	if errors.Is(err, store.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "profile not found"})

		return
	}
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to load profile",
			"error", err,
			"profile", name)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load profile"})

		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) handlePutProfile(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})

		return
	}

	// The path segment wins over any name in the body, and channel
	// values are re-validated against the closed vocabulary.
	profile.Name = name
	if len(profile.Channels) == 0 {
		profile.Channels = channel.ParseSet(nil)
	}

	if err := s.db.SaveProfile(c.Request.Context(), profile); err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to save profile",
			"error", err,
			"profile", name)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save profile"})

		return
	}

	c.JSON(http.StatusOK, profile)
}
