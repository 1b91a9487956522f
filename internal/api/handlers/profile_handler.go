package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	github   services.GithubService
}

func NewProfileHandler(profiles services.ProfileService, github services.GithubService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, github: github}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.profiles.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpsertProfileRequest mirrors the legacy form field names; skills is
// the raw comma-separated string.
type UpsertProfileRequest struct {
	Status string `json:"status" binding:"required"`
	Skills string `json:"skills" binding:"required"`

	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`

	Youtube   *string `json:"youtube"`
	Twitter   *string `json:"twitter"`
	Linkedin  *string `json:"linkedin"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
}

// Upsert handles POST /api/profile. Fields absent from the request are
// left untouched on an existing profile; there is no way to clear a
// field through this endpoint.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	p, err := h.profiles.Upsert(c.Request.Context(), userID, services.UpsertProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Linkedin:       req.Linkedin,
		Facebook:       req.Facebook,
		Instagram:      req.Instagram,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// List handles GET /api/profile (public).
func (h *ProfileHandler) List(c *gin.Context) {
	out, err := h.profiles.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetByUser handles GET /api/profile/user/:user_id (public).
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	p, err := h.profiles.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteAccount handles DELETE /api/profile: posts, profile and user
// go away together.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

type AddExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	From        string `json:"from" binding:"required"`
	Location    string `json:"location"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	p, err := h.profiles.AddExperience(c.Request.Context(), userID, services.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.profiles.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type AddEducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	p, err := h.profiles.AddEducation(c.Request.Context(), userID, services.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.profiles.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GithubRepos handles GET /api/profile/github/:username (public).
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	repos, err := h.github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, repos)
}
