package v1

import (
	"net/http"
	"time"

	"go-devnetwork-backend/internal/delivery/http/response"
	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	// Public routes
	public.GET("/profile", handler.List)
	public.GET("/profile/user/:user_id", handler.GetByUser)

	// Private routes
	protected.GET("/profile/me", handler.Me)
	protected.POST("/profile", handler.Upsert)
	protected.PUT("/profile/experience", handler.AddExperience)
	protected.DELETE("/profile/experience/:exp_id", handler.RemoveExperience)
	protected.PUT("/profile/education", handler.AddEducation)
	protected.DELETE("/profile/education/:edu_id", handler.RemoveEducation)
	protected.DELETE("/profile", handler.DeleteAccount)
}

// ProfileRequest carries the upsert fields. Pointers keep absent fields
// distinguishable from empty ones.
type ProfileRequest struct {
	Status         *string `json:"status" binding:"required,min=1"`
	Skills         *string `json:"skills" binding:"required,min=1"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Me godoc
// @Summary      Get current user's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]string
// @Router       /profile/me [get]
// @Security     ApiKeyAuth
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// Upsert godoc
// @Summary      Create or update user profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      ProfileRequest  true  "Profile fields"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]interface{}
// @Router       /profile [post]
// @Security     ApiKeyAuth
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Messages(err)...))
		return
	}

	patch := domain.ProfilePatch{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}

	profile, err := h.profileUC.UpsertProfile(c.Request.Context(), userID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// List godoc
// @Summary      Get all profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}  domain.Profile
// @Router       /profile [get]
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUC.ListProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profiles)
}

// GetByUser godoc
// @Summary      Get profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User id"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]string
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	profile, err := h.profileUC.GetProfileByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// AddExperience godoc
// @Summary      Add profile experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        experience  body      ExperienceRequest  true  "Experience entry"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]interface{}
// @Router       /profile/experience [put]
// @Security     ApiKeyAuth
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Messages(err)...))
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		c.Error(err)
		return
	}

	exp := domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := h.profileUC.AddExperience(c.Request.Context(), userID, exp)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// RemoveExperience godoc
// @Summary      Delete one experience entry
// @Tags         profile
// @Produce      json
// @Param        exp_id  path      string  true  "Experience id"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]string
// @Router       /profile/experience/{exp_id} [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// AddEducation godoc
// @Summary      Add profile education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        education  body      EducationRequest  true  "Education entry"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]interface{}
// @Router       /profile/education [put]
// @Security     ApiKeyAuth
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Messages(err)...))
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		c.Error(err)
		return
	}

	edu := domain.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := h.profileUC.AddEducation(c.Request.Context(), userID, edu)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// RemoveEducation godoc
// @Summary      Delete one education entry
// @Tags         profile
// @Produce      json
// @Param        edu_id  path      string  true  "Education id"
// @Success      200  {object}  domain.Profile
// @Failure      400  {object}  map[string]string
// @Router       /profile/education/{edu_id} [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// DeleteAccount godoc
// @Summary      Delete profile and account
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /profile [delete]
// @Security     ApiKeyAuth
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"msg": "User deleted"})
}

const dateLayout = "2006-01-02"

func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, nil, apperror.Validation("From date must be formatted YYYY-MM-DD")
	}

	if toRaw == "" {
		return from, nil, nil
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, nil, apperror.Validation("To date must be formatted YYYY-MM-DD")
	}
	return from, &to, nil
}
