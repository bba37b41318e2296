package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/app/services"
	"github.com/educonnect/educonnect/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// UpdateProfile updates the authenticated user's profile
// @Summary Update profile
// @Description Updates profile fields and optionally uploads a resume (volunteers) or profile picture. Multipart form.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param firstName formData string false "First name"
// @Param lastName formData string false "Last name"
// @Param email formData string false "Email address"
// @Param description formData string false "Profile description"
// @Param educationQualifications formData string false "Education qualifications (volunteers)"
// @Param subjects formData string false "Taught subjects (volunteers)"
// @Param experience formData string false "Teaching experience (volunteers)"
// @Param resume formData file false "Resume, PDF or Word, max 5MB (volunteers)"
// @Param profilePicture formData file false "Profile picture image, max 5MB"
// @Success 200 {object} dto.APIResponse{data=models.User} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid field or file"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// File parts are optional, a missing part is not an error
	resume, _ := ctx.FormFile("resume")
	picture, _ := ctx.FormFile("profilePicture")

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req, resume, picture)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}
