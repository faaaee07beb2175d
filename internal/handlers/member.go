package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takamaro111/construction-management-app/internal/dto"
	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// MemberHandler exposes the privileged member-lifecycle operations.
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// ListMembers returns the members of the caller's company.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	members, err := h.memberService.ListMembers(user.CompanyID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToUserDTOs(members),
	})
}

// Invite creates a new member in the caller's company. The temporary
// password is included in the response for manual relay.
func (h *MemberHandler) Invite(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required,max=255"`
		Role  string `json:"role" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.memberService.Invite(services.InviteInput{
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		CompanyID: user.CompanyID,
		InvitedBy: user.ID,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Member invited",
		"user_id":       result.UserID,
		"temp_password": result.TempPassword,
		"email":         req.Email,
		"email_sent":    result.EmailSent,
		"email_message": result.EmailMessage,
	})
}

// Delete removes a member from the caller's company. A failed auth-account
// deletion after the profile row is gone is reported as a warning on a
// success response.
func (h *MemberHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	targetID := c.Param("id")

	type DeleteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.memberService.Delete(targetID, req.Email, user.ID, user.CompanyID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	response := gin.H{
		"success":   true,
		"message":   "Member deleted",
		"user_name": result.UserName,
		"email":     result.Email,
	}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, response)
}

// ResetPassword issues a new temporary password for a member.
func (h *MemberHandler) ResetPassword(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type ResetRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.memberService.ResetPassword(req.Email, user.CompanyID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Password reset",
		"temp_password": result.TempPassword,
		"email_sent":    result.EmailSent,
	})
}

// GetPassword recovers (or regenerates) a member's temporary password.
func (h *MemberHandler) GetPassword(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	targetID := c.Param("id")

	type GetPasswordRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req GetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	password, err := h.memberService.GetPassword(targetID, req.Email, user.CompanyID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"current_password": password,
		"is_temp_password": true,
	})
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequest(c, "This email address is already registered")
	case errors.Is(err, services.ErrEmailMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCompanyNotFound), errors.Is(err, services.ErrInviterNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvitationFailed), errors.Is(err, services.ErrPasswordOperation):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
