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

// CompanyHandler exposes the acting user's company record.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Get returns the caller's company.
func (h *CompanyHandler) Get(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	company, err := h.companyService.Get(user.CompanyID)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// Update renames the caller's company. The route is admin-gated.
func (h *CompanyHandler) Update(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type UpdateRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateName(user.CompanyID, req.Name)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

func respondCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCompanyNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
