// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/savings_goal"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// SavingsGoalController handles savings goal endpoints.
type SavingsGoalController struct {
	listUseCase       *savings_goal.ListSavingsGoalsUseCase
	createUseCase     *savings_goal.CreateSavingsGoalUseCase
	getUseCase        *savings_goal.GetSavingsGoalUseCase
	updateUseCase     *savings_goal.UpdateSavingsGoalUseCase
	contributeUseCase *savings_goal.ContributeUseCase
	deleteUseCase     *savings_goal.DeleteSavingsGoalUseCase
}

// NewSavingsGoalController creates a new savings goal controller instance.
func NewSavingsGoalController(
	listUseCase *savings_goal.ListSavingsGoalsUseCase,
	createUseCase *savings_goal.CreateSavingsGoalUseCase,
	getUseCase *savings_goal.GetSavingsGoalUseCase,
	updateUseCase *savings_goal.UpdateSavingsGoalUseCase,
	contributeUseCase *savings_goal.ContributeUseCase,
	deleteUseCase *savings_goal.DeleteSavingsGoalUseCase,
) *SavingsGoalController {
	return &SavingsGoalController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		contributeUseCase: contributeUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// List handles GET /savings-goals requests.
func (c *SavingsGoalController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var query dto.ListSavingsGoalsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Status must be: active, completed, or all",
			Code:  string(domainerror.ErrCodeInvalidSavingsGoalStatus),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), savings_goal.ListSavingsGoalsInput{
		UserID: userID,
		Status: entity.SavingsGoalStatus(query.Status),
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsGoalListResponse(output.Goals))
}

// Create handles POST /savings-goals requests.
func (c *SavingsGoalController) Create(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateSavingsGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSavingsGoalFields),
		})
		return
	}

	deadline, err := parseOptionalDate(req.Deadline)
	if err != nil {
		c.invalidDeadline(ctx)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), savings_goal.CreateSavingsGoalInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     deadline,
		Icon:         req.Icon,
		Color:        req.Color,
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(output.Goal))
}

// Get handles GET /savings-goals/:id requests.
func (c *SavingsGoalController) Get(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	goalID, ok := pathID(ctx, "savings goal")
	if !ok {
		return
	}

	goal, err := c.getUseCase.Execute(ctx.Request.Context(), savings_goal.GetSavingsGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// Update handles PATCH /savings-goals/:id requests.
func (c *SavingsGoalController) Update(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	goalID, ok := pathID(ctx, "savings goal")
	if !ok {
		return
	}

	var req dto.UpdateSavingsGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingSavingsGoalFields),
		})
		return
	}

	deadline, err := parseOptionalDate(req.Deadline)
	if err != nil {
		c.invalidDeadline(ctx)
		return
	}

	goal, err := c.updateUseCase.Execute(ctx.Request.Context(), savings_goal.UpdateSavingsGoalInput{
		GoalID:        goalID,
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		Deadline:      deadline,
		ClearDeadline: req.ClearDeadline,
		Icon:          req.Icon,
		Color:         req.Color,
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// Contribute handles POST /savings-goals/:id/contributions requests.
func (c *SavingsGoalController) Contribute(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	goalID, ok := pathID(ctx, "savings goal")
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidContributionAmount),
		})
		return
	}

	goal, err := c.contributeUseCase.Execute(ctx.Request.Context(), savings_goal.ContributeInput{
		GoalID: goalID,
		UserID: userID,
		Amount: req.Amount,
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// Delete handles DELETE /savings-goals/:id requests.
func (c *SavingsGoalController) Delete(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	goalID, ok := pathID(ctx, "savings goal")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), savings_goal.DeleteSavingsGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleSavingsGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SavingsGoalController) invalidDeadline(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid deadline format, expected YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeMissingSavingsGoalFields),
	})
}

// handleSavingsGoalError handles savings goal errors and returns appropriate HTTP responses.
func (c *SavingsGoalController) handleSavingsGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.SavingsGoalError
	if errors.As(err, &goalErr) {
		ctx.JSON(c.getStatusCodeForSavingsGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSavingsGoalError maps savings goal error codes to HTTP status codes.
func (c *SavingsGoalController) getStatusCodeForSavingsGoalError(code domainerror.SavingsGoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeSavingsGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedSavingsGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidContributionAmount,
		domainerror.ErrCodeInvalidSavingsGoalStatus,
		domainerror.ErrCodeMissingSavingsGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
