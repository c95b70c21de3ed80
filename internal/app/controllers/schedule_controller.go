package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gesapp/ges-backend/internal/app/models/dto"
	"github.com/gesapp/ges-backend/internal/app/services"
	"github.com/gesapp/ges-backend/internal/middleware"
)

// ScheduleController handles schedule management endpoints
type ScheduleController struct {
	scheduleService *services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// CreateSchedule creates a new schedule slot
// @Summary Create a schedule slot
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule data"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule created"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/ [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	schedule, err := c.scheduleService.CreateSchedule(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(schedule))
}

// GetSchedule retrieves one schedule slot
// @Summary Get a schedule slot
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/ [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetSchedule(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule))
}

// ListSchedules retrieves schedule slots, optionally for one subject
// @Summary List schedule slots
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param subject_id query int false "Filter by subject"
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleResponse} "Schedules"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/ [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	var subjectID int64
	if raw := ctx.Query("subject_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject_id")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		subjectID = parsed
	}

	schedules, err := c.scheduleService.ListSchedules(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedules))
}

// UpdateSchedule replaces a schedule slot's fields
// @Summary Update a schedule slot
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.CreateScheduleRequest true "Schedule data"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Updated schedule"
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule data"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/ [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	schedule, err := c.scheduleService.UpdateSchedule(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule))
}

// DeleteSchedule removes a schedule slot
// @Summary Delete a schedule slot
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 204 "Schedule deleted"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{id}/ [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
