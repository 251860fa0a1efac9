package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// interviewHandler handles HTTP requests for interview rounds.
type interviewHandler struct {
	interviewService portssvc.InterviewSvcFacade
}

func newInterviewHandler(is portssvc.InterviewSvcFacade) *interviewHandler {
	return &interviewHandler{
		interviewService: is,
	}
}

// registerInterviewRoutes registers invitation and round management routes.
func registerInterviewRoutes(rg *gin.RouterGroup, interviewService portssvc.InterviewSvcFacade) {
	h := newInterviewHandler(interviewService)

	applications := rg.Group("/applications/:application_id")
	{
		applications.POST("/invitation", h.sendInvitation)
		applications.POST("/rounds", h.scheduleRound)
		applications.GET("/rounds", h.listRounds)
		applications.PUT("/rounds/latest", h.rescheduleLatestRound)
	}

	rounds := rg.Group("/rounds/:interview_id")
	{
		rounds.POST("/cancel", h.cancelRound)
		rounds.POST("/complete", h.completeRound)
	}
}

// sendInvitation godoc
// @Summary Send an availability invitation
// @Description Accepts a reviewed application for interview and invites the candidate to submit availability. Requires a location.
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   invitation body dto.SendInvitationRequest true "Invitation details"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Location missing"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Security BearerAuth
// @Router /applications/{application_id}/invitation [post]
func (h *interviewHandler) sendInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendInvitation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.interviewService.SendAvailabilityInvitation(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Availability invitation sent", slog.String("application_id", applicationID))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// scheduleRound godoc
// @Summary Schedule an interview round
// @Description Books a new round at the confirmed instant and advances the application to the interview stage. Exactly one caller wins a race for the same instant.
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   round body dto.ScheduleRoundRequest true "Round details"
// @Success 201 {object} dto.InterviewResponse
// @Failure 409 {object} map[string]string "Instant taken or round already open"
// @Security BearerAuth
// @Router /applications/{application_id}/rounds [post]
func (h *interviewHandler) scheduleRound(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.ScheduleRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ScheduleRound", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	round, err := h.interviewService.ScheduleRound(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Interview round scheduled",
		slog.String("interview_id", round.InterviewID),
		slog.Int("round_number", round.RoundNumber))
	c.JSON(http.StatusCreated, dto.ToInterviewResponse(round))
}

// listRounds godoc
// @Summary List interview rounds
// @Description Retrieves all rounds of an application in round order. Participants only.
// @Tags interviews
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Success 200 {array} dto.InterviewResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /applications/{application_id}/rounds [get]
func (h *interviewHandler) listRounds(c *gin.Context) {
	applicationID := c.Param("application_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rounds, err := h.interviewService.ListRounds(c.Request.Context(), applicationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewResponses(rounds))
}

// rescheduleLatestRound godoc
// @Summary Reschedule the latest round
// @Description Moves the latest non-cancelled round to a new instant. Completed rounds are immutable.
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   round body dto.RescheduleRoundRequest true "New schedule"
// @Success 200 {object} dto.InterviewResponse
// @Failure 409 {object} map[string]string "Round completed or instant taken"
// @Security BearerAuth
// @Router /applications/{application_id}/rounds/latest [put]
func (h *interviewHandler) rescheduleLatestRound(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.RescheduleRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RescheduleLatestRound", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	round, err := h.interviewService.RescheduleLatestRound(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInterviewResponse(round))
}

// cancelRound godoc
// @Summary Cancel an interview round
// @Description Marks a round CANCELLED without touching the application's status or stage.
// @Tags interviews
// @Produce  json
// @Param   interview_id path string true "Interview ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string "Round already completed"
// @Security BearerAuth
// @Router /rounds/{interview_id}/cancel [post]
func (h *interviewHandler) cancelRound(c *gin.Context) {
	interviewID := c.Param("interview_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.interviewService.CancelRound(c.Request.Context(), interviewID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// completeRound godoc
// @Summary Complete an interview round
// @Description Marks the round COMPLETED, mirrors its feedback onto the application timeline, and fires the decision's transition atomically.
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   interview_id path string true "Interview ID"
// @Param   decision body dto.CompleteRoundRequest true "Round decision"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 409 {object} map[string]string "Round immutable or not latest"
// @Security BearerAuth
// @Router /rounds/{interview_id}/complete [post]
func (h *interviewHandler) completeRound(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	interviewID := c.Param("interview_id")

	var req dto.CompleteRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CompleteRound", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.interviewService.CompleteRound(c.Request.Context(), interviewID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Interview round completed",
		slog.String("interview_id", interviewID),
		slog.String("decision", req.Decision))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}
