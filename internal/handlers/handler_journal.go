package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// journalHandler handles HTTP requests for round feedback and the
// application timeline.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers feedback and timeline routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	rounds := rg.Group("/rounds/:interview_id/feedback")
	{
		rounds.POST("", h.addFeedback)
		rounds.GET("", h.listFeedback)
	}

	journal := rg.Group("/applications/:application_id/journal")
	{
		journal.POST("", h.addJournalEntry)
		journal.GET("", h.listJournal)
	}
}

// addFeedback godoc
// @Summary Add feedback to a round
// @Description Appends one immutable feedback record to an interview round. Rejected once the round is completed.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   interview_id path string true "Interview ID"
// @Param   feedback body dto.AddFeedbackRequest true "Feedback"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string "Rating out of range"
// @Failure 409 {object} map[string]string "Round completed"
// @Security BearerAuth
// @Router /rounds/{interview_id}/feedback [post]
func (h *journalHandler) addFeedback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	interviewID := c.Param("interview_id")

	var req dto.AddFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddFeedback", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	feedback, err := h.journalService.AddFeedback(c.Request.Context(), interviewID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Feedback recorded", slog.String("interview_id", interviewID))
	c.JSON(http.StatusCreated, dto.ToFeedbackResponse(feedback))
}

// listFeedback godoc
// @Summary List feedback for a round
// @Description Retrieves a round's feedback, newest first. Participants only.
// @Tags journal
// @Produce  json
// @Param   interview_id path string true "Interview ID"
// @Success 200 {array} dto.FeedbackResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /rounds/{interview_id}/feedback [get]
func (h *journalHandler) listFeedback(c *gin.Context) {
	interviewID := c.Param("interview_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	feedback, err := h.journalService.ListFeedbackByRound(c.Request.Context(), interviewID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackResponses(feedback))
}

// addJournalEntry godoc
// @Summary Add a timeline entry
// @Description Appends one entry to an application's audit timeline.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   entry body dto.AddJournalEntryRequest true "Timeline entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Rating out of range"
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /applications/{application_id}/journal [post]
func (h *journalHandler) addJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.AddJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.AddJournalEntry(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournal godoc
// @Summary List an application's timeline
// @Description Retrieves the timeline in chronological order using token-based pagination. Participants only.
// @Tags journal
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /applications/{application_id}/journal [get]
func (h *journalHandler) listJournal(c *gin.Context) {
	applicationID := c.Param("application_id")

	var params dto.ListJournalParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.journalService.ListJournal(c.Request.Context(), applicationID, userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
