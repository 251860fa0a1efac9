package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// applicationHandler handles HTTP requests related to applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
}

// newApplicationHandler creates a new applicationHandler.
func newApplicationHandler(as portssvc.ApplicationSvcFacade) *applicationHandler {
	return &applicationHandler{
		applicationService: as,
	}
}

// registerApplicationRoutes registers routes for submitting and driving
// applications through the pipeline.
func registerApplicationRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade) {
	h := newApplicationHandler(applicationService)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.submitApplication)
		applications.GET("/:application_id", h.getApplication)
		applications.POST("/:application_id/review", h.reviewDecision)
		applications.POST("/:application_id/offer-response", h.respondToOffer)
	}
}

// submitApplication godoc
// @Summary Submit a new application
// @Description Creates a new application against an open job posting for the calling candidate.
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input or closed posting"
// @Failure 409 {object} map[string]string "Duplicate submission"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	applicantUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.SubmitApplication(c.Request.Context(), req, applicantUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Application submitted", slog.String("application_id", app.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// getApplication godoc
// @Summary Get an application
// @Description Retrieves one application. Caller must be a participant.
// @Tags applications
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Application not found"
// @Security BearerAuth
// @Router /applications/{application_id} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	applicationID := c.Param("application_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.GetApplicationByID(c.Request.Context(), applicationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// reviewDecision godoc
// @Summary Resolve the review stage
// @Description Records the hiring side's review outcome. Only "reject" resolves here; acceptance happens through the availability invitation.
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   decision body dto.ReviewDecisionRequest true "Review decision"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Caller may not review"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Security BearerAuth
// @Router /applications/{application_id}/review [post]
func (h *applicationHandler) reviewDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.ReviewDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.ReviewDecision(c.Request.Context(), applicationID, req.Decision, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Review decision recorded",
		slog.String("application_id", applicationID),
		slog.String("decision", req.Decision))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// respondToOffer godoc
// @Summary Respond to an offer
// @Description Records the candidate's accept or decline of an issued offer.
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   decision body dto.OfferResponseRequest true "Offer response"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} map[string]string "Caller is not the applicant"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Security BearerAuth
// @Router /applications/{application_id}/offer-response [post]
func (h *applicationHandler) respondToOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.OfferResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RespondToOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.RespondToOffer(c.Request.Context(), applicationID, req.Decision, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Offer response recorded",
		slog.String("application_id", applicationID),
		slog.String("decision", req.Decision))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}
