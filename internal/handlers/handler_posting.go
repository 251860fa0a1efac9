package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// postingHandler handles HTTP requests scoped to a job posting.
type postingHandler struct {
	applicationService portssvc.ApplicationSvcFacade
	reportingService   portssvc.ReportingSvcFacade
}

func newPostingHandler(as portssvc.ApplicationSvcFacade, rs portssvc.ReportingSvcFacade) *postingHandler {
	return &postingHandler{
		applicationService: as,
		reportingService:   rs,
	}
}

// registerPostingRoutes registers the posting-scoped listing and reporting routes.
func registerPostingRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newPostingHandler(applicationService, reportingService)

	postings := rg.Group("/postings/:posting_id")
	{
		postings.GET("/applications", h.listApplications)
		postings.GET("/summary", h.pipelineSummary)
	}
}

// listApplications godoc
// @Summary List applications for a posting
// @Description Retrieves a paginated list of applications submitted against a posting, newest first. Hiring side only.
// @Tags postings
// @Produce  json
// @Param   posting_id path string true "Job Posting ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 403 {object} map[string]string "Caller may not review"
// @Failure 404 {object} map[string]string "Posting not found"
// @Security BearerAuth
// @Router /postings/{posting_id}/applications [get]
func (h *postingHandler) listApplications(c *gin.Context) {
	postingID := c.Param("posting_id")

	var params dto.ListApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.applicationService.ListApplicationsByPosting(c.Request.Context(), postingID, userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// pipelineSummary godoc
// @Summary Pipeline summary for a posting
// @Description Reports per-stage application counts for a posting. Hiring side only.
// @Tags postings
// @Produce  json
// @Param   posting_id path string true "Job Posting ID"
// @Success 200 {object} dto.PipelineSummaryResponse
// @Failure 403 {object} map[string]string "Caller may not review"
// @Failure 404 {object} map[string]string "Posting not found"
// @Security BearerAuth
// @Router /postings/{posting_id}/summary [get]
func (h *postingHandler) pipelineSummary(c *gin.Context) {
	postingID := c.Param("posting_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.PipelineSummary(c.Request.Context(), postingID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
