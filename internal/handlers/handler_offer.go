package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// offerHandler handles HTTP requests for offers.
type offerHandler struct {
	offerService portssvc.OfferSvcFacade
}

func newOfferHandler(os portssvc.OfferSvcFacade) *offerHandler {
	return &offerHandler{
		offerService: os,
	}
}

// registerOfferRoutes registers offer issuance and retrieval routes.
func registerOfferRoutes(rg *gin.RouterGroup, offerService portssvc.OfferSvcFacade) {
	h := newOfferHandler(offerService)

	offers := rg.Group("/applications/:application_id/offer")
	{
		offers.PUT("", h.issueOffer)
		offers.GET("", h.getOffer)
	}
}

// issueOffer godoc
// @Summary Issue or re-issue an offer
// @Description Creates the offer letter on first call and updates it in place on later calls. Only legal once the application reached the offer stage.
// @Tags offers
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   offer body dto.IssueOfferRequest true "Offer letter"
// @Success 200 {object} dto.OfferResponse
// @Failure 403 {object} map[string]string "Caller may not issue offers"
// @Failure 409 {object} map[string]string "Application not in offer stage"
// @Security BearerAuth
// @Router /applications/{application_id}/offer [put]
func (h *offerHandler) issueOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.IssueOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offer, err := h.offerService.IssueOrUpdateOffer(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Offer issued", slog.String("application_id", applicationID), slog.String("offer_id", offer.OfferID))
	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

// getOffer godoc
// @Summary Get the offer for an application
// @Description Retrieves the offer letter. Participants only.
// @Tags offers
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} map[string]string "No offer issued"
// @Security BearerAuth
// @Router /applications/{application_id}/offer [get]
func (h *offerHandler) getOffer(c *gin.Context) {
	applicationID := c.Param("application_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offer, err := h.offerService.GetOfferByApplication(c.Request.Context(), applicationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}
