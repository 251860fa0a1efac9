package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/middleware"
)

// slotHandler handles HTTP requests for availability slots and the match engine.
type slotHandler struct {
	slotService  portssvc.SlotSvcFacade
	matchService portssvc.MatchSvcFacade
}

func newSlotHandler(ss portssvc.SlotSvcFacade, ms portssvc.MatchSvcFacade) *slotHandler {
	return &slotHandler{
		slotService:  ss,
		matchService: ms,
	}
}

// registerSlotRoutes registers availability and match suggestion routes.
func registerSlotRoutes(rg *gin.RouterGroup, slotService portssvc.SlotSvcFacade, matchService portssvc.MatchSvcFacade) {
	h := newSlotHandler(slotService, matchService)

	applications := rg.Group("/applications/:application_id")
	{
		applications.POST("/slots", h.addSlot)
		applications.GET("/slots", h.listSlots)
		applications.GET("/matches", h.suggestMatches)
	}

	slots := rg.Group("/slots/:slot_id")
	{
		slots.PUT("", h.updateSlot)
		slots.DELETE("", h.removeSlot)
	}
}

// addSlot godoc
// @Summary Add an availability slot
// @Description Records a new availability window owned by the caller for an application.
// @Tags slots
// @Accept  json
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Param   slot body dto.CreateSlotRequest true "Availability window"
// @Success 201 {object} dto.SlotResponse
// @Failure 400 {object} map[string]string "Window invalid or already passed"
// @Failure 409 {object} map[string]string "Duplicate window"
// @Security BearerAuth
// @Router /applications/{application_id}/slots [post]
func (h *slotHandler) addSlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddSlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slot, err := h.slotService.AddSlot(c.Request.Context(), applicationID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Availability slot added", slog.String("slot_id", slot.SlotID))
	c.JSON(http.StatusCreated, dto.ToSlotResponse(slot))
}

// listSlots godoc
// @Summary List availability slots
// @Description Retrieves every slot submitted for an application. Participants only.
// @Tags slots
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Success 200 {array} dto.SlotResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /applications/{application_id}/slots [get]
func (h *slotHandler) listSlots(c *gin.Context) {
	applicationID := c.Param("application_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slots, err := h.slotService.ListSlots(c.Request.Context(), applicationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSlotResponses(slots))
}

// suggestMatches godoc
// @Summary Suggest interview windows
// @Description Intersects candidate and hiring-side availability, excluding windows that collide with scheduled interviews, ranked Monday-first then by start time.
// @Tags slots
// @Produce  json
// @Param   application_id path string true "Application ID"
// @Success 200 {array} dto.MatchSuggestionResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /applications/{application_id}/matches [get]
func (h *slotHandler) suggestMatches(c *gin.Context) {
	applicationID := c.Param("application_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	windows, err := h.matchService.SuggestMatches(c.Request.Context(), applicationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchSuggestionResponses(windows))
}

// updateSlot godoc
// @Summary Move an availability slot
// @Description Rewrites a slot's window. Owner only, and only before the application advances past the slot's origin stage.
// @Tags slots
// @Accept  json
// @Produce  json
// @Param   slot_id path string true "Slot ID"
// @Param   slot body dto.UpdateSlotRequest true "New window"
// @Success 200 {object} dto.SlotResponse
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 409 {object} map[string]string "Stage advanced past origin"
// @Security BearerAuth
// @Router /slots/{slot_id} [put]
func (h *slotHandler) updateSlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	slotID := c.Param("slot_id")

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slot, err := h.slotService.UpdateSlot(c.Request.Context(), slotID, req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSlotResponse(slot))
}

// removeSlot godoc
// @Summary Remove an availability slot
// @Description Deletes a slot under the same ownership and staleness rules as updates.
// @Tags slots
// @Produce  json
// @Param   slot_id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 409 {object} map[string]string "Stage advanced past origin"
// @Security BearerAuth
// @Router /slots/{slot_id} [delete]
func (h *slotHandler) removeSlot(c *gin.Context) {
	slotID := c.Param("slot_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.slotService.RemoveSlot(c.Request.Context(), slotID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
