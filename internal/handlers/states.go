package handlers

import (
	"net/http"

	"animated_gauge/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      List entity states
// @Tags         states
// @Produce      json
// @Success      200  {array}   models.EntityState
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/states [get]
func (h *Handler) listStates(c *gin.Context) {
	states, err := h.services.States.All(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "states_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, states)
}

// @Summary      Publish an entity state
// @Description  Stores the snapshot and pushes it to every card bound to the entity
// @Tags         states
// @Accept       json
// @Produce      json
// @Param        body  body      models.EntityState  true  "Snapshot"
// @Success      200   {object}  models.EntityState
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/states [post]
// @Security     BearerAuth
func (h *Handler) publishState(c *gin.Context) {
	var input models.EntityState
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	stored, err := h.services.Publish(c.Request.Context(), input)
	if err != nil {
		h.respondServiceError(c, "state_publish_failed", err, "entity", input.EntityID)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// @Summary      Latest state of an entity
// @Tags         states
// @Produce      json
// @Param        entity  path      string  true  "Entity id"
// @Success      200     {object}  models.EntityState
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/states/{entity} [get]
func (h *Handler) getEntityState(c *gin.Context) {
	st, err := h.services.Latest(c.Request.Context(), c.Param("entity"))
	if err != nil {
		h.respondServiceError(c, "state_get_failed", err, "entity", c.Param("entity"))
		return
	}
	c.JSON(http.StatusOK, st)
}
