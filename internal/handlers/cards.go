package handlers

import (
	"net/http"

	"animated_gauge/internal/card"
	"animated_gauge/internal/models"

	"github.com/gin-gonic/gin"
)

const svgContentType = "image/svg+xml; charset=utf-8"

// cardResponse is a registry entry together with its layout hint.
type cardResponse struct {
	ID       string             `json:"id"`
	Config   models.GaugeConfig `json:"config"`
	CardSize int                `json:"card_size"`
}

func newCardResponse(c models.Card) cardResponse {
	return cardResponse{ID: c.ID, Config: c.Config, CardSize: card.Size}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List gauge cards
// @Tags         cards
// @Produce      json
// @Success      200  {array}   cardResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/cards [get]
func (h *Handler) listCards(c *gin.Context) {
	cards, err := h.services.Cards.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "cards_list_failed", err)
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for _, crd := range cards {
		out = append(out, newCardResponse(crd))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Get a gauge card
// @Tags         cards
// @Produce      json
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/cards/{id} [get]
func (h *Handler) getCard(c *gin.Context) {
	crd, err := h.services.Cards.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, "card_get_failed", err, "card", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, newCardResponse(crd))
}

// @Summary      Replace a card config
// @Description  The body is validated and swaps the whole config; open streams switch to it
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Card id"
// @Param        body  body      map[string]interface{}  true  "Card config"
// @Success      200   {object}  cardResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/cards/{id} [put]
// @Security     BearerAuth
func (h *Handler) replaceCard(c *gin.Context) {
	var raw map[string]any
	if ok := h.bindJSONOrBadRequest(c, &raw); !ok {
		return
	}
	id := c.Param("id")
	crd, err := h.services.Cards.Replace(c.Request.Context(), id, raw)
	if err != nil {
		h.respondServiceError(c, "card_replace_failed", err, "card", id)
		return
	}
	if h.log != nil {
		subject, _ := c.Get(subjectCtxKey)
		h.log.Infow("card_replaced", "card", id, "entity", crd.Config.Entity, "by", subject)
	}
	c.JSON(http.StatusOK, newCardResponse(crd))
}

// @Summary      Static scene of a card
// @Description  Composed at the entity's current raw value, without animation
// @Tags         cards
// @Produce      json
// @Param        id    path      string  true   "Card id"
// @Param        lang  query     string  false  "Language (en, pl, de)"
// @Success      200   {object}  service.Snapshot
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/cards/{id}/scene [get]
func (h *Handler) cardScene(c *gin.Context) {
	snap, err := h.services.Snapshot(c.Request.Context(), c.Param("id"), c.Query("lang"), c.GetHeader("Accept-Language"))
	if err != nil {
		h.respondServiceError(c, "card_scene_failed", err, "card", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Static SVG of a card
// @Tags         cards
// @Produce      image/svg+xml
// @Param        id    path      string  true   "Card id"
// @Param        lang  query     string  false  "Language (en, pl, de)"
// @Success      200   {string}  string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/cards/{id}/svg [get]
func (h *Handler) cardSVG(c *gin.Context) {
	snap, err := h.services.Snapshot(c.Request.Context(), c.Param("id"), c.Query("lang"), c.GetHeader("Accept-Language"))
	if err != nil {
		h.respondServiceError(c, "card_svg_failed", err, "card", c.Param("id"))
		return
	}
	c.Data(http.StatusOK, svgContentType, []byte(snap.SVG))
}
