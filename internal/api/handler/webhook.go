package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"omnichat/backend/internal/models"
	"omnichat/backend/internal/platform"
)

// ReceiveWebhook ingests one platform webhook event. Providers retry (and
// eventually disable) endpoints that return non-200, so every parseable
// request is acknowledged with 200 regardless of the downstream outcome.
func (h *Handler) ReceiveWebhook(c *gin.Context) {
	p := models.Platform(c.Param("platform"))
	if !p.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown platform"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("ERROR: Failed to read %s webhook body: %v", p, err)
		c.Status(http.StatusOK)
		return
	}

	msg, err := platform.Normalize(p, body)
	if err != nil {
		if errors.Is(err, platform.ErrMalformedPayload) {
			// Acknowledge and drop. There is nothing the provider can
			// usefully retry here.
			log.Printf("WARNING: Dropping malformed %s webhook: %v", p, err)
		} else {
			log.Printf("ERROR: Failed to normalize %s webhook: %v", p, err)
		}
		c.Status(http.StatusOK)
		return
	}

	if err := h.Ingest.Handle(msg); err != nil {
		// Server-side storage failure. Still 200: a correctly-formed
		// request gives the provider no actionable retry path.
		log.Printf("ERROR: Ingest failed for %s/%s: %v", msg.Platform, msg.SenderID, err)
	}

	c.Status(http.StatusOK)
}

// VerifyFacebookWebhook answers Facebook's GET-based subscription handshake:
// echo hub.challenge when the verify token matches, 403 otherwise.
func (h *Handler) VerifyFacebookWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && h.VerifyToken != "" && token == h.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	c.Status(http.StatusForbidden)
}
