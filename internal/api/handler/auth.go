package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

// generateViewerJWT signs a token carrying the viewer's anonymous id.
func (h *Handler) generateViewerJWT(viewerID string) (string, error) {
	claims := jwt.MapClaims{
		"viewer_id": viewerID,
		"exp":       time.Now().Add(time.Hour * 72).Unix(),
		"iss":       "omnichat-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateViewerToken parses a viewer token and returns the viewer id.
func (h *Handler) validateViewerToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.JWTSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	viewerID, ok := claims["viewer_id"].(string)
	if !ok || viewerID == "" {
		return "", fmt.Errorf("token has no viewer_id claim")
	}
	return viewerID, nil
}

// GetAnonID creates an anonymous viewer identity and returns it with a JWT
// that the /ws endpoint accepts.
func (h *Handler) GetAnonID(c *gin.Context) {
	viewerID := uuid.New().String()

	token, err := h.generateViewerJWT(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "viewer_id": viewerID})
}
