package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sentinel/internal/compare"
)

type CompareHandler struct {
	svc *compare.Service
}

func NewCompareHandler(svc *compare.Service) *CompareHandler {
	return &CompareHandler{svc: svc}
}

// Compare accepts a multipart probe image and ranks it against the roster's
// embedded photos. The response is either a match or an explicit no-match;
// collaborator failures never produce a guess.
func (h *CompareHandler) Compare(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "comparison not configured"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	probe, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
		return
	}

	result, err := h.svc.CompareProbe(c.Request.Context(), probe, "compare-api")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
