package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/roster"
	"github.com/your-org/sentinel/internal/storage"
	"github.com/your-org/sentinel/pkg/dto"
)

type SoldierHandler struct {
	svc *roster.Service
}

func NewSoldierHandler(svc *roster.Service) *SoldierHandler {
	return &SoldierHandler{svc: svc}
}

func (h *SoldierHandler) List(c *gin.Context) {
	soldiers, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.SoldierResponse, 0, len(soldiers))
	for _, s := range soldiers {
		resp = append(resp, soldierToResponse(&s))
	}

	c.JSON(http.StatusOK, dto.SoldierListResponse{Soldiers: resp, Total: len(resp)})
}

func (h *SoldierHandler) Create(c *gin.Context) {
	var req dto.SoldierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, err := h.svc.Create(c.Request.Context(), requestToInput(req))
	if err != nil {
		if errors.Is(err, roster.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, soldierToResponse(sol))
}

func (h *SoldierHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid soldier id"})
		return
	}

	var req dto.SoldierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sol, err := h.svc.Update(c.Request.Context(), id, requestToInput(req))
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "soldier not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, soldierToResponse(sol))
}

func (h *SoldierHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid soldier id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "soldier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func requestToInput(req dto.SoldierRequest) roster.Input {
	return roster.Input{
		Name:      req.Name,
		Position:  req.Position,
		Sex:       req.Sex,
		Age:       req.Age,
		Status:    req.Status,
		PhotoData: req.PhotoData,
	}
}

func soldierToResponse(s *models.Soldier) dto.SoldierResponse {
	return dto.SoldierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Position:  s.Position,
		Sex:       string(s.Sex),
		Age:       s.Age,
		Status:    string(s.Status),
		PhotoData: s.PhotoData,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
