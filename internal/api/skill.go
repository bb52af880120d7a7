package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meishi-app/backend/internal/service"
)

// SkillHandler exposes the skill catalog
type SkillHandler struct {
	skillService service.ISkillService
}

// NewSkillHandler creates a new SkillHandler instance
func NewSkillHandler(skillService service.ISkillService) *SkillHandler {
	return &SkillHandler{
		skillService: skillService,
	}
}

func (h *SkillHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/skills", h.ListSkills)
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillService.ListSkills(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}
	c.JSON(http.StatusOK, skills)
}
