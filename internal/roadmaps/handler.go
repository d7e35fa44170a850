package roadmaps

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goal-detector/internal/questionnaire"
	"goal-detector/internal/shared/server/middleware"
	"goal-detector/internal/shared/server/respond"
	"goal-detector/internal/shared/util"
)

const maxRequestBytes = 64 << 10

// Handler wires HTTP handlers to the roadmap service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches roadmap, catalog and questionnaire routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/questionnaire", h.getQuestionnaire)
	rg.GET("/goals", h.listGoals)
	rg.GET("/goals/:id", h.getGoal)
	rg.POST("/roadmaps", h.createRoadmap)
	rg.GET("/roadmaps/:id", h.getRoadmap)
	rg.GET("/roadmaps/:id/download", h.downloadRoadmap)
}

type createRoadmapRequest struct {
	Profile   Profile                 `json:"profile"`
	Responses questionnaire.Responses `json:"responses"`
}

func (h *Handler) getQuestionnaire(c *gin.Context) {
	respond.OK(c, gin.H{"steps": questionnaire.Steps()})
}

func (h *Handler) listGoals(c *gin.Context) {
	goals := h.Svc.Catalog.Goals()
	respond.OK(c, gin.H{"goals": goals, "count": len(goals)})
}

func (h *Handler) getGoal(c *gin.Context) {
	goal, ok := h.Svc.Catalog.Get(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "goal not found", nil)
		return
	}
	respond.OK(c, goal)
}

func (h *Handler) createRoadmap(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req createRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be a JSON object with profile and responses", nil)
		return
	}

	roadmap, err := h.Svc.Generate(c.Request.Context(), GenerateInput{
		Profile:   req.Profile,
		Responses: req.Responses,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate roadmap", nil)
		}
		return
	}
	middleware.SetRoadmapID(c, roadmap.ID)
	respond.Created(c, "/api/v1/roadmaps/"+roadmap.ID, roadmap)
}

func (h *Handler) getRoadmap(c *gin.Context) {
	roadmapID := c.Param("id")
	middleware.SetRoadmapID(c, roadmapID)

	roadmap, err := h.Svc.Get(c.Request.Context(), roadmapID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	respond.OK(c, roadmap)
}

func (h *Handler) downloadRoadmap(c *gin.Context) {
	roadmapID := c.Param("id")
	middleware.SetRoadmapID(c, roadmapID)

	fileName, err := util.SanitizeFileName(ExportFileName(roadmapID))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid roadmap id", nil)
		return
	}
	data, err := h.Svc.Export(c.Request.Context(), roadmapID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	respond.Attachment(c, fileName, ExportContentType, data)
}

func (h *Handler) lookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "roadmap not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load roadmap", nil)
	}
}
