package handlers

import (
	"net/http"

	"casa_arbol_gateway/internal/backend"
	"casa_arbol_gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// WorkspaceHandler exposes project, task and chat message endpoints.
type WorkspaceHandler struct {
	service services.WorkspaceService
}

// NewWorkspaceHandler creates the workspace handler.
func NewWorkspaceHandler(service services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

// ListProjects lists projects.
func (h *WorkspaceHandler) ListProjects(c *gin.Context) {
	page, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProject creates a project.
func (h *WorkspaceHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	project, err := h.service.CreateProject(c.Request.Context(), backend.CreateProjectParams{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListTasks lists a project's tasks.
func (h *WorkspaceHandler) ListTasks(c *gin.Context) {
	page, err := h.service.ListTasks(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateTask creates a task inside a project.
func (h *WorkspaceHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	task, err := h.service.CreateTask(c.Request.Context(), c.Param("project_id"), backend.CreateTaskParams{Title: req.Title})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListMessages lists chat messages.
func (h *WorkspaceHandler) ListMessages(c *gin.Context) {
	skip, limit := pageParams(c)
	page, err := h.service.ListMessages(c.Request.Context(), backend.ListMessagesParams{
		ChatID: c.Param("chat_id"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostMessage posts a chat message.
func (h *WorkspaceHandler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	message, err := h.service.PostMessage(c.Request.Context(), c.Param("chat_id"), backend.PostMessageParams{Content: req.Content})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
