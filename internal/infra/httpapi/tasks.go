package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

type createTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	ClientID    string          `json:"clientId" binding:"required"`
	DueDate     string          `json:"dueDate" binding:"required"`
	Type        domain.TaskType `json:"type"`
	Priority    domain.Priority `json:"priority"`
	Completed   bool            `json:"completed"`
	EmailNotify bool            `json:"emailNotify"`
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	ClientID    *string          `json:"clientId"`
	DueDate     *string          `json:"dueDate"`
	Type        *domain.TaskType `json:"type"`
	Priority    *domain.Priority `json:"priority"`
	Completed   *bool            `json:"completed"`
	EmailNotify *bool            `json:"emailNotify"`
}

func (s *Server) listTasks(c *gin.Context) {
	st := s.store(c)
	uc := usecase.NewListTasks(st.Tasks, st.Clients, s.opts.Clock, s.opts.Location)
	out, err := uc.Execute(c.Request.Context(), usecase.ListTasksInput{
		ClientID:    c.Query("clientId"),
		PendingOnly: c.Query("pending") == "true",
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	tasks := make([]*domain.Task, len(out.Tasks))
	for i, lt := range out.Tasks {
		tasks[i] = lt.Task
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) getTask(c *gin.Context) {
	task, err := s.store(c).Tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if task == nil {
		s.writeError(c, domain.ErrTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req, usecase.MsgTaskFieldsRequired) {
		return
	}

	uc := usecase.NewCreateTask(s.store(c).Tasks, s.opts.Location, s.opts.Logger)
	out, err := uc.Execute(c.Request.Context(), usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		Type:        req.Type,
		Priority:    req.Priority,
		Completed:   req.Completed,
		EmailNotify: req.EmailNotify,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": out.Task})
}

func (s *Server) updateTask(c *gin.Context) {
	var req updateTaskRequest
	if !bindJSON(c, &req, "") {
		return
	}

	uc := usecase.NewUpdateTask(s.store(c).Tasks, s.opts.Location)
	out, err := uc.Execute(c.Request.Context(), usecase.UpdateTaskInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		Type:        req.Type,
		Priority:    req.Priority,
		Completed:   req.Completed,
		EmailNotify: req.EmailNotify,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": out.Task})
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := usecase.NewDeleteTask(s.store(c).Tasks).Execute(c.Request.Context(), usecase.DeleteTaskInput{ID: c.Param("id")}); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
