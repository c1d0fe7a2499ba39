package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allinhq/allin-backend/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GetTasks is the single entry point of the daily pipeline: it returns the
// stored batch for (user, date) or generates one on the first request of the
// day. date defaults to today.
func (th *TaskHandler) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_date", err)
			return
		}
		date = parsed
	}
	tasks, err := th.taskService.GetOrGenerate(c.Request.Context(), userID, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (th *TaskHandler) SetCompleted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	task, err := th.taskService.SetCompleted(c.Request.Context(), userID, taskID, req.Completed)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, task)
}
