package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/prestamos-api/internal/jobs"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// @Summary Get Job Status
// @Description Worker statistics and scheduled jobs
// @Tags Jobs
// @Produce json
// @Success 200 {object} services.JobStatus
// @Security BearerAuth
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.GetStatus())
}

// @Summary Trigger Job
// @Description Queue an immediate run of a scheduled job
// @Tags Jobs
// @Produce json
// @Param name path string true "Job name"
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /jobs/{name}/trigger [post]
func (h *JobHandler) Trigger(c *gin.Context) {
	name := c.Param("name")
	if err := h.jobService.Trigger(name); err != nil {
		if errors.Is(err, jobs.ErrUnknownJob) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job": name, "status": "queued"})
}
