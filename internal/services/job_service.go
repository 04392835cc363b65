package services

import (
	"github.com/sjperalta/prestamos-api/internal/jobs"
)

// JobOverdueLoans is the name of the scheduled past-due sweep
const JobOverdueLoans = "overdue_loans"

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// JobStatus is the worker snapshot served by the jobs endpoint
type JobStatus struct {
	Stats     jobs.WorkerStats    `json:"stats"`
	Schedules []jobs.ScheduleInfo `json:"schedules"`
}

func (s *JobService) GetStatus() JobStatus {
	return JobStatus{
		Stats:     s.worker.GetStats(),
		Schedules: s.worker.Schedules(),
	}
}

// Trigger queues an immediate run of a named job
func (s *JobService) Trigger(name string) error {
	return s.worker.Trigger(name)
}
