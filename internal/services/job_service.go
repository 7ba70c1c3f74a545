package services

import (
	"context"
	"time"

	"github.com/sjperalta/aml-lists-api/internal/jobs"
	"github.com/sjperalta/aml-lists-api/pkg/logger"
)

// Job names
const (
	JobStalePending = "stale_pending_check"
)

type JobService struct {
	worker         *jobs.Worker
	transactionSvc *TransactionService
	staleAfter     time.Duration
}

func NewJobService(worker *jobs.Worker, transactionSvc *TransactionService, staleAfter time.Duration) *JobService {
	return &JobService{
		worker:         worker,
		transactionSvc: transactionSvc,
		staleAfter:     staleAfter,
	}
}

// RegisterSchedules wires the recurring jobs into the worker
func (s *JobService) RegisterSchedules() {
	s.worker.Register(JobStalePending, s.CheckStalePending)
	s.worker.ScheduleEvery(JobStalePending, time.Hour)
}

// CheckStalePending warns about transactions waiting too long for a decision
func (s *JobService) CheckStalePending(ctx context.Context) error {
	stale, err := s.transactionSvc.StalePending(ctx, s.staleAfter)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	txNos := make([]string, 0, len(stale))
	for _, tx := range stale {
		txNos = append(txNos, tx.TxNo)
	}
	logger.Warn("Transactions pending approval past threshold",
		"count", len(stale),
		"threshold", s.staleAfter.String(),
		"tx_nos", txNos,
	)
	return nil
}

// RunNow queues a registered job for immediate execution
func (s *JobService) RunNow(name string) error {
	return s.worker.Trigger(name)
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"workers":        stats.Workers,
		"jobs":           stats.Jobs,
	}
}
