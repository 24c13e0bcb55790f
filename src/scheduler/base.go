package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs one function on its own cron. The context passed to
// the function is cancelled once the task is cancelled, so a run in flight
// can stop early.
type ScheduledTask struct {
	Spec   string
	cronID cron.EntryID
	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewScheduledTask(cronSpec string, taskFunc func(ctx context.Context)) (*ScheduledTask, error) {
	c := cron.New()
	ctx, cancel := context.WithCancel(context.Background())
	task := &ScheduledTask{
		Spec:   cronSpec,
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		if ctx.Err() != nil {
			return
		}
		taskFunc(ctx)
	})
	if err != nil {
		cancel()
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next is the time of the next scheduled run.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

func (s *ScheduledTask) Cancel() {
	s.cancel()
	s.cron.Remove(s.cronID)
	s.cron.Stop()
}
