// Package scheduler runs the recurring autopay sweep on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultSchedule = "@daily"

// AutoPayer pays every auto-pay bill that has come due.
type AutoPayer interface {
	AutoPayDue(ctx context.Context) (paid int, failed int, err error)
}

type Scheduler struct {
	spec  string
	payer AutoPayer
	log   *logrus.Logger
	cron  *cron.Cron
}

// New checks spec and builds a scheduler. Schedules are evaluated in UTC and
// a sweep that is still running when the next one is due is skipped.
func New(spec string, payer AutoPayer, log *logrus.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("autopay schedule %q: %w", spec, err)
	}

	logger := cronLogger{log: log}
	return &Scheduler{
		spec:  spec,
		payer: payer,
		log:   log,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}, nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running sweep to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule autopay: %w", err)
	}

	s.log.WithField("schedule", s.spec).Info("Scheduler.Started")
	s.cron.Start()

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler.Stopped")
	return nil
}

// RunOnce performs a single autopay sweep.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()
	paid, failed, err := s.payer.AutoPayDue(ctx)

	entry := s.log.WithFields(logrus.Fields{
		"paid":     paid,
		"failed":   failed,
		"duration": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("Scheduler.AutoPay.Error")
		return
	}
	entry.Info("Scheduler.AutoPay.Complete")
}

// cronLogger routes cron's own logging to logrus.
type cronLogger struct {
	log *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug("Scheduler.Cron." + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).WithError(err).Error("Scheduler.Cron." + msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
