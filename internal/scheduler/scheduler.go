// Package scheduler triggers the daily pipeline run.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunFunc executes one full batch. The scheduler owns nothing about the
// pipeline beyond invoking it.
type RunFunc func(ctx context.Context) error

// Scheduler fires the run once at startup and then every day at the
// configured hour. Runs never overlap: the job mutex serializes them.
type Scheduler struct {
	run      RunFunc
	logger   *logrus.Logger
	runHour  int
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex
}

func NewScheduler(run RunFunc, runHour int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		run:      run,
		logger:   logger,
		runHour:  runHour,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduling loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	// Startup run so a fresh deploy has a catalog immediately.
	go s.execute("startup")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	var lastRunDay string
	for {
		select {
		case <-s.stopChan:
			return
		case t := <-ticker.C:
			day := t.Format("2006-01-02")
			if t.Hour() == s.runHour && t.Minute() == 0 && day != lastRunDay {
				lastRunDay = day
				s.execute("scheduled")
			}
		}
	}
}

func (s *Scheduler) execute(trigger string) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	s.logger.WithField("trigger", trigger).Info("Starting pipeline run")
	if err := s.run(context.Background()); err != nil {
		s.logger.WithError(err).WithField("trigger", trigger).Error("Pipeline run failed")
		return
	}
	s.logger.WithField("trigger", trigger).Info("Pipeline run completed successfully")
}

// Stop gracefully stops the scheduler. A run already in progress
// finishes; no new run starts.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
