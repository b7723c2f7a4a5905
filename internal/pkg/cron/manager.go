package cron

import (
	"Matchpoint/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	staleSweepJob *job.StaleSweepJob
	sweepSpec     string
}

func NewCronManager(staleSweepJob *job.StaleSweepJob, sweepSpec string) *Manager {
	if sweepSpec == "" {
		sweepSpec = "@every 30m"
	}
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		staleSweepJob: staleSweepJob,
		sweepSpec:     sweepSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.sweepSpec, s.staleSweepJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
