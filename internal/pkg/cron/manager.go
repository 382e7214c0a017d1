package cron

import (
	"IronProof/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	leaderboardJob *job.LeaderboardJob
	rebuildSpec    string
}

func NewCronManager(leaderboardJob *job.LeaderboardJob, rebuildSpec string) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		leaderboardJob: leaderboardJob,
		rebuildSpec:    rebuildSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.rebuildSpec, s.leaderboardJob); err != nil {
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
