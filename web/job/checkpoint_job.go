// Package job contains the cron jobs scheduled by the web server.
package job

import (
	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/util/common"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file
// so the WAL does not grow unbounded between restarts.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run is invoked by cron.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
