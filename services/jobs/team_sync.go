package jobs

import (
	"case_team_app_go/config"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// TeamSyncer flags cases whose team already meets its minimum
type TeamSyncer interface {
	SyncTeamAssigned() (int, error)
}

// StartScheduler registers the team-assigned sync on the configured cron
// schedule and starts it. An empty schedule disables the job and returns
// a nil scheduler.
func StartScheduler(cfg *config.Config, syncer TeamSyncer) (*cron.Cron, error) {
	if cfg.TeamSyncSchedule == "" {
		log.Println("[CRON] Team sync disabled (TEAM_SYNC_SCHEDULE is empty)")
		return nil, nil
	}

	loc, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		log.Printf("[CRON] Unknown timezone %q, using UTC: %v", cfg.SchedulerTimezone, err)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.TeamSyncSchedule, func() {
		log.Println("[CRON] Running team-assigned sync...")
		RunTeamSync(syncer)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid TEAM_SYNC_SCHEDULE %q: %w", cfg.TeamSyncSchedule, err)
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (team sync at %q, %s)", cfg.TeamSyncSchedule, loc)
	return c, nil
}

// RunTeamSync performs one sweep and logs its outcome
func RunTeamSync(syncer TeamSyncer) {
	flagged, err := syncer.SyncTeamAssigned()
	if err != nil {
		log.Printf("[CRON] Team sync failed: %v", err)
		return
	}
	log.Printf("[CRON] Team sync completed: %d cases flagged", flagged)
}
