package cron

import (
	"context"
	"time"

	"subwatch/config"
	"subwatch/services/reminder"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartReminderCron registers the scheduled reminder pass and starts the cron
// runner. The schedule expression and its timezone come from configuration
// (hourly at minute 0 by default). The returned cron can be stopped on
// shutdown.
func StartReminderCron(svc reminder.ReminderService, logger *zap.Logger) (*cron.Cron, error) {
	loc, err := time.LoadLocation(config.AppConfig.ScheduleTimezone)
	if err != nil {
		logger.Warn("invalid schedule timezone, falling back to UTC",
			zap.String("timezone", config.AppConfig.ScheduleTimezone), zap.Error(err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(config.AppConfig.ReminderSchedule, func() {
		timeout := time.Duration(config.AppConfig.RunTimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 540 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := svc.RunPass(ctx); err != nil {
			// The pass already logged details; surfacing happens through
			// external monitoring of these logs.
			logger.Error("scheduled reminder pass failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("reminder cron started",
		zap.String("schedule", config.AppConfig.ReminderSchedule),
		zap.String("timezone", loc.String()))
	return c, nil
}
