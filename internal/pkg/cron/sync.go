package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/device"
)

const DeviceSyncJobName = "device_sync"

// DeviceSyncJob pulls the terminal's punch batch into the ledger.
type DeviceSyncJob struct {
	attendanceService attendance.AttendanceService
}

func NewDeviceSyncJob(attendanceService attendance.AttendanceService) *DeviceSyncJob {
	return &DeviceSyncJob{attendanceService: attendanceService}
}

// Register adds the job with the given interval. Zero leaves it off.
func (j *DeviceSyncJob) Register(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     DeviceSyncJobName,
		Interval: interval,
		Fn:       j.Run,
		Delay:    interval,
	})
}

// Run performs one merge sync. An offline terminal is logged and retried on
// the next tick rather than reported as a failure.
func (j *DeviceSyncJob) Run(ctx context.Context) error {
	resp, err := j.attendanceService.Sync(ctx)
	switch {
	case errors.Is(err, device.ErrTerminalUnreachable):
		slog.Warn("scheduled sync skipped, terminal unreachable", "error", err)
		return nil
	case err != nil:
		return err
	}

	slog.Info("scheduled sync finished",
		"total_punches", resp.TotalPunches,
		"inserted", resp.Result.Inserted,
		"skipped_duplicate", resp.Result.SkippedDuplicate,
	)
	return nil
}
