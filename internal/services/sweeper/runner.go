package sweeper

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	config "github.com/AdrianMoldovan/Mentenix/internal/config/sweeper"
)

type Runner struct {
	Log *zap.Logger
	UC  *Usecase
	Cfg *config.SweepCfg

	mChecked  prometheus.Counter
	mSent     prometheus.Counter
	mFailed   prometheus.Counter
	mErr      prometheus.Counter
	mSweepDur prometheus.Histogram
}

func New(log *zap.Logger, uc *Usecase, cfg *config.SweepCfg) *Runner {
	return &Runner{
		Log: log,
		UC:  uc,
		Cfg: cfg,
		mChecked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sweeper_work_orders_checked_total", Help: "Unresolved work orders evaluated",
		}),
		mSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sweeper_reminders_sent_total", Help: "Reminder notifications delivered",
		}),
		mFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sweeper_reminders_failed_total", Help: "Reminder notifications that failed to deliver",
		}),
		mErr: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sweeper_errors_total", Help: "Sweeps aborted by a fatal error",
		}),
		mSweepDur: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "sweeper_sweep_duration_seconds", Help: "Full sweep duration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (r *Runner) sweep(ctx context.Context) {
	start := time.Now()
	sum, err := r.UC.Sweep(ctx)
	if err != nil {
		r.mErr.Inc()
		r.Log.Warn("sweep aborted", zap.Error(err))
	} else {
		r.mChecked.Add(float64(sum.WorkOrdersChecked))
		r.mSent.Add(float64(sum.RemindersSent))
		r.mFailed.Add(float64(sum.RemindersFailed))
		if sum.WorkOrdersChecked > 0 {
			r.Log.Info("sweep done",
				zap.Int("checked", sum.WorkOrdersChecked),
				zap.Int("sent", sum.RemindersSent),
				zap.Int("failed", sum.RemindersFailed),
			)
		}
	}
	r.mSweepDur.Observe(time.Since(start).Seconds())
}

func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.Cfg.Tick)
	defer ticker.Stop()

	r.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}
