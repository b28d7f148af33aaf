package bootstrap

import (
	"context"

	"facility-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewDeadlineMonitor,
	),
	fx.Invoke(startDeadlineMonitor),
)

func startDeadlineMonitor(lc fx.Lifecycle, monitor *worker.DeadlineMonitor) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			monitor.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			monitor.Stop()
			return nil
		},
	})
}
