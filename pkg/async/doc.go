// Package async provides safe concurrent execution primitives for background tasks.
//
// # Overview
//
// This package handles goroutine lifecycle management with panic recovery, timeout
// enforcement, context cancellation, and error collection. Failures are logged
// through logrus with the task name attached.
//
// # Key Functions
//
// SafeGo: Execute function in goroutine with safety features
//
//	async.SafeGo(ctx, log, 30*time.Second, "plugin discovery", func(ctx context.Context) error {
//		_, err := loader.DiscoverPlugins(ctx)
//		return err
//	})
//
// Batch: Concurrent batch processing on a WorkerPool
//
//	errs := async.Batch(ctx, log, categories, 8, "seed", 10*time.Second, func(ctx context.Context, c *content.Category) error {
//		return store.Create(ctx, c)
//	})
//
// Scheduler: cron jobs on robfig/cron
//
//	scheduler := async.NewScheduler(ctx, log)
//	scheduler.AddJob("@every 5m", "category warm-up", time.Minute, func(ctx context.Context) error {
//		_, err := categories.ListAsTree(ctx)
//		return err
//	})
//	scheduler.Start()
//	defer scheduler.Stop(shutdownCtx)
//
// # Use Cases
//
// Cache warm-up, plugin discovery, store seeding
package async
