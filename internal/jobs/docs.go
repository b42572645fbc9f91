// Package jobs provides scheduled background tasks for the work order service.
//
// Jobs use github.com/robfig/cron/v3 with six-field (seconds) schedules.
//
// # Available Jobs
//
// KeepAliveJob - pings a URL, by default every 14 minutes, so that hosts that
// suspend idle services keep this one running. Started only in production.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewKeepAliveJob(url, schedule, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed ping is logged as a warning and retried on the next tick.
// A job that fails to start stops the jobs started before it.
package jobs
