package config

import (
	"atelier.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"catalogrefresh": {Schedule: "0 * * * *", Job: jobs.CatalogRefreshJob},
	"cartjanitor":    {Schedule: "@every 10m", Job: jobs.CartJanitorJob},
	// Add more jobs here
}
