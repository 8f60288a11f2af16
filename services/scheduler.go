package services

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// StartScheduler starts the background job scheduler. The allocation jobs
// are idempotent per employee and month, so firing them daily reproduces
// monthly cron behavior while also catching employees added mid-month.
func StartScheduler(db *gorm.DB, hour, minute int) {
	go func() {
		log.Printf("Scheduler started, jobs run daily at %02d:%02d", hour, minute)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			if now.Hour() == hour && now.Minute() == minute {
				RunScheduledJobs(db, now)
			}
		}
	}()
}

// RunScheduledJobs runs the three automation jobs in order. Attendance
// automation runs last so freshly validated leaves are reflected.
func RunScheduledJobs(db *gorm.DB, now time.Time) {
	if _, err := RunAnnualAllocation(db, now); err != nil {
		log.Printf("Annual leave allocation run failed: %v", err)
	}
	if _, err := RunSickAllocation(db, now); err != nil {
		log.Printf("Sick leave allocation run failed: %v", err)
	}
	if _, err := RunAttendanceAutomation(db, now); err != nil {
		log.Printf("Attendance automation run failed: %v", err)
	}
}
