package utils

import (
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"lms/store"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func logScheduler(message string) {
	logrus.Info("[RATING-SCHEDULER] " + message)
}

// reconcileCourseRatings re-runs the rating aggregate for every course that
// has at least one rated enrollment. Review-time recomputes are best-effort;
// this job is their retry path.
func reconcileCourseRatings() {
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&courseModels.Enrollment{}).
		Where("rating IS NOT NULL AND is_deleted = ?", false).
		Distinct().
		Pluck("course_id", &courseIDs).Error; err != nil {
		logrus.WithError(err).Error("[RATING-SCHEDULER] Failed to list rated courses")
		return
	}

	failed := 0
	for _, courseID := range courseIDs {
		if err := store.RecomputeCourseRating(db, courseID); err != nil {
			logrus.WithError(err).WithField("course", courseID).
				Error("[RATING-SCHEDULER] Recompute failed")
			failed++
		}
	}

	logrus.WithFields(logrus.Fields{"courses": len(courseIDs), "failed": failed}).
		Info("[RATING-SCHEDULER] Reconciliation pass finished")
}

// StartRatingScheduler registers the reconciliation job on the given cron.
func StartRatingScheduler(c *cron.Cron) {
	spec := "0 * * * *"
	if config.AppConfig != nil && config.AppConfig.RatingReconcileSpec != "" {
		spec = config.AppConfig.RatingReconcileSpec
	}
	if _, err := c.AddFunc(spec, reconcileCourseRatings); err != nil {
		logrus.WithError(err).Error("[RATING-SCHEDULER] Bad cron spec, job not scheduled")
		return
	}
	logScheduler("Rating reconciliation scheduled with spec " + spec)
}

// InitializeRatingScheduler builds and starts the cron runner.
func InitializeRatingScheduler() *cron.Cron {
	logScheduler("Initializing rating scheduler...")

	c := cron.New()
	StartRatingScheduler(c)
	c.Start()

	logScheduler("Rating scheduler started")
	return c
}
