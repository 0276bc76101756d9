package helper

import (
	"log"
	"time"

	"exhibition_manager/database"
	"exhibition_manager/model"

	"github.com/go-co-op/gocron/v2"
)

var exhibitionScheduler gocron.Scheduler

// AutoDeactivateEndedExhibitions flips active off for exhibitions whose
// end date has passed, so they drop out of the bookable set.
func AutoDeactivateEndedExhibitions() {
	log.Println("[CRON] AutoDeactivateEndedExhibitions triggered")

	db := database.DB
	today := dateOnly(time.Now()).Format("2006-01-02")

	res := db.Model(&model.Exhibition{}).
		Where("end_date < ? AND active = ?", today, true).
		Update("active", false)
	if res.Error != nil {
		log.Printf("failed to deactivate ended exhibitions: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("deactivated %d ended exhibitions", res.RowsAffected)
	}
}

func StartExhibitionStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	exhibitionScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoDeactivateEndedExhibitions),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("exhibition status scheduler started (daily 00:05)")
}

func StopExhibitionStatusScheduler() {
	if exhibitionScheduler != nil {
		_ = exhibitionScheduler.Shutdown()
	}
}
