package services

import (
	"time"

	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
	"gorm.io/gorm"
)

// ScheduleMonitor memantau notifikasi berstatus scheduled dan mengirim yang
// sudah jatuh tempo lewat Dispatcher.
type ScheduleMonitor struct {
	DB         *gorm.DB
	Dispatcher Dispatcher
	StopChan   chan struct{}
	Interval   time.Duration
}

func NewScheduleMonitor(db *gorm.DB, dispatcher Dispatcher) *ScheduleMonitor {
	return &ScheduleMonitor{
		DB:         db,
		Dispatcher: dispatcher,
		StopChan:   make(chan struct{}),
		Interval:   30 * time.Second,
	}
}

func (sm *ScheduleMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.CheckDue()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *ScheduleMonitor) Stop() {
	close(sm.StopChan)
}

// CheckDue memproses satu batch notifikasi jatuh tempo. Dipanggil dari ticker,
// diekspos juga supaya bisa dites langsung.
func (sm *ScheduleMonitor) CheckDue() {
	var due []models.Notification

	// Transaction supaya dua instance tidak mengirim notifikasi yang sama
	tx := sm.DB.Begin()

	if err := tx.Where("status = ? AND schedule_at <= ?", models.NotificationStatusScheduled, time.Now()).
		Order("schedule_at ASC").
		Limit(100).
		Find(&due).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching due notifications: %v", err)
		return
	}

	for i := range due {
		notif := &due[i]
		now := time.Now()

		if err := sm.Dispatcher.Dispatch(notif); err != nil {
			utils.ErrorLogger.Printf("Error dispatching notification id=%d: %v", notif.ID, err)
			notif.Status = models.NotificationStatusFailed
		} else {
			notif.Status = models.NotificationStatusSent
			notif.SentAt = &now
		}

		if err := tx.Model(notif).
			Updates(map[string]interface{}{"status": notif.Status, "sent_at": notif.SentAt}).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error updating notification id=%d: %v", notif.ID, err)
			return
		}

		utils.InfoLogger.Printf("Notification id=%d processed (status=%s)", notif.ID, notif.Status)
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing schedule batch: %v", err)
	}
}
