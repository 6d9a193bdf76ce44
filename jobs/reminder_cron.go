package jobs

import (
	"log"
	"sync"
	"time"

	"zid-retention-server/services/messaging"
)

const defaultInterval = 5 * time.Minute

// ReminderCron drives the reminder dispatcher on a fixed interval. It runs
// one pass immediately on Start and then once per interval until Stop.
type ReminderCron struct {
	interval time.Duration
	engine   *messaging.Engine

	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewReminderCron(engine *messaging.Engine, interval time.Duration) *ReminderCron {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &ReminderCron{
		interval: interval,
		engine:   engine,
		done:     make(chan struct{}),
	}
}

// Start launches the scheduling loop. Call at most once.
func (rc *ReminderCron) Start() {
	log.Printf("[ReminderCron] Starting reminder checker (every %s)", rc.interval)

	rc.ticker = time.NewTicker(rc.interval)
	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()

		rc.processReminders()
		for {
			select {
			case <-rc.ticker.C:
				rc.processReminders()
			case <-rc.done:
				return
			}
		}
	}()
}

// Stop prevents any further dispatch passes and waits for an in-flight pass
// to finish. Safe to call more than once and from any goroutine.
func (rc *ReminderCron) Stop() {
	rc.stopOnce.Do(func() {
		close(rc.done)
		if rc.ticker != nil {
			rc.ticker.Stop()
		}
		rc.wg.Wait()
		log.Println("[ReminderCron] Stopped")
	})
}

func (rc *ReminderCron) processReminders() {
	log.Printf("[ReminderCron] Checking for pending reminders at %s", time.Now().Format(time.RFC3339))

	results, err := rc.engine.ProcessPendingReminders()
	if err != nil {
		log.Printf("[ReminderCron] Error processing reminders: %v", err)
		return
	}

	if len(results) > 0 {
		successCount := 0
		for _, result := range results {
			if result.Success {
				successCount++
			}
		}
		log.Printf("[ReminderCron] Processed %d/%d reminders successfully", successCount, len(results))
	}
}
