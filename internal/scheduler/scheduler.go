package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/guide48/peak-planner/internal/trip"
)

// Scheduler periodically refreshes trip plans for the configured favorite
// peaks, so the latest snapshot is always warm in the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *trip.Service
	peakNames []string
	interval  time.Duration
	loc       *time.Location
	clock     trip.Clock
}

// New creates a new Scheduler. Dates are derived from the injected clock in
// the given civil zone; a nil clock falls back to the wall clock.
func New(peakNames []string, interval time.Duration, service *trip.Service, loc *time.Location, clock trip.Clock) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = trip.SystemClock()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		peakNames: peakNames,
		interval:  interval,
		loc:       loc,
		clock:     clock,
	}
}

// Start schedules the periodic refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.peakNames) == 0 {
		log.Println("scheduler: no favorite peaks configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.refresh); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// refresh plans every favorite peak for the current civil date.
func (s *Scheduler) refresh() {
	log.Println("scheduler: running trip refresh job")

	date := s.clock.Now().In(s.loc).Format("2006-01-02")

	var wg sync.WaitGroup
	for _, name := range s.peakNames {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, err := s.service.PlanTrip(ctx, name, date); err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", name, err)
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed trip refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
