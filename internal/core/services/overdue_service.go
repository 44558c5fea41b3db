package services

import (
	"context"
	"log"

	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// OverdueService sweeps past-due loans on a schedule. Each sweep runs
// the same fine computation a caller would trigger, so records cross
// into OVERDUE with their fine persisted even when nobody has asked
// for the fine yet.
type OverdueService struct {
	cron      *cron.Cron
	borrowing *BorrowingService
	records   repositories.BorrowRecordRepository
}

// NewOverdueService creates a new overdue sweep service
func NewOverdueService(borrowing *BorrowingService, records repositories.BorrowRecordRepository) *OverdueService {
	return &OverdueService{
		cron:      cron.New(),
		borrowing: borrowing,
		records:   records,
	}
}

// Start schedules the daily sweep (02:30, after the library closes)
func (s *OverdueService) Start() {
	s.cron.AddFunc("30 2 * * *", func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			log.Printf("❌ Overdue sweep error: %v", err)
		}
	})
	s.cron.Start()
	log.Println("🚀 Overdue sweep scheduled (daily 02:30)")
}

// Stop stops the scheduler; a running sweep finishes first
func (s *OverdueService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Overdue sweep stopped")
}

// Sweep flips every past-due BORROWED record to OVERDUE and persists
// its fine. Returns the number of records flipped. Failures on single
// records are logged and skipped so one bad row cannot stall the rest.
func (s *OverdueService) Sweep(ctx context.Context) (int, error) {
	overdue, err := s.records.GetOverdue(ctx)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, record := range overdue {
		if record.Status != domain.StatusBorrowed {
			continue
		}
		if _, err := s.borrowing.CalculateFine(ctx, record.ID); err != nil {
			log.Printf("⚠️ Overdue sweep: record %s: %v", record.ID, err)
			continue
		}
		flipped++
	}

	if flipped > 0 {
		log.Printf("✅ Overdue sweep: %d record(s) marked overdue", flipped)
	}
	return flipped, nil
}
