package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
	"github.com/offerdesk/offerdesk/internal/infrastructure/resilience"
)

// Sweeper maintains the eventual invariants that every stored offer points
// at an existing customer and every comment at an existing offer. It is a
// best-effort mechanism: a dangling reference created between sweeps is
// tolerated and removed on the next pass.
type Sweeper struct {
	customers ports.CustomerRepository
	offers    ports.OfferRepository
	comments  ports.CommentRepository
	exec      *resilience.Executor
	metrics   ports.MetricsRecorder
}

func NewSweeper(
	customers ports.CustomerRepository,
	offers ports.OfferRepository,
	comments ports.CommentRepository,
	exec *resilience.Executor,
	metrics ports.MetricsRecorder,
) *Sweeper {
	return &Sweeper{
		customers: customers,
		offers:    offers,
		comments:  comments,
		exec:      exec,
		metrics:   metrics,
	}
}

func storageClassifier(err error) resilience.ErrorClassification {
	return resilience.ErrorClassification{
		Retryable:     domain.IsKind(err, domain.ErrStorage),
		RecordFailure: true,
	}
}

// SweepOffers deletes offers whose customerId is set but no longer refers
// to an existing customer. Deletion is silent; it is logged for
// observability only.
func (s *Sweeper) SweepOffers(ctx context.Context) (int, error) {
	deleted := 0
	err := s.exec.Execute(ctx, "sweep_offers", func(ctx context.Context) error {
		deleted = 0
		customers, err := s.customers.List(ctx, domain.CustomerFilter{})
		if err != nil {
			return err
		}
		valid := make(map[string]struct{}, len(customers))
		for _, customer := range customers {
			valid[customer.ID] = struct{}{}
		}

		offers, err := s.offers.List(ctx, domain.OfferFilter{})
		if err != nil {
			return err
		}
		for _, offer := range offers {
			if offer.CustomerID == "" {
				continue
			}
			if _, ok := valid[offer.CustomerID]; ok {
				continue
			}
			if err := s.offers.Delete(ctx, offer.ID); err != nil {
				// Already gone is fine; a concurrent sweep may have won.
				if domain.IsKind(err, domain.ErrNotFound) {
					continue
				}
				return err
			}
			slog.Info("swept_offer", "offer_id", offer.ID, "customer_id", offer.CustomerID)
			deleted++
		}
		return nil
	}, storageClassifier)

	if err != nil {
		s.recordFailure("offers")
		return 0, err
	}
	s.recordSweep("offers", deleted)
	return deleted, nil
}

// SweepComments deletes comments whose offerId is empty or refers to a
// missing offer.
func (s *Sweeper) SweepComments(ctx context.Context) (int, error) {
	deleted := 0
	err := s.exec.Execute(ctx, "sweep_comments", func(ctx context.Context) error {
		deleted = 0
		offers, err := s.offers.List(ctx, domain.OfferFilter{})
		if err != nil {
			return err
		}
		valid := make(map[string]struct{}, len(offers))
		for _, offer := range offers {
			valid[offer.ID] = struct{}{}
		}

		comments, err := s.comments.List(ctx)
		if err != nil {
			return err
		}
		for _, comment := range comments {
			keep := comment.OfferID != ""
			if keep {
				_, keep = valid[comment.OfferID]
			}
			if keep {
				continue
			}
			if err := s.comments.Delete(ctx, comment.ID); err != nil {
				if domain.IsKind(err, domain.ErrNotFound) {
					continue
				}
				return err
			}
			slog.Info("swept_comment", "comment_id", comment.ID, "offer_id", comment.OfferID)
			deleted++
		}
		return nil
	}, storageClassifier)

	if err != nil {
		s.recordFailure("comments")
		return 0, err
	}
	s.recordSweep("comments", deleted)
	return deleted, nil
}

// RunPeriodic sweeps comments on a fixed interval until the context is
// cancelled. Failures are logged and the loop keeps going.
func (s *Sweeper) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if deleted, err := s.SweepComments(ctx); err != nil {
				slog.Error("comment_sweep_failed", "error", err)
			} else if deleted > 0 {
				slog.Info("comment_sweep_completed", "deleted", deleted)
			}
		}
	}
}

func (s *Sweeper) recordSweep(entity string, deleted int) {
	if s.metrics != nil {
		s.metrics.RecordSweep(entity, deleted)
	}
}

func (s *Sweeper) recordFailure(entity string) {
	if s.metrics != nil {
		s.metrics.RecordSweepFailure(entity)
	}
}
