package booking

import (
	"context"
	"sort"
	"sync"

	classesRepo "tutorhub/database/repository/classes"
	"tutorhub/services/scheduling"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentLoads = 8

// loadSnapshot fetches the bookings of every person on date, concurrently.
// A person whose bookings cannot be loaded is left out of the snapshot and
// returned in failed; the engine then treats them as unknown, not as free.
func (s *DefaultSchedulingService) loadSnapshot(ctx context.Context, persons []scheduling.Person, date string) (*scheduling.Snapshot, []string, error) {
	snap := scheduling.NewSnapshot()
	var (
		mu     sync.Mutex
		failed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for _, p := range persons {
		p := p
		g.Go(func() error {
			bookings, err := s.bookingsOn(gctx, p, date)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger().Error("Failed to load bookings",
					zap.String("personId", p.ID),
					zap.String("date", date),
					zap.Error(err))
				mu.Lock()
				failed = append(failed, p.ID)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			snap.Put(p.ID, date, bookings)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	sort.Strings(failed)
	return snap, failed, nil
}

// bookingsOn reads one person's bookings for date, from the cache when it can.
func (s *DefaultSchedulingService) bookingsOn(ctx context.Context, p scheduling.Person, date string) ([]scheduling.Booking, error) {
	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, p.ID, date)
		if err != nil {
			s.logger().Warn("Snapshot cache read failed", zap.String("personId", p.ID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	records, err := s.Classes.ListForPersonOnDate(ctx, p.ID, repoRole(p.Role), date)
	if err != nil {
		return nil, err
	}
	bookings := s.convertRecords(records)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p.ID, date, bookings); err != nil {
			s.logger().Warn("Snapshot cache write failed", zap.String("personId", p.ID), zap.Error(err))
		}
	}
	return bookings, nil
}

// allBookingsOf reads every active booking of a person, across all dates.
func (s *DefaultSchedulingService) allBookingsOf(ctx context.Context, personID string, role scheduling.PersonRole) ([]scheduling.Booking, error) {
	records, err := s.Classes.ListForPerson(ctx, personID, repoRole(role))
	if err != nil {
		return nil, &LoadError{PersonID: personID, Err: err}
	}
	return s.convertRecords(records), nil
}

func repoRole(r scheduling.PersonRole) string {
	if r == scheduling.RoleStudent {
		return classesRepo.RoleStudent
	}
	return classesRepo.RoleTutor
}
