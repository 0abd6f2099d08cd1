package booking

import (
	"context"
	"errors"
	"fmt"

	"tutorhub/config"
	classesRepo "tutorhub/database/repository/classes"
	profileRepo "tutorhub/database/repository/profile"
	"tutorhub/models"
	"tutorhub/services/scheduling"
	"tutorhub/utils"

	"go.uber.org/zap"
)

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Profiles profileRepo.ProfileRepository
	Classes  classesRepo.ClassRepository
	Cache    SnapshotCache // optional
	Settings config.Scheduling
	Logger   *zap.Logger
}

func (s *DefaultSchedulingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultSchedulingService) Presets() config.Scheduling {
	return s.Settings
}

func (s *DefaultSchedulingService) duration(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.Settings.DefaultDuration
}

func (s *DefaultSchedulingService) SlotsForPerson(ctx context.Context, personID, date string, duration int) (*PersonSlots, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, err
	}
	duration = s.duration(duration)

	doc, err := s.Profiles.GetByID(ctx, personID)
	if errors.Is(err, profileRepo.ErrProfileNotFound) {
		return nil, fmt.Errorf("profile %s: %w", personID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	person := s.normalize(*doc)

	snap, failed, err := s.loadSnapshot(ctx, []scheduling.Person{person}, day)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, &LoadError{PersonID: person.ID, Err: errors.New("class store unavailable")}
	}

	slots, err := scheduling.GenerateSlots(person, day, duration, s.Settings.BufferMinutes, snap)
	if err != nil {
		return nil, err
	}
	views := make([]SlotView, 0, len(slots))
	for _, sl := range slots {
		views = append(views, SlotView{Slot: sl, Label: sl.Label()})
	}

	s.logger().Debug("Generated slots",
		zap.String("personId", person.ID),
		zap.String("date", day),
		zap.Int("duration", duration),
		zap.Int("count", len(views)))
	return &PersonSlots{Person: person, Date: day, Duration: duration, Slots: views}, nil
}

func (s *DefaultSchedulingService) AggregateTutorSlots(ctx context.Context, date string, duration int, tutorIDs []string) (*AggregateResult, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, err
	}
	duration = s.duration(duration)

	var docs []models.ProfileDocument
	if len(tutorIDs) > 0 {
		docs, err = s.Profiles.GetByIDs(ctx, tutorIDs)
	} else {
		docs, err = s.Profiles.ListTutors(ctx)
	}
	if err != nil {
		return nil, err
	}

	tutors := make([]scheduling.Person, 0, len(docs))
	for _, doc := range docs {
		p := s.normalize(doc)
		if p.Role != scheduling.RoleTutor {
			continue
		}
		tutors = append(tutors, p)
	}

	snap, failed, err := s.loadSnapshot(ctx, tutors, day)
	if err != nil {
		return nil, err
	}
	slots, err := scheduling.AggregateSlots(tutors, day, duration, s.Settings.BufferMinutes, snap)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		s.logger().Warn("Tutors left out of aggregated slots",
			zap.String("date", day),
			zap.Strings("tutorIds", failed))
	}
	return &AggregateResult{Date: day, Duration: duration, Slots: slots, Unavailable: failed}, nil
}

// CheckConflicts checks proposed against every active booking of its tutor and
// students. Any calendar that cannot be read fails the whole check.
func (s *DefaultSchedulingService) CheckConflicts(ctx context.Context, proposed scheduling.Booking, excludeBookingID string) (*scheduling.ConflictResult, error) {
	if err := proposed.Validate(); err != nil {
		return nil, err
	}

	var existing []scheduling.Booking
	seen := make(map[string]bool)
	add := func(bookings []scheduling.Booking) {
		for _, b := range bookings {
			if b.ID != "" && seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			existing = append(existing, b)
		}
	}

	if proposed.TutorID != "" {
		bookings, err := s.allBookingsOf(ctx, proposed.TutorID, scheduling.RoleTutor)
		if err != nil {
			return nil, err
		}
		add(bookings)
	}
	for _, studentID := range proposed.StudentIDs {
		bookings, err := s.allBookingsOf(ctx, studentID, scheduling.RoleStudent)
		if err != nil {
			return nil, err
		}
		add(bookings)
	}

	res, err := scheduling.CheckBooking(proposed, existing, scheduling.ConflictOptions{
		ExcludeBookingID:      excludeBookingID,
		GapMinutes:            s.Settings.BufferMinutes,
		StrictRecurringBounds: s.Settings.StrictRecurringBounds,
	})
	if err != nil {
		return nil, err
	}
	if res.Conflict {
		s.logger().Info("Booking conflicts detected",
			zap.String("tutorId", proposed.TutorID),
			zap.Int("collisions", len(res.Collisions)))
	}
	return &res, nil
}

// InvalidatePerson drops cached snapshots after a booking of personID changed.
func (s *DefaultSchedulingService) InvalidatePerson(ctx context.Context, personID string) (int, error) {
	if s.Cache == nil {
		return 0, nil
	}
	n, err := s.Cache.InvalidatePerson(ctx, personID)
	if err != nil {
		return n, fmt.Errorf("invalidate snapshots of %s: %w", personID, err)
	}
	return n, nil
}

// normalize converts a profile and logs every availability entry it had to skip.
func (s *DefaultSchedulingService) normalize(doc models.ProfileDocument) scheduling.Person {
	p, skipped := scheduling.NormalizePerson(doc)
	for _, err := range skipped {
		s.logger().Warn("Skipped availability entry", zap.String("profileId", doc.ID), zap.Error(err))
	}
	return p
}

// convertRecords turns stored classes into bookings, skipping and logging the
// ones that cannot be interpreted.
func (s *DefaultSchedulingService) convertRecords(records []models.ClassRecord) []scheduling.Booking {
	bookings := make([]scheduling.Booking, 0, len(records))
	for _, rec := range records {
		if rec.Status == models.ClassStatusCancelled {
			continue
		}
		b, err := scheduling.BookingFromRecord(rec)
		if err != nil {
			s.logger().Warn("Skipped class record", zap.String("classId", rec.ID), zap.Error(err))
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}
