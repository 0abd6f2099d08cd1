package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tutorhub/models"
	"tutorhub/services/booking"
	"tutorhub/services/scheduling"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// retryAfterSeconds is advertised when bookings could not be loaded.
const retryAfterSeconds = 5

type SchedulingHandler struct {
	Service booking.SchedulingService
}

func NewSchedulingHandler(svc booking.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

func (h *SchedulingHandler) GetPresetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Presets())
}

func (h *SchedulingHandler) GetSlotsHandler(c *gin.Context) {
	var req models.SlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", describeBindingError(err))
		return
	}

	res, err := h.Service.SlotsForPerson(c.Request.Context(), req.PersonID, req.Date, req.Duration)
	if err != nil {
		respondSchedulingError(c, "Failed to generate slots", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SchedulingHandler) AggregateSlotsHandler(c *gin.Context) {
	var req models.AggregateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", describeBindingError(err))
		return
	}

	res, err := h.Service.AggregateTutorSlots(c.Request.Context(), req.Date, req.Duration, req.TutorIDs)
	if err != nil {
		respondSchedulingError(c, "Failed to aggregate slots", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SchedulingHandler) CheckConflictsHandler(c *gin.Context) {
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", describeBindingError(err))
		return
	}
	proposed, err := bookingFromRequest(req)
	if err != nil {
		respondSchedulingError(c, "Invalid booking", err)
		return
	}

	res, err := h.Service.CheckConflicts(c.Request.Context(), proposed, req.ExcludeBookingID)
	if err != nil {
		respondSchedulingError(c, "Failed to check conflicts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conflict":   res.Conflict,
		"collisions": res.Collisions,
		"summary":    res.Summary(),
	})
}

func (h *SchedulingHandler) InvalidateSnapshotsHandler(c *gin.Context) {
	personID := c.Param("personID")
	if personID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing person id", "")
		return
	}
	n, err := h.Service.InvalidatePerson(c.Request.Context(), personID)
	if err != nil {
		respondSchedulingError(c, "Failed to invalidate snapshots", err)
		return
	}
	getLogger(c).Info("Snapshots invalidated", zap.String("personId", personID), zap.Int("removed", n))
	c.JSON(http.StatusOK, gin.H{"personId": personID, "removed": n})
}

// bookingFromRequest builds the proposed booking. The request has already
// passed the binding tags, so parse failures here are unexpected.
func bookingFromRequest(req models.ConflictCheckRequest) (scheduling.Booking, error) {
	st, _ := scheduling.ParseScheduleType(req.ScheduleType)
	start, err := scheduling.ParseTime(req.StartTime)
	if err != nil {
		return scheduling.Booking{}, &scheduling.InputError{Field: "startTime", Message: err.Error()}
	}
	b := scheduling.Booking{
		ID:           req.ExcludeBookingID,
		Title:        req.Title,
		ScheduleType: st,
		StartTime:    start,
		Duration:     req.Duration,
		TutorID:      req.TutorID,
		StudentIDs:   req.StudentIDs,
	}
	switch st {
	case scheduling.OneTime:
		if b.Date, err = scheduling.ParseDate(req.Date); err != nil {
			return scheduling.Booking{}, err
		}
	case scheduling.WeeklyRecurring:
		for _, d := range req.RecurringDays {
			if wd, ok := scheduling.ParseWeekday(d); ok {
				b.RecurringDays = b.RecurringDays.With(wd)
			}
		}
		if b.StartDate, err = scheduling.ParseDate(req.StartDate); err != nil {
			return scheduling.Booking{}, &scheduling.InputError{Field: "startDate", Message: "required for weekly-recurring bookings"}
		}
		if b.EndDate, err = scheduling.ParseDate(req.EndDate); err != nil {
			return scheduling.Booking{}, &scheduling.InputError{Field: "endDate", Message: "required for weekly-recurring bookings"}
		}
	}
	return b, nil
}

// respondSchedulingError maps service errors onto HTTP statuses. Missing
// booking data is a 503: the caller may retry, but must not treat the time as free.
func respondSchedulingError(c *gin.Context, message string, err error) {
	var inputErr *scheduling.InputError
	var parseErr *scheduling.ParseError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &parseErr):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, message, err.Error())
	case errors.Is(err, scheduling.ErrIncompleteData):
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		utils.JSONError(c, http.StatusServiceUnavailable, message, "Existing bookings could not be loaded. Please try again shortly.")
	default:
		getLogger(c).Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "")
	}
}
