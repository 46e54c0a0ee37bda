package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"tutor-center/backend/internal/model"
	"tutor-center/backend/internal/repository"
)

// CalendarService iCalendar feeds of group class dates
type CalendarService interface {
	// GroupCalendar one all-day event per class date of the month.
	GroupCalendar(ctx context.Context, groupDayID string, year int, month time.Month) (string, string, error)
}

type calendarService struct {
	repo       *repository.Repository
	clock      Clock
	centerName string
	logger     *zap.Logger
}

// NewCalendarService creates a CalendarService
func NewCalendarService(repo *repository.Repository, clock Clock, centerName string, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, clock: clock, centerName: centerName, logger: logger}
}

func (s *calendarService) GroupCalendar(ctx context.Context, groupDayID string, year int, month time.Month) (string, string, error) {
	group, err := lookup(ctx, s.logger, "get group day", ErrGroupDayNotFound, func(ctx context.Context) (*model.GroupDay, error) {
		return s.repo.GroupDay.GetByID(ctx, groupDayID)
	}, zap.String("group_day_id", groupDayID))
	if err != nil {
		return "", "", err
	}

	title := groupTitle(group)
	stamp := s.clock().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.centerName + "//class calendar//EN")
	cal.SetXWRCalName(title)

	for _, d := range group.ClassDatesInMonth(year, month) {
		evt := cal.AddEvent(fmt.Sprintf("%s-%s@tutor-center", group.GroupDayID, d.Format("20060102")))
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(d)
		evt.SetAllDayEndAt(d.AddDate(0, 0, 1))
		evt.SetSummary(title)
		if group.TimeSlot != "" {
			evt.SetDescription("Class at " + group.TimeSlot)
		}
	}

	filename := fmt.Sprintf("classes_%s_%04d-%02d.ics", fileSafe(group), year, int(month))
	return cal.Serialize(), filename, nil
}
