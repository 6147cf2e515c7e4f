package lastfm

import (
	"context"
	"strconv"
)

// AttendanceStatus is the answer given to event.attend.
type AttendanceStatus int

const (
	Attending      AttendanceStatus = 0
	MaybeAttending AttendanceStatus = 1
	NotAttending   AttendanceStatus = 2
)

// EventService provides event.* methods.
type EventService struct {
	resource
}

// NewEventService binds event operations to s.
func NewEventService(s Session) *EventService {
	return &EventService{resource: resource{session: s}}
}

// GetInfo returns the event's title, line-up, venue and date.
func (s *EventService) GetInfo(ctx context.Context, e Event) (*EventInfo, error) {
	doc, err := s.get(ctx, "event.getInfo", e)
	if err != nil {
		return nil, err
	}
	n, err := doc.Child("event")
	if err != nil {
		return nil, err
	}
	ev, err := decodeEvent(n)
	if err != nil {
		return nil, err
	}
	info := &EventInfo{
		Event:     ev,
		Title:     n.OptionalChildText("title"),
		StartDate: n.OptionalChildText("startDate"),
	}
	if artists, err := n.Child("artists"); err == nil {
		for _, a := range artists.Children("artist") {
			info.Artists = append(info.Artists, Artist{Name: a.Text()})
		}
		info.Headliner = Artist{Name: artists.OptionalChildText("headliner")}
	}
	if venue, err := n.Child("venue"); err == nil {
		info.Venue = venue.OptionalChildText("name")
	}
	return info, nil
}

// GetAttendees returns the users attending e.
func (s *EventService) GetAttendees(ctx context.Context, e Event) ([]User, error) {
	doc, err := s.get(ctx, "event.getAttendees", e)
	if err != nil {
		return nil, err
	}
	return decodeEach(doc, "user", decodeUser)
}

// Attend records the user's attendance. Requires authentication.
func (s *EventService) Attend(ctx context.Context, e Event, status AttendanceStatus) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	p := baseParams(e)
	p.Set("status", strconv.Itoa(int(status)))
	_, err := s.call(ctx, "event.attend", p)
	return err
}

// Share recommends e to each recipient, one call per recipient. Requires
// authentication.
func (s *EventService) Share(ctx context.Context, e Event, recipients []string, message string) error {
	return s.share(ctx, "event.share", e, recipients, message)
}
