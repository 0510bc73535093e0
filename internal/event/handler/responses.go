package handler

import (
	"time"

	consentmodels "consentd/internal/consent/models"
	"consentd/internal/event/models"
	id "consentd/pkg/domain"
)

// EventResponse is the wire shape of a consent event. The assertions keep
// their input order; the sequence number is exposed so clients can reproduce
// the store's total order.
type EventResponse struct {
	ID         id.EventID                `json:"id"`
	UserID     id.UserID                 `json:"userId"`
	Seq        int64                     `json:"seq"`
	CreatedAt  time.Time                 `json:"createdAt"`
	Assertions []consentmodels.Assertion `json:"consents"`
}

// ListResponse is one page of events.
type ListResponse struct {
	TotalEvents int              `json:"totalEvents"`
	TotalPages  int              `json:"totalPages"`
	Page        int              `json:"page"`
	Limit       int              `json:"limit"`
	Events      []*EventResponse `json:"events"`
}

func toEventResponse(event *models.Event) *EventResponse {
	return &EventResponse{
		ID:         event.ID,
		UserID:     event.UserID,
		Seq:        event.Seq,
		CreatedAt:  event.CreatedAt,
		Assertions: event.Assertions,
	}
}

func toListResponse(result *models.ListResult) *ListResponse {
	events := make([]*EventResponse, 0, len(result.Events))
	for _, event := range result.Events {
		events = append(events, toEventResponse(event))
	}
	return &ListResponse{
		TotalEvents: result.TotalEvents,
		TotalPages:  result.TotalPages,
		Page:        result.Page,
		Limit:       result.Limit,
		Events:      events,
	}
}
