package models

// ListResult is one page of events together with the collection arithmetic.
type ListResult struct {
	TotalEvents int
	TotalPages  int
	Page        int
	Limit       int
	Events      []*Event
}
