package models

// ListResult is one page of users together with the collection arithmetic.
type ListResult struct {
	TotalUsers int
	TotalPages int
	Page       int
	Limit      int
	Users      []*User
}
