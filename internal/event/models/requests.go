package models

import (
	"fmt"
	"strings"

	consentmodels "consentd/internal/consent/models"
	dErrors "consentd/pkg/domain-errors"
)

// CreateRequest is a candidate event before validation. Assertions keep their
// input order; the order is part of the stored event.
type CreateRequest struct {
	UserID     string                    `json:"userId"`
	Assertions []consentmodels.Assertion `json:"consents"`
}

// Validate checks the structural rules guarding the event log. The referential
// rule (the user must exist) is checked by the service against the store.
//
// The whole batch is rejected on the first invalid assertion; nothing is ever
// partially appended. An empty assertion list is rejected because it conveys
// no information.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeInvalidArgument, "request is required")
	}
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "user ID is required")
	}
	if len(r.Assertions) == 0 {
		return dErrors.New(dErrors.CodeInvalidArgument, "consents must not be empty")
	}
	for _, a := range r.Assertions {
		if !a.Type.IsValid() {
			return dErrors.New(dErrors.CodeInvalidArgument,
				fmt.Sprintf("invalid consent type: %s. Expected one of: %s", a.Type, validTypeList()))
		}
	}
	return nil
}

func validTypeList() string {
	types := consentmodels.AllTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
