package handler

import (
	"consentd/internal/consent/models"
)

// StateResponse maps every known consent type to its latest assertion, or
// null when the user's history never asserted that type. The map is always
// complete over the vocabulary so clients can distinguish "never asked" from
// "declined".
type StateResponse map[models.Type]*models.Assertion

func toStateResponse(state models.State) StateResponse {
	response := make(StateResponse, len(state))
	for typ, enabled := range state {
		if enabled == nil {
			response[typ] = nil
			continue
		}
		response[typ] = &models.Assertion{Type: typ, Enabled: *enabled}
	}
	return response
}
