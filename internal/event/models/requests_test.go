package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consentmodels "consentd/internal/consent/models"
	dErrors "consentd/pkg/domain-errors"
)

// TestCreateRequest_Validate enforces the ingestion rules guarding the event
// log: no empty batches, no out-of-vocabulary types, all-or-nothing rejection.
func TestCreateRequest_Validate(t *testing.T) {
	userID := uuid.New().String()

	t.Run("accepts well-formed request", func(t *testing.T) {
		req := &CreateRequest{
			UserID: userID,
			Assertions: []consentmodels.Assertion{
				{Type: consentmodels.TypeEmailNotifications, Enabled: true},
				{Type: consentmodels.TypeSMSNotifications, Enabled: false},
			},
		}
		require.NoError(t, req.Validate())
	})

	t.Run("rejects missing user ID", func(t *testing.T) {
		req := &CreateRequest{
			Assertions: []consentmodels.Assertion{{Type: consentmodels.TypeEmailNotifications, Enabled: true}},
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	t.Run("rejects empty assertion list", func(t *testing.T) {
		req := &CreateRequest{UserID: userID}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	t.Run("rejects out-of-vocabulary type naming it and the valid set", func(t *testing.T) {
		req := &CreateRequest{
			UserID: userID,
			Assertions: []consentmodels.Assertion{
				{Type: "bogus_type", Enabled: true},
			},
		}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		assert.Contains(t, err.Error(), "bogus_type")
		assert.Contains(t, err.Error(), "email_notifications")
		assert.Contains(t, err.Error(), "sms_notifications")
	})

	t.Run("one bad assertion rejects the whole batch", func(t *testing.T) {
		req := &CreateRequest{
			UserID: userID,
			Assertions: []consentmodels.Assertion{
				{Type: consentmodels.TypeEmailNotifications, Enabled: true},
				{Type: "push_notifications", Enabled: true},
			},
		}
		require.Error(t, req.Validate())
	})
}
