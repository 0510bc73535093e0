package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	consentmodels "consentd/internal/consent/models"
	"consentd/internal/event/models"
	"consentd/internal/event/service/mocks"
	"consentd/internal/sentinel"
	usermodels "consentd/internal/user/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/pagination"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	mockUsers *mocks.MockUserStore
	service   *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.mockUsers = mocks.NewMockUserStore(s.ctrl)
	s.service = NewService(s.mockStore, s.mockUsers, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) knownUser() *usermodels.User {
	now := time.Now()
	return &usermodels.User{ID: id.NewUserID(), Email: "alice@example.com", CreatedAt: now, UpdatedAt: now}
}

func (s *ServiceSuite) TestCreate_Success() {
	ctx := context.Background()
	user := s.knownUser()

	s.mockUsers.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	s.mockStore.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event *models.Event) error {
			event.Seq = 1
			return nil
		})

	event, err := s.service.Create(ctx, &models.CreateRequest{
		UserID: user.ID.String(),
		Assertions: []consentmodels.Assertion{
			{Type: consentmodels.TypeEmailNotifications, Enabled: true},
		},
	})

	s.Require().NoError(err)
	s.False(event.ID.IsNil())
	s.Equal(user.ID, event.UserID)
	s.Equal(int64(1), event.Seq)
	s.Len(event.Assertions, 1)
}

func (s *ServiceSuite) TestCreate_UnknownUser() {
	ctx := context.Background()
	userID := id.NewUserID()

	// No Create expectation: a failed existence check must append nothing.
	s.mockUsers.EXPECT().FindByID(ctx, userID).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.Create(ctx, &models.CreateRequest{
		UserID: userID.String(),
		Assertions: []consentmodels.Assertion{
			{Type: consentmodels.TypeEmailNotifications, Enabled: true},
		},
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Contains(err.Error(), "does not exist")
}

func (s *ServiceSuite) TestCreate_InvalidType() {
	// Neither store may be touched when validation fails.
	_, err := s.service.Create(context.Background(), &models.CreateRequest{
		UserID: id.NewUserID().String(),
		Assertions: []consentmodels.Assertion{
			{Type: consentmodels.TypeEmailNotifications, Enabled: true},
			{Type: "bogus_type", Enabled: false},
		},
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	s.Contains(err.Error(), "bogus_type")
}

func (s *ServiceSuite) TestCreate_EmptyAssertions() {
	_, err := s.service.Create(context.Background(), &models.CreateRequest{
		UserID:     id.NewUserID().String(),
		Assertions: []consentmodels.Assertion{},
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
}

func (s *ServiceSuite) TestCreate_UserDeletedBetweenCheckAndAppend() {
	ctx := context.Background()
	user := s.knownUser()

	s.mockUsers.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	s.mockStore.EXPECT().Create(ctx, gomock.Any()).Return(sentinel.ErrNotFound)

	_, err := s.service.Create(ctx, &models.CreateRequest{
		UserID: user.ID.String(),
		Assertions: []consentmodels.Assertion{
			{Type: consentmodels.TypeSMSNotifications, Enabled: false},
		},
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestList_Success() {
	ctx := context.Background()
	events := []*models.Event{
		{ID: id.NewEventID(), UserID: id.NewUserID(), Seq: 1, CreatedAt: time.Now()},
	}

	s.mockStore.EXPECT().Count(gomock.Any()).Return(51, nil)
	s.mockStore.EXPECT().ListPage(gomock.Any(), 25, 25).Return(events, nil)

	result, err := s.service.List(ctx, pagination.Params{Page: 2, Limit: 25})

	s.Require().NoError(err)
	s.Equal(51, result.TotalEvents)
	s.Equal(3, result.TotalPages)
	s.Equal(2, result.Page)
	s.Equal(25, result.Limit)
	s.Len(result.Events, 1)
}

func (s *ServiceSuite) TestList_StoreFailure() {
	s.mockStore.EXPECT().Count(gomock.Any()).Return(0, errors.New("connection reset")).MaxTimes(1)
	s.mockStore.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset")).MaxTimes(1)

	_, err := s.service.List(context.Background(), pagination.Params{Page: 1, Limit: 25})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
