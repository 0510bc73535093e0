package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	eventstore "consentd/internal/event/store"
	httptransport "consentd/internal/transport/http"
	"consentd/internal/user/handler"
	userservice "consentd/internal/user/service"
	userstore "consentd/internal/user/store"
	dErrors "consentd/pkg/domain-errors"
)

type UserHandlerSuite struct {
	suite.Suite
	server *httptest.Server
	users  *userstore.InMemoryStore
}

func (s *UserHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := eventstore.NewInMemory()
	s.users = userstore.NewInMemory(userstore.WithCascade(events.DeleteByUser))
	service := userservice.NewService(s.users, nil, logger)
	router := httptransport.NewRouter(logger, handler.New(service, logger, nil))
	s.server = httptest.NewServer(router)
}

func (s *UserHandlerSuite) TearDownTest() {
	s.server.Close()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) postJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *UserHandlerSuite) decodeBody(resp *http.Response, v any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *UserHandlerSuite) assertErrorEnvelope(resp *http.Response, status int, code dErrors.Code) {
	s.Equal(status, resp.StatusCode)
	var envelope map[string]string
	s.decodeBody(resp, &envelope)
	s.Equal(string(code), envelope["error"])
}

func (s *UserHandlerSuite) TestCreateUser() {
	s.Run("valid email returns 201 with the stored user", func() {
		resp := s.postJSON("/users", map[string]string{"email": "alice@example.com"})
		s.Equal(http.StatusCreated, resp.StatusCode)

		var body handler.UserResponse
		s.decodeBody(resp, &body)
		s.False(body.ID.IsNil())
		s.Equal("alice@example.com", body.Email)
		s.False(body.CreatedAt.IsZero())
	})

	s.Run("duplicate email returns 409", func() {
		resp := s.postJSON("/users", map[string]string{"email": "bob@example.com"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = s.postJSON("/users", map[string]string{"email": "bob@example.com"})
		s.assertErrorEnvelope(resp, http.StatusConflict, dErrors.CodeConflict)
	})

	s.Run("malformed body returns 400", func() {
		resp, err := http.Post(s.server.URL+"/users", "application/json", bytes.NewReader([]byte("{not json")))
		s.Require().NoError(err)
		s.assertErrorEnvelope(resp, http.StatusBadRequest, dErrors.CodeInvalidArgument)
	})

	s.Run("invalid email returns 400", func() {
		resp := s.postJSON("/users", map[string]string{"email": "not-an-email"})
		s.assertErrorEnvelope(resp, http.StatusBadRequest, dErrors.CodeInvalidArgument)
	})
}

func (s *UserHandlerSuite) TestDeleteUser() {
	s.Run("existing user returns 200 with the deleted row", func() {
		resp := s.postJSON("/users", map[string]string{"email": "alice@example.com"})
		var created handler.UserResponse
		s.decodeBody(resp, &created)

		req, err := http.NewRequest(http.MethodDelete, s.server.URL+"/users/"+created.ID.String(), nil)
		s.Require().NoError(err)
		deleteResp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)

		s.Equal(http.StatusOK, deleteResp.StatusCode)
		var deleted handler.UserResponse
		s.decodeBody(deleteResp, &deleted)
		s.Equal(created.ID, deleted.ID)
	})

	s.Run("unknown user returns 404", func() {
		req, err := http.NewRequest(http.MethodDelete,
			s.server.URL+"/users/550e8400-e29b-41d4-a716-446655440000", nil)
		s.Require().NoError(err)
		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)

		s.assertErrorEnvelope(resp, http.StatusNotFound, dErrors.CodeNotFound)
	})

	s.Run("malformed id returns 400", func() {
		req, err := http.NewRequest(http.MethodDelete, s.server.URL+"/users/not-a-uuid", nil)
		s.Require().NoError(err)
		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)

		s.assertErrorEnvelope(resp, http.StatusBadRequest, dErrors.CodeInvalidArgument)
	})
}

func (s *UserHandlerSuite) TestListUsers() {
	s.Run("defaults apply when no query is given", func() {
		resp := s.postJSON("/users", map[string]string{"email": "alice@example.com"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		listResp, err := http.Get(s.server.URL + "/users")
		s.Require().NoError(err)
		s.Equal(http.StatusOK, listResp.StatusCode)

		var body handler.ListResponse
		s.decodeBody(listResp, &body)
		s.Equal(1, body.TotalUsers)
		s.Equal(1, body.TotalPages)
		s.Equal(1, body.Page)
		s.Equal(25, body.Limit)
		s.Len(body.Users, 1)
	})

	s.Run("limit above the cap returns 400", func() {
		resp, err := http.Get(s.server.URL + "/users?limit=101")
		s.Require().NoError(err)
		s.assertErrorEnvelope(resp, http.StatusBadRequest, dErrors.CodeInvalidArgument)
	})

	s.Run("page zero returns 400", func() {
		resp, err := http.Get(s.server.URL + "/users?page=0")
		s.Require().NoError(err)
		s.assertErrorEnvelope(resp, http.StatusBadRequest, dErrors.CodeInvalidArgument)
	})

	s.Run("page past the end returns an empty slice", func() {
		resp, err := http.Get(s.server.URL + "/users?page=99")
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode)

		var body handler.ListResponse
		s.decodeBody(resp, &body)
		s.Empty(body.Users)
	})
}
