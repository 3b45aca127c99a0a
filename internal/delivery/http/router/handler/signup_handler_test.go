package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lessonboard/internal/domain/entity"
	"lessonboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSignupUsecase records the session id each step was called with.
type stubSignupUsecase struct {
	lastSessionID string
	commitUser    *entity.User
}

func (s *stubSignupUsecase) SubmitEmail(_ context.Context, input *usecase.SubmitEmailInput) (*usecase.SignupProgressOutput, error) {
	s.lastSessionID = input.SessionID

	return &usecase.SignupProgressOutput{State: entity.SignupAwaitingPassword}, nil
}

func (s *stubSignupUsecase) SubmitPassword(_ context.Context, input *usecase.SubmitPasswordInput) (*usecase.SignupProgressOutput, error) {
	s.lastSessionID = input.SessionID

	return &usecase.SignupProgressOutput{State: entity.SignupAwaitingProfile}, nil
}

func (s *stubSignupUsecase) SubmitProfile(_ context.Context, input *usecase.SubmitProfileInput) (*usecase.SignupCommitOutput, error) {
	s.lastSessionID = input.SessionID

	return &usecase.SignupCommitOutput{User: s.commitUser}, nil
}

func postJSON(t *testing.T, handlerFn echo.HandlerFunc, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, handlerFn(e.NewContext(req, rec)))

	return rec
}

func TestSignupHandler_SubmitEmail_MintsSessionCookie(t *testing.T) {
	stub := &stubSignupUsecase{}
	handler := &SignupHandler{uc: stub, sessionTTL: time.Minute}

	rec := postJSON(t, handler.SubmitEmail, "/signup/email", `{"email":"a@b.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "awaiting_password")
	assert.NotEmpty(t, stub.lastSessionID)

	// A fresh session cookie must be set for the following steps.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, signupSessionCookie, cookies[0].Name)
	assert.Equal(t, stub.lastSessionID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSignupHandler_SubmitPassword_ReusesSessionCookie(t *testing.T) {
	stub := &stubSignupUsecase{}
	handler := &SignupHandler{uc: stub, sessionTTL: time.Minute}

	rec := postJSON(t, handler.SubmitPassword, "/signup/password", `{"password":"secret123"}`,
		&http.Cookie{Name: signupSessionCookie, Value: "existing-session"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "existing-session", stub.lastSessionID)
}

func TestSignupHandler_SubmitProfile_ClearsSessionCookie(t *testing.T) {
	stub := &stubSignupUsecase{commitUser: &entity.User{Email: "a@b.com", Username: "ada", PasswordHash: "$2a$hash"}}
	handler := &SignupHandler{uc: stub, sessionTTL: time.Minute}

	rec := postJSON(t, handler.SubmitProfile, "/signup/profile",
		`{"displayName":"Ada Lovelace","username":"ada"}`,
		&http.Cookie{Name: signupSessionCookie, Value: "existing-session"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "existing-session", stub.lastSessionID)

	// The response never leaks the password hash.
	assert.NotContains(t, rec.Body.String(), "$2a$hash")

	// The wizard cookie is expired once the account exists.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, signupSessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
