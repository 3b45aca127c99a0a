package handler

import (
	"net/http"
	"time"

	"lessonboard/config"
	"lessonboard/internal/delivery/http/response"
	"lessonboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// signupSessionCookie names the cookie that ties the three wizard steps
// of one browser session together.
const signupSessionCookie = "signup_session"

// SignupHandler holds dependencies for the signup wizard handlers.
type SignupHandler struct {
	uc         usecase.SignupUsecase
	sessionTTL time.Duration
}

// NewSignupHandler is the constructor for SignupHandler, injected by Fx.
func NewSignupHandler(uc usecase.SignupUsecase, cfg *config.Config) *SignupHandler {
	sessionTTL := config.DefaultSignupSessionTTL
	if cfg != nil && cfg.Signup != nil && cfg.Signup.SessionTTL > 0 {
		sessionTTL = cfg.Signup.SessionTTL
	}

	return &SignupHandler{
		uc:         uc,
		sessionTTL: sessionTTL,
	}
}

// SubmitEmail handles step 1 of the signup wizard.
func (h *SignupHandler) SubmitEmail(c echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.SubmitEmail(c.Request().Context(), &usecase.SubmitEmailInput{
		SessionID: h.sessionID(c),
		Email:     body.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"state": string(output.State)}, "Email accepted")
}

// SubmitPassword handles step 2 of the signup wizard.
func (h *SignupHandler) SubmitPassword(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.SubmitPassword(c.Request().Context(), &usecase.SubmitPasswordInput{
		SessionID: h.sessionID(c),
		Password:  body.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"state": string(output.State)}, "Password accepted")
}

// SubmitProfile handles the final step of the signup wizard. On success
// the account exists and the wizard cookie is discarded.
func (h *SignupHandler) SubmitProfile(c echo.Context) error {
	var body struct {
		DisplayName string `json:"displayName"`
		Username    string `json:"username"`
	}
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.SubmitProfile(c.Request().Context(), &usecase.SubmitProfileInput{
		SessionID:   h.sessionID(c),
		DisplayName: body.DisplayName,
		Username:    body.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.clearSessionCookie(c)

	return response.Success(c, http.StatusCreated, toUserView(output.User), "User registered successfully")
}

// sessionID returns the wizard session id from the request cookie,
// minting a fresh one when the caller has none yet.
func (h *SignupHandler) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(signupSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     signupSessionCookie,
		Value:    sessionID,
		Path:     "/signup",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID
}

func (h *SignupHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     signupSessionCookie,
		Value:    "",
		Path:     "/signup",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
