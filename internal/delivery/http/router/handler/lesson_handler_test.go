package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverymiddleware "lessonboard/internal/delivery/http/middleware"
	"lessonboard/internal/domain/entity"
	"lessonboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLessonUsecase captures the create input it was called with.
type stubLessonUsecase struct {
	usecase.LessonUsecase

	createInput   *usecase.CreateLessonInput
	uploadContent string
}

func (s *stubLessonUsecase) Create(_ context.Context, input *usecase.CreateLessonInput) (*entity.Lesson, error) {
	s.createInput = input
	if input.Upload != nil {
		content, err := io.ReadAll(input.Upload.Content)
		if err != nil {
			return nil, err
		}
		s.uploadContent = string(content)
	}

	return &entity.Lesson{ID: uuid.New(), Title: input.Title, Body: input.Body, AuthorID: input.AuthorID}, nil
}

func newLessonContext(t *testing.T, req *http.Request, authorID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(deliverymiddleware.ContextKeyUserID, authorID)

	return c, rec
}

func TestLessonHandler_Create_JSONBody(t *testing.T) {
	stub := &stubLessonUsecase{}
	handler := &LessonHandler{uc: stub}
	authorID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/lessons",
		strings.NewReader(`{"title":"Intro","body":"lesson body"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newLessonContext(t, req, authorID)

	require.NoError(t, handler.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.createInput)
	assert.Equal(t, "Intro", stub.createInput.Title)
	assert.Equal(t, authorID, stub.createInput.AuthorID)
	assert.Nil(t, stub.createInput.Upload)
}

func TestLessonHandler_Create_MultipartWithVideo(t *testing.T) {
	stub := &stubLessonUsecase{}
	handler := &LessonHandler{uc: stub}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Intro"))
	require.NoError(t, writer.WriteField("body", "lesson body"))
	part, err := writer.CreateFormFile(videoFormField, "intro.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("video-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/lessons", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	c, rec := newLessonContext(t, req, uuid.New())

	require.NoError(t, handler.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.createInput)
	require.NotNil(t, stub.createInput.Upload)
	assert.Equal(t, "intro.mp4", stub.createInput.Upload.Filename)
	assert.Equal(t, "video-bytes", stub.uploadContent)
}

func TestLessonHandler_Create_RejectsOversizedVideo(t *testing.T) {
	stub := &stubLessonUsecase{}
	handler := &LessonHandler{uc: stub, maxUploadBytes: 4}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Intro"))
	require.NoError(t, writer.WriteField("body", "lesson body"))
	part, err := writer.CreateFormFile(videoFormField, "intro.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("more-than-four-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/lessons", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	c, _ := newLessonContext(t, req, uuid.New())

	err = handler.Create(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.Code)
	assert.Nil(t, stub.createInput)
}

func TestLessonHandler_Get_RejectsMalformedID(t *testing.T) {
	handler := &LessonHandler{uc: &stubLessonUsecase{}}

	req := httptest.NewRequest(http.MethodGet, "/lessons/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := handler.Get(c)
	require.Error(t, err)
}
