package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"lessonboard/config"
	"lessonboard/internal/delivery/http/middleware"
	"lessonboard/internal/delivery/http/response"
	domainerrors "lessonboard/internal/domain/errors"
	"lessonboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// videoFormField is the multipart field that carries a lesson's video.
const videoFormField = "video"

// LessonHandler holds dependencies for lesson handlers.
type LessonHandler struct {
	uc             usecase.LessonUsecase
	maxUploadBytes int64
}

// NewLessonHandler is the constructor for LessonHandler, injected by Fx.
func NewLessonHandler(uc usecase.LessonUsecase, cfg *config.Config) *LessonHandler {
	var maxUploadBytes int64
	if cfg != nil && cfg.Media != nil {
		maxUploadBytes = cfg.Media.MaxUploadBytes
	}

	return &LessonHandler{
		uc:             uc,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles lesson publication. The request is either JSON
// (title/body only) or multipart form data with an optional video file.
func (h *LessonHandler) Create(c echo.Context) error {
	callerID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	title, body, upload, closeUpload, err := h.lessonForm(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	lesson, err := h.uc.Create(c.Request().Context(), &usecase.CreateLessonInput{
		AuthorID: callerID,
		Title:    title,
		Body:     body,
		Upload:   upload,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toLessonView(lesson, ""), "Lesson created successfully")
}

// Get returns a single lesson with its author's display name.
func (h *LessonHandler) Get(c echo.Context) error {
	lessonID, err := lessonIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Get(c.Request().Context(), lessonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonView(output.Lesson, output.AuthorName), "")
}

// List returns all lessons, newest first.
func (h *LessonHandler) List(c echo.Context) error {
	lessons, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonViews(lessons), "")
}

// Update edits a lesson; only its author may call this.
func (h *LessonHandler) Update(c echo.Context) error {
	callerID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	lessonID, err := lessonIDParam(c)
	if err != nil {
		return err
	}

	title, body, upload, closeUpload, err := h.lessonForm(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	lesson, err := h.uc.Update(c.Request().Context(), &usecase.UpdateLessonInput{
		CallerID: callerID,
		LessonID: lessonID,
		Title:    title,
		Body:     body,
		Upload:   upload,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonView(lesson, ""), "Lesson updated successfully")
}

// Delete removes a lesson; only its author may call this.
func (h *LessonHandler) Delete(c echo.Context) error {
	callerID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	lessonID, err := lessonIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), callerID, lessonID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Lesson deleted successfully")
}

// DeleteMedia detaches a lesson's video; only the author may call this.
func (h *LessonHandler) DeleteMedia(c echo.Context) error {
	callerID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	lessonID, err := lessonIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMedia(c.Request().Context(), callerID, lessonID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Lesson video removed")
}

// lessonForm extracts title, body and the optional video upload from the
// request. The returned closer must be deferred; it releases the
// multipart file once the use case is done streaming it.
func (h *LessonHandler) lessonForm(c echo.Context) (title, body string, upload *usecase.MediaUpload, closeUpload func(), err error) {
	closeUpload = func() {}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		var jsonBody struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if bindErr := c.Bind(&jsonBody); bindErr != nil {
			return "", "", nil, closeUpload, domainerrors.ErrValidationFailed.WithDetails("invalid lesson input")
		}

		return jsonBody.Title, jsonBody.Body, nil, closeUpload, nil
	}

	title = c.FormValue("title")
	body = c.FormValue("body")

	fileHeader, fileErr := c.FormFile(videoFormField)
	if fileErr != nil {
		// No video attached; title/body-only form submissions are fine.
		return title, body, nil, closeUpload, nil
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return "", "", nil, closeUpload, echo.NewHTTPError(
			http.StatusRequestEntityTooLarge, "Video exceeds the upload size limit")
	}

	src, openErr := fileHeader.Open()
	if openErr != nil {
		return "", "", nil, closeUpload, errors.Wrap(openErr, "failed to open uploaded video")
	}

	return title, body, &usecase.MediaUpload{
		Content:     src,
		ContentType: uploadContentType(fileHeader),
		Filename:    fileHeader.Filename,
	}, func() { _ = src.Close() }, nil
}

func uploadContentType(fileHeader *multipart.FileHeader) string {
	if contentType := fileHeader.Header.Get(echo.HeaderContentType); contentType != "" {
		return contentType
	}

	return echo.MIMEOctetStream
}

// callerID reads the authenticated user ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return id, ok
}

// lessonIDParam parses the :id path parameter.
func lessonIDParam(c echo.Context) (uuid.UUID, error) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("lesson id must be a UUID")
	}

	return lessonID, nil
}
