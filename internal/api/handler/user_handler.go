package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/domain"
	"github.com/taskboard/task-api/internal/core/ports"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /users/profile.
//
// @Summary      Get current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PATCH /users/profile.
//
// @Summary      Update user details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("user", "update").Inc()

	return c.JSON(http.StatusOK, updateProfileResponse{
		Message: "User profile updated successfully",
		User: updatedProfile{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			LinkedInURL: user.LinkedInURL,
		},
	})
}

// UploadImage handles POST /users/profile/upload (multipart field "file").
//
// @Summary      Upload profile image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  uploadImageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/profile/upload [post]
func (h *UserHandler) UploadImage(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return domain.ErrNoFile
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	body, contentType, err := sniffContentType(f, fh.Header.Get(echo.HeaderContentType))
	if err != nil {
		return err
	}

	user, err := h.service.UploadProfileImage(c.Request().Context(), userID, ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        body,
	})
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("user", "update").Inc()

	return c.JSON(http.StatusOK, uploadImageResponse{
		Message:      "Profile image updated successfully",
		ProfileImage: user.ProfileImage,
	})
}

const sniffLen = 512

// sniffContentType detects the type from the first bytes of the file. A
// specific declared type must agree with the content. The returned reader
// still yields the whole file.
func sniffContentType(r io.Reader, declared string) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if declared != "" && declared != echo.MIMEOctetStream && !detected.Is(declared) {
		return nil, "", fmt.Errorf("%w: declared %s but content is %s", domain.ErrInvalidImage, declared, detected.String())
	}
	return io.MultiReader(bytes.NewReader(head), r), detected.String(), nil
}

// ScrapeLinkedIn handles POST /users/linkedin/scrape/:userId.
//
// @Summary      Scrape LinkedIn profile and update user details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string         true  "Caller's user id"
// @Param        body    body      scrapeRequest  true  "LinkedIn profile URL"
// @Success      200     {object}  scrapeResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /users/linkedin/scrape/{userId} [post]
func (h *UserHandler) ScrapeLinkedIn(c echo.Context) error {
	var req scrapeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.ScrapeLinkedIn(c.Request().Context(), c.Param("userId"), req.LinkedInURL)
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("user", "update").Inc()

	return c.JSON(http.StatusOK, scrapeResponse{
		Message: "User profile updated with LinkedIn information successfully",
		User:    toLinkedInProfile(user),
	})
}
