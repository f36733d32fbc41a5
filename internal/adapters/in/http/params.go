package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	photosField   = "photos"
	maxPhotoBytes = 10 << 20
	maxPhotos     = 10
)

// evidence reads free-text fields and optional photos. Multipart requests carry
// the text as form values; other requests send a flat JSON object.
func evidence(c echo.Context, fields ...string) (map[string]string, []ports.PhotoUpload, error) {
	values := make(map[string]string, len(fields))
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		photos, err := photoUploads(c)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range fields {
			values[f] = c.FormValue(f)
		}
		return values, photos, nil
	}

	if c.Request().ContentLength == 0 {
		return values, nil, nil
	}
	var body map[string]string
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return nil, nil, err
	}
	for _, f := range fields {
		values[f] = body[f]
	}
	return values, nil, nil
}

func uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// driverPhaseParam accepts "pickup" and "delivery".
func driverPhaseParam(c echo.Context) (assignment.Phase, error) {
	phase, err := assignment.ParsePhase(c.Param("phase"))
	if err != nil {
		return assignment.UnknownPhase, err
	}
	if !phase.IsDriverPhase() {
		return assignment.UnknownPhase, errs.NewValueIsInvalidError("phase " + phase.String() + " has no driver trip")
	}
	return phase, nil
}

func floatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &v, nil
}

// photoUploads reads the multipart "photos" files. A request without a multipart
// body has no photos.
func photoUploads(c echo.Context) ([]ports.PhotoUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errs.NewValueIsInvalidErrorWithCause("multipart form", err)
	}

	files := form.File[photosField]
	if len(files) > maxPhotos {
		return nil, errs.NewValueIsOutOfRangeError(photosField, len(files), 0, maxPhotos)
	}

	uploads := make([]ports.PhotoUpload, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxPhotoBytes {
			return nil, errs.NewValueIsOutOfRangeError("photo "+fh.Filename, fh.Size, 1, maxPhotoBytes)
		}
		f, openErr := fh.Open()
		if openErr != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, openErr)
		}
		content, readErr := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
		_ = f.Close()
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, readErr)
		}
		uploads = append(uploads, ports.PhotoUpload{Filename: fh.Filename, Content: content})
	}
	return uploads, nil
}
