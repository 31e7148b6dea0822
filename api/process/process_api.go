package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mailpress/api"
	"mailpress/service/transform"
)

const defaultFilename = "newsletter.html"

func init() {
	api.RegisterRoute(RegisterProcessRoutes)
}

// RegisterProcessRoutes registers the document-processing endpoints.
func RegisterProcessRoutes(e *echo.Echo, tr transform.Transformer) {
	// POST /process – transform the posted document, return JSON
	e.POST("/process", func(c echo.Context) error {
		src, err := readDocument(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No HTML content provided"})
		}
		out, err := tr.Process(src)
		if err != nil {
			return processError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"html":     out,
			"filename": requestFilename(c),
		})
	})

	// POST /process-download – transform and serve as a file attachment
	e.POST("/process-download", func(c echo.Context) error {
		src, err := readDocument(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No HTML content provided"})
		}
		out, err := tr.Process(src)
		if err != nil {
			return processError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", requestFilename(c)))
		return c.HTML(http.StatusOK, out)
	})
}

// readDocument extracts the HTML source from the request: {"html": "..."} for
// JSON bodies, the raw body otherwise.
func readDocument(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		var payload struct {
			HTML string `json:"html"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", err
		}
		return payload.HTML, nil
	}
	return string(body), nil
}

func requestFilename(c echo.Context) string {
	if name := c.Request().Header.Get("X-Filename"); name != "" {
		return name
	}
	return defaultFilename
}

// processError maps pipeline errors to the response contract: empty input is
// a client error, everything else is a processing failure with the underlying
// diagnostic in the message.
func processError(c echo.Context, err error) error {
	if errors.Is(err, transform.ErrEmptyInput) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No HTML content provided"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"error":   "Processing failed",
		"message": err.Error(),
	})
}
