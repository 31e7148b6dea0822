package html

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"mailpress/api"
	"mailpress/config"
	"mailpress/service/transform"
)

func init() {
	api.RegisterRoute(RegisterTemplateRoutes)
}

// RegisterTemplateRoutes registers the template-viewing routes: GET / renders
// the transformed local template inline, GET /download serves it as an
// attachment.
func RegisterTemplateRoutes(e *echo.Echo, tr transform.Transformer) {
	e.GET("/", func(c echo.Context) error {
		return serveTemplate(c, tr, false)
	})
	e.GET("/download", func(c echo.Context) error {
		return serveTemplate(c, tr, true)
	})
}

func serveTemplate(c echo.Context, tr transform.Transformer, download bool) error {
	path := config.AppConfig.TemplatePath
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":   "Template not found",
				"message": fmt.Sprintf("%s does not exist", path),
			})
		}
		log.Println("Template read error:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Template read failed",
			"message": err.Error(),
		})
	}

	out, err := tr.Process(string(raw))
	if err != nil {
		log.Println("Template processing error:", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "Processing failed",
			"message": err.Error(),
		})
	}

	if download {
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="newsletter.html"`)
	}
	return c.HTML(http.StatusOK, out)
}
