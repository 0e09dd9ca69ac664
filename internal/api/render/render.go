package render

import (
	"encoding/xml"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

const xmlContentType = "application/xml; charset=utf-8"

// Negotiate serializes the payload to JSON or XML based on the request's
// Accept header. JSON is the default when the client states no preference.
// Payload types carry both json and xml struct tags.
func Negotiate(c *fiber.Ctx, status int, payload any) error {
	switch c.Accepts("application/json", "application/xml", "text/xml") {
	case "application/xml", "text/xml":
		encoded, err := xml.MarshalIndent(payload, "", "  ")
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, xmlContentType)
		return c.Status(status).Send(append([]byte(xml.Header), encoded...))
	default:
		return c.Status(status).JSON(payload)
	}
}

// ErrorBody is the negotiated failure shape of the resource surface.
type ErrorBody struct {
	XMLName xml.Name `xml:"response" json:"-"`
	Success bool     `xml:"success" json:"success"`
	Error   string   `xml:"error" json:"error"`
}

// Error maps a typed failure onto a status-coded, negotiated body. Internal
// detail never reaches the response.
func Error(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)
	return Negotiate(c, domainErr.HTTPStatus, ErrorBody{Success: false, Error: domainErr.Message})
}
