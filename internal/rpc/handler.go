package rpc

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const contentTypeXML = "text/xml; charset=utf-8"

// Handler binds the dispatcher to the /soap transport endpoint.
type Handler struct {
	dispatcher *Dispatcher
}

// NewHandler constructs the transport binding.
func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// ServeWSDL handles GET /soap?wsdl.
func (h *Handler) ServeWSDL(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, contentTypeXML)
	return c.SendString(WSDL)
}

// HandleCall handles POST /soap. Declared operations always answer with a
// complete envelope; only a malformed request or an unknown operation yields
// a client fault.
func (h *Handler) HandleCall(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, contentTypeXML)

	call, err := ParseEnvelope(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).Send(RenderFault("soap:Client", "malformed soap envelope"))
	}

	payload, ok := h.dispatcher.Dispatch(c.UserContext(), call)
	if !ok {
		return c.Status(http.StatusBadRequest).Send(RenderFault("soap:Client", "unknown operation "+call.Name()))
	}

	encoded, err := RenderEnvelope(payload)
	if err != nil {
		return c.Status(http.StatusInternalServerError).Send(RenderFault("soap:Server", "response encoding failed"))
	}
	return c.Send(encoded)
}
