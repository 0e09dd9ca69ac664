package rpc

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dispatcher, _ := newTestDispatcher(t)
	handler := NewHandler(dispatcher)

	app := fiber.New()
	app.Get("/soap", handler.ServeWSDL)
	app.Post("/soap", handler.HandleCall)
	return app
}

func postSoap(t *testing.T, app *fiber.App, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/soap", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(raw)
}

func TestServeWSDL(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/soap?wsdl", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	for _, want := range []string{"NewsGatewayService", "authenticateUser", "listUsers", "addUser", "deleteUser"} {
		if !strings.Contains(body, want) {
			t.Fatalf("wsdl missing %q", want)
		}
	}
}

func TestHandleCallSuccess(t *testing.T) {
	app := newTestApp(t)

	resp, body := postSoap(t, app, `<?xml version="1.0"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <authenticateUser>
      <username>root</username>
      <password>s3cret</password>
    </authenticateUser>
  </soapenv:Body>
</soapenv:Envelope>`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(body, "<tns:authenticateUserResponse>") || !strings.Contains(body, "<success>true</success>") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestHandleCallAuthorizationFailureIsNotAFault(t *testing.T) {
	app := newTestApp(t)

	resp, body := postSoap(t, app, `<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body><listUsers/></Body></Envelope>`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("soft failures stay 200, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "soap:Fault") {
		t.Fatalf("authorization failure must not fault:\n%s", body)
	}
	if !strings.Contains(body, "<success>false</success>") || !strings.Contains(body, "token required") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestHandleCallMalformedEnvelope(t *testing.T) {
	app := newTestApp(t)

	resp, body := postSoap(t, app, "this is not xml")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(body, "soap:Client") || !strings.Contains(body, "malformed soap envelope") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestHandleCallUnknownOperation(t *testing.T) {
	app := newTestApp(t)

	resp, body := postSoap(t, app, `<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body><dropTables/></Body></Envelope>`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(body, "unknown operation dropTables") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}
