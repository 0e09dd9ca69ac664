package rpc

import (
	"strings"
	"testing"
)

const sampleRequest = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
                  xmlns:tns="http://newsgateway.example.com/soap">
  <soapenv:Body>
    <tns:authenticateUser>
      <username> alice </username>
      <password>s3cret</password>
    </tns:authenticateUser>
  </soapenv:Body>
</soapenv:Envelope>`

func TestParseEnvelope(t *testing.T) {
	call, err := ParseEnvelope([]byte(sampleRequest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if call.Name() != "authenticateUser" {
		t.Fatalf("unexpected operation %q", call.Name())
	}
	if got := call.Part("username"); got != "alice" {
		t.Fatalf("expected trimmed part, got %q", got)
	}
	if got := call.Part("password"); got != "s3cret" {
		t.Fatalf("unexpected password part %q", got)
	}
	if got := call.Part("token"); got != "" {
		t.Fatalf("missing part should read empty, got %q", got)
	}
}

func TestParseEnvelopeMalformed(t *testing.T) {
	if _, err := ParseEnvelope([]byte("not xml at all")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
	empty := `<Envelope xmlns="http://schemas.xmlsoap.org/soap/envelope/"><Body></Body></Envelope>`
	if _, err := ParseEnvelope([]byte(empty)); err == nil {
		t.Fatalf("expected error for empty body")
	}
}

func TestRenderEnvelope(t *testing.T) {
	encoded, err := RenderEnvelope(AuthenticateUserResponse{
		Success: true,
		Message: "authentication successful",
		Role:    "ADMIN",
		Token:   "abc",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := string(encoded)
	for _, want := range []string{
		`xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`,
		`xmlns:tns="http://newsgateway.example.com/soap"`,
		"<soap:Body>",
		"<tns:authenticateUserResponse>",
		"<success>true</success>",
		"<token>abc</token>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("rendered envelope missing %q:\n%s", want, body)
		}
	}
}

func TestRenderFault(t *testing.T) {
	body := string(RenderFault("soap:Client", "malformed soap envelope"))
	if !strings.Contains(body, "<faultcode>soap:Client</faultcode>") {
		t.Fatalf("missing fault code:\n%s", body)
	}
	if !strings.Contains(body, "<faultstring>malformed soap envelope</faultstring>") {
		t.Fatalf("missing fault string:\n%s", body)
	}
}
