package rpc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNS      = "http://newsgateway.example.com/soap"
)

// OperationCall is a parsed rpc/literal invocation: the first element of the
// SOAP Body names the operation, its children carry the message parts.
type OperationCall struct {
	XMLName xml.Name
	Parts   []messagePart `xml:",any"`
}

type messagePart struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Name returns the invoked operation's local name.
func (c *OperationCall) Name() string {
	return c.XMLName.Local
}

// Part returns the named message part; missing parts read as empty strings,
// matching the loosely-typed rpc/literal convention.
func (c *OperationCall) Part(name string) string {
	for _, part := range c.Parts {
		if part.XMLName.Local == name {
			return strings.TrimSpace(part.Value)
		}
	}
	return ""
}

type requestEnvelope struct {
	XMLName xml.Name    `xml:"Envelope"`
	Body    requestBody `xml:"Body"`
}

type requestBody struct {
	Operation OperationCall `xml:",any"`
}

// ParseEnvelope decodes an inbound SOAP envelope into an operation call.
func ParseEnvelope(payload []byte) (*OperationCall, error) {
	var envelope requestEnvelope
	if err := xml.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}
	if envelope.Body.Operation.XMLName.Local == "" {
		return nil, fmt.Errorf("empty soap body")
	}
	return &envelope.Body.Operation, nil
}

type responseEnvelope struct {
	XMLName   xml.Name `xml:"soap:Envelope"`
	SoapNS    string   `xml:"xmlns:soap,attr"`
	ServiceNS string   `xml:"xmlns:tns,attr"`
	Body      responseBody
}

type responseBody struct {
	XMLName xml.Name `xml:"soap:Body"`
	Payload any
}

// RenderEnvelope serializes an operation response into a SOAP envelope.
func RenderEnvelope(payload any) ([]byte, error) {
	envelope := responseEnvelope{
		SoapNS:    soapEnvelopeNS,
		ServiceNS: serviceNS,
		Body:      responseBody{Payload: payload},
	}
	encoded, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), encoded...), nil
}

type faultPayload struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    string   `xml:"faultcode"`
	Message string   `xml:"faultstring"`
}

// RenderFault serializes a transport-level SOAP fault. Declared operations
// never fault; this covers malformed envelopes and unknown operations only.
func RenderFault(code, message string) []byte {
	encoded, err := RenderEnvelope(faultPayload{Code: code, Message: message})
	if err != nil {
		return []byte(xml.Header)
	}
	return encoded
}
