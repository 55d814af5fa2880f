package soap

import (
	"encoding/base64"
	"encoding/xml"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Operation and parameter elements live in the target namespace. Members of the request data
// contract live in the data-contract namespace, or inherit the target namespace when it is empty.
// Both are resolved at runtime so that they can be configured.

type prepareDownloadFile struct {
	XMLName xml.Name
	Request *dataContract
}

type getDownloadFile struct {
	XMLName xml.Name
	Request *dataContract
}

// dataContract is the <request> parameter of an operation
type dataContract struct {
	name    xml.Name
	space   string
	members []member
}

type member struct {
	name  string
	value string
}

func newDataContract(namespace, dataNamespace string, members ...member) *dataContract {
	return &dataContract{
		name:    xml.Name{Space: namespace, Local: "request"},
		space:   dataNamespace,
		members: members,
	}
}

func (x *dataContract) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: x.name}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, m := range x.members {
		if err := e.EncodeElement(m.value, xml.StartElement{Name: xml.Name{Space: x.space, Local: m.name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type prepareDownloadFileResponse struct {
	XMLName xml.Name                   `xml:"PrepareDownloadFileResponse"`
	Result  *prepareDownloadFileResult `xml:"PrepareDownloadFileResult"`
}

type prepareDownloadFileResult struct {
	ErrorMessage []string `xml:"ErrorMessage>string"`
	FilePath     string   `xml:"FilePath"`
}

type getDownloadFileResponse struct {
	XMLName xml.Name      `xml:"GetDownloadFileResponse"`
	Result  *base64Binary `xml:"GetDownloadFileResult"`
}

// faultEnvelope reads a SOAP 1.1 fault that was delivered with an HTTP error status
type faultEnvelope struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    struct {
		Fault *soapFault `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// base64Binary decodes xs:base64Binary element content. Line breaks inside the text are allowed.
type base64Binary []byte

func (x *base64Binary) UnmarshalText(text []byte) error {
	clean := strings.Join(strings.Fields(string(text)), "")
	decoded, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return goerr.Wrap(err, "invalid base64Binary content", goerr.V("length", len(text)))
	}
	*x = decoded
	return nil
}
