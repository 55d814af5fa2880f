package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/infra/soap"
	"github.com/urfave/cli/v3"
)

// SOAP holds the remote product download service binding configuration
type SOAP struct {
	Endpoint      string
	Service       string
	Namespace     string
	DataNamespace string
	ActionPrefix  string
	Timeout       time.Duration
}

// Flags returns CLI flags for the SOAP binding
func (c *SOAP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "soap-endpoint",
			Usage:       "Product download service endpoint URL",
			Value:       soap.DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("PDGATE_SOAP_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "soap-service",
			Usage:       "Service access point name",
			Value:       soap.DefaultService,
			Destination: &c.Service,
			Sources:     cli.EnvVars("PDGATE_SOAP_SERVICE"),
		},
		&cli.StringFlag{
			Name:        "soap-namespace",
			Usage:       "Target XML namespace of the service operations",
			Value:       soap.DefaultNamespace,
			Destination: &c.Namespace,
			Sources:     cli.EnvVars("PDGATE_SOAP_NAMESPACE"),
		},
		&cli.StringFlag{
			Name:        "soap-data-namespace",
			Usage:       "XML namespace of the request data contract (empty inherits the target namespace)",
			Destination: &c.DataNamespace,
			Sources:     cli.EnvVars("PDGATE_SOAP_DATA_NAMESPACE"),
		},
		&cli.StringFlag{
			Name:        "soap-action-prefix",
			Usage:       "SOAPAction prefix; the operation name is appended",
			Value:       soap.DefaultActionPrefix,
			Destination: &c.ActionPrefix,
			Sources:     cli.EnvVars("PDGATE_SOAP_ACTION_PREFIX"),
		},
		&cli.DurationFlag{
			Name:        "soap-timeout",
			Usage:       "Timeout of each remote call",
			Value:       soap.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PDGATE_SOAP_TIMEOUT"),
		},
	}
}

// ApplyFile fills values that were not set by flags or environment from the config file
func (c *SOAP) ApplyFile(f *SOAPFile, isSet isSetFunc) error {
	applyString(&c.Endpoint, f.Endpoint, "soap-endpoint", isSet)
	applyString(&c.Service, f.Service, "soap-service", isSet)
	applyString(&c.Namespace, f.Namespace, "soap-namespace", isSet)
	applyString(&c.DataNamespace, f.DataNamespace, "soap-data-namespace", isSet)
	applyString(&c.ActionPrefix, f.ActionPrefix, "soap-action-prefix", isSet)

	if f.Timeout != "" && !isSet("soap-timeout") {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid soap timeout in config file", goerr.V("timeout", f.Timeout))
		}
		c.Timeout = d
	}
	return nil
}

// Build creates the SOAP binding shared by all requests
func (c *SOAP) Build() *soap.Client {
	return soap.NewClient(soap.Config{
		Endpoint:      c.Endpoint,
		Service:       c.Service,
		Namespace:     c.Namespace,
		DataNamespace: c.DataNamespace,
		ActionPrefix:  c.ActionPrefix,
		Timeout:       c.Timeout,
	})
}
