package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gosoap "github.com/hooklift/gowsdl/soap"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/prodsync/pdgate/pkg/domain/types"
)

// Defaults of the product download service binding
const (
	DefaultEndpoint     = "https://vinlink.ibc.ca/ProductService/ProductDownload.svc"
	DefaultService      = "ProductDownloadClient"
	DefaultNamespace    = "http://tempuri.org/"
	DefaultActionPrefix = "http://tempuri.org/IProductDownload"
	DefaultTimeout      = 60 * time.Second
)

// Config describes the single service access point used for every call
type Config struct {
	Endpoint      string
	Service       string
	Namespace     string
	DataNamespace string
	ActionPrefix  string
	Timeout       time.Duration
}

// Client is a long-lived SOAP binding to the product download service. It holds no per-call
// state and is shared by concurrent requests.
type Client struct {
	cfg  Config
	http *resty.Client
	soap *gosoap.Client
}

// NewClient creates a binding. Empty fields of cfg fall back to the package defaults.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.ActionPrefix == "" {
		cfg.ActionPrefix = DefaultActionPrefix
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", types.ServiceName+"/"+types.Version)

	return &Client{
		cfg:  cfg,
		http: httpClient,
		soap: gosoap.NewClient(cfg.Endpoint, gosoap.WithHTTPClient(httpClient.GetClient())),
	}
}

// Config returns the effective binding configuration
func (c *Client) Config() Config {
	return c.cfg
}

// PrepareDownloadFile invokes the remote PrepareDownloadFile operation
func (c *Client) PrepareDownloadFile(ctx context.Context, call *model.PrepareCall) (*model.PrepareResult, error) {
	req := &prepareDownloadFile{
		XMLName: xml.Name{Space: c.cfg.Namespace, Local: string(types.OpPrepareDownloadFile)},
		Request: newDataContract(c.cfg.Namespace, c.cfg.DataNamespace,
			member{"User", call.User},
			member{"Password", call.Password},
			member{"Product", call.Product},
			member{"PublicationYear", call.PublicationYear},
			member{"Language", call.Language},
			member{"StartDate", call.StartDate},
			member{"EndDate", call.EndDate},
		),
	}

	var resp prepareDownloadFileResponse
	if err := c.call(ctx, types.OpPrepareDownloadFile, req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, goerr.New("response has no PrepareDownloadFileResult")
	}

	return &model.PrepareResult{
		ErrorMessage: resp.Result.ErrorMessage,
		FilePath:     resp.Result.FilePath,
	}, nil
}

// GetDownloadFile invokes the remote GetDownloadFile operation. An absent result yields nil.
func (c *Client) GetDownloadFile(ctx context.Context, call *model.GetDownloadCall) ([]byte, error) {
	req := &getDownloadFile{
		XMLName: xml.Name{Space: c.cfg.Namespace, Local: string(types.OpGetDownloadFile)},
		Request: newDataContract(c.cfg.Namespace, c.cfg.DataNamespace,
			member{"User", call.User},
			member{"Password", call.Password},
			member{"FilePath", call.FilePath},
		),
	}

	var resp getDownloadFileResponse
	if err := c.call(ctx, types.OpGetDownloadFile, req, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, nil
	}

	return []byte(*resp.Result), nil
}

// Ping fetches the service WSDL to check that the endpoint answers
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get(c.cfg.Endpoint + "?wsdl")
	if err != nil {
		return goerr.Wrap(err, "failed to reach service endpoint", goerr.V("endpoint", c.cfg.Endpoint))
	}
	if !resp.IsSuccess() {
		return goerr.New("unexpected status from service endpoint",
			goerr.V("endpoint", c.cfg.Endpoint),
			goerr.V("status", resp.StatusCode()))
	}
	return nil
}

// call returns errors whose text is the remote fault message or the transport error; callers
// embed it verbatim.
func (c *Client) call(ctx context.Context, op types.Operation, req, resp any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	logger := ctxlog.From(ctx).With(
		slog.String("call_id", uuid.NewString()),
		slog.String("service", c.cfg.Service),
		slog.String("operation", op.String()),
	)

	start := time.Now()
	logger.Debug("Calling remote operation", slog.String("endpoint", c.cfg.Endpoint))

	if err := c.soap.CallContext(ctx, c.soapAction(op), req, resp); err != nil {
		logger.Warn("Remote operation failed",
			slog.Any("error", err),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return faultOf(err)
	}

	logger.Debug("Remote operation completed", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// faultOf replaces an HTTP error carrying a SOAP fault envelope with the fault itself. WCF
// services answer faults with status 500.
func faultOf(err error) error {
	var httpErr *gosoap.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var env faultEnvelope
	if xml.Unmarshal(httpErr.ResponseBody, &env) != nil || env.Body.Fault == nil || env.Body.Fault.String == "" {
		return err
	}

	return goerr.New(env.Body.Fault.String,
		goerr.V("fault_code", env.Body.Fault.Code),
		goerr.V("status", httpErr.StatusCode))
}

func (c *Client) soapAction(op types.Operation) string {
	return strings.TrimSuffix(c.cfg.ActionPrefix, "/") + "/" + op.String()
}
