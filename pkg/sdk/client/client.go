package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AuthMethod int

const (
	AuthUnspecified AuthMethod = iota
	AuthBearer
	AuthBasic
	AuthNone
)

func (m AuthMethod) String() string {
	switch m {
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	case AuthNone:
		return "none"
	default:
		return "unspecified"
	}
}

// Request describes a single call against the API. Path is relative to the
// base url of the client.
type Request struct {
	Method     string
	Path       string
	Query      map[string]string
	Payload    any
	AuthMethod AuthMethod
}

type Executor interface {
	Execute(ctx context.Context, req Request) (any, error)
}

const DefaultUserAgent string = "mailbox-sdk-go"

func AccessToken(token string) func(*Client) {
	return func(c *Client) {
		c.accessToken = token
	}
}

func AppCredentials(appID, appSecret string) func(*Client) {
	return func(c *Client) {
		c.appID = appID
		c.appSecret = appSecret
	}
}

func Debug(enabled string) func(*Client) {
	return func(c *Client) {
		c.debug = (enabled == "true")
	}
}

func UserAgent(agent string) func(*Client) {
	return func(c *Client) {
		c.userAgent = agent
	}
}

func HTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

type Client struct {
	baseURL     string
	accessToken string
	appID       string
	appSecret   string
	userAgent   string
	debug       bool
	httpClient  *http.Client
}

func New(baseURL string, options ...func(*Client)) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: DefaultUserAgent,
		debug:     false,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeMethod     string = "http-method"
	TraceAttributePath       string = "api-path"
	TraceAttributeAuthMethod string = "auth-method"
)

var tracer = otel.Tracer("mailbox-sdk/client")

func (c *Client) AppID() string {
	return c.appID
}

// Execute sends the request and returns the decoded JSON response body. Error
// responses are translated into an *errors.APIError.
func (c *Client) Execute(ctx context.Context, req Request) (any, error) {
	var err error

	if req.AuthMethod == AuthUnspecified {
		req.AuthMethod = AuthBearer
	}

	ctx, span := tracer.Start(ctx, "execute",
		trace.WithAttributes(attribute.String(TraceAttributeMethod, req.Method)),
		trace.WithAttributes(attribute.String(TraceAttributePath, req.Path)),
		trace.WithAttributes(attribute.String(TraceAttributeAuthMethod, req.AuthMethod.String())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	var body io.Reader
	if req.Payload != nil {
		var b []byte
		b, err = json.Marshal(req.Payload)
		if err != nil {
			err = fmt.Errorf("failed to marshal payload: %s (%w)", err.Error(), errors.ErrRequest)
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	response, responseBody, err := c.callAPI(ctx, req, body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= http.StatusBadRequest {
		contentType := response.Header.Get("Content-Type")
		err = errors.NewErrorFromResponse(response.StatusCode, contentType, responseBody)
		return nil, err
	}

	if len(bytes.TrimSpace(responseBody)) == 0 {
		return nil, nil
	}

	var result any
	err = json.Unmarshal(responseBody, &result)
	if err != nil {
		if c.debug && len(responseBody) < 1000 {
			err = fmt.Errorf("unmarshaling of %s failed with err %s (%w)", string(responseBody), err.Error(), errors.ErrBadResponse)
		} else {
			err = fmt.Errorf("failed to decode response: %s (%w)", err.Error(), errors.ErrBadResponse)
		}
		return nil, err
	}

	return result, nil
}

func (c *Client) endpoint(path string, query map[string]string) string {
	endpoint := c.baseURL + path

	if len(query) > 0 {
		params := url.Values{}
		for k, v := range query {
			params.Set(k, v)
		}
		endpoint = endpoint + "?" + params.Encode()
	}

	return endpoint
}

func (c *Client) callAPI(ctx context.Context, r Request, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, c.endpoint(r.Path, r.Query), body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	requestID := uuid.New().String()

	req.Header.Add("Accept", "application/json")
	req.Header.Add("User-Agent", c.userAgent)
	req.Header.Add("X-Request-Id", requestID)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	switch r.AuthMethod {
	case AuthBearer:
		if c.accessToken != "" {
			req.Header.Add("Authorization", "Bearer "+c.accessToken)
		}
	case AuthBasic:
		req.SetBasicAuth(c.appSecret, "")
	}

	log := logging.GetFromContext(ctx).With(slog.String("request_id", requestID))
	log.Debug("calling api", slog.String("method", r.Method), slog.String("path", r.Path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusNotFound {
			reqbytes, _ := httputil.DumpRequest(req, false)
			respbytes, _ := httputil.DumpResponse(resp, false)

			log.Error("request failed", slog.String("request", string(reqbytes)), slog.String("response", string(respbytes)))
		}
	}

	return resp, respBody, nil
}
