package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkerrors "github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var method = expects.RequestMethod
var path = expects.RequestPath
var body = expects.RequestBody
var queryParam = expects.QueryParamEquals

func TestExecuteDecodesResponse(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodGet),
			path("/calendars/cal-1"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"id":"cal-1","name":"Work","is_primary":true}`)),
		),
	)
	defer s.Close()

	c := New(s.URL(), AccessToken("token"))
	result, err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/calendars/cal-1"})
	is.NoErr(err)

	is.Equal(result, map[string]any{"id": "cal-1", "name": "Work", "is_primary": true})
}

func TestExecuteSendsPayloadAsJSON(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPut),
			path("/calendars/cal-1"),
			body(`{"name":"Home"}`),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"id":"cal-1","name":"Home"}`)),
		),
	)
	defer s.Close()

	c := New(s.URL())
	_, err := c.Execute(context.Background(), Request{
		Method:  http.MethodPut,
		Path:    "/calendars/cal-1",
		Payload: map[string]any{"name": "Home"},
	})
	is.NoErr(err)
	is.Equal(s.RequestCount(), 1)
}

func TestExecuteEncodesQuery(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodGet),
			path("/events"),
			queryParam("calendar_id", "cal-1"),
			queryParam("limit", "100"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`[]`)),
		),
	)
	defer s.Close()

	c := New(s.URL())
	result, err := c.Execute(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/events",
		Query:  map[string]string{"calendar_id": "cal-1", "limit": "100"},
	})
	is.NoErr(err)
	is.Equal(result, []any{})
}

func TestEmptyResponseBodyDecodesToNil(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodDelete)),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := New(s.URL())
	result, err := c.Execute(context.Background(), Request{Method: http.MethodDelete, Path: "/calendars/cal-1"})
	is.NoErr(err)
	is.Equal(result, nil)
}

func TestErrorResponsesAreTranslated(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, expects.AnyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusNotFound),
			response.Body([]byte(`{"type":"invalid_request_error","message":"Couldn't find calendar"}`)),
		),
	)
	defer s.Close()

	c := New(s.URL())
	_, err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/calendars/missing"})

	is.True(errors.Is(err, sdkerrors.ErrNotFound))

	var apiErr *sdkerrors.APIError
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Message, "Couldn't find calendar")
}

func TestAuthorizationHeaders(t *testing.T) {
	is := is.New(t)

	var captured *http.Request
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	}))
	defer s.Close()

	c := New(s.URL, AccessToken("token"), AppCredentials("app-1", "secret"), UserAgent("tests"))
	ctx := context.Background()

	_, err := c.Execute(ctx, Request{Method: http.MethodGet, Path: "/calendars"})
	is.NoErr(err)
	is.Equal(captured.Header.Get("Authorization"), "Bearer token") // unspecified should default to bearer
	is.Equal(captured.Header.Get("User-Agent"), "tests")
	is.True(captured.Header.Get("X-Request-Id") != "")

	_, err = c.Execute(ctx, Request{Method: http.MethodGet, Path: "/component/app-1", AuthMethod: AuthBasic})
	is.NoErr(err)
	user, password, ok := captured.BasicAuth()
	is.True(ok)
	is.Equal(user, "secret")
	is.Equal(password, "")

	_, err = c.Execute(ctx, Request{Method: http.MethodGet, Path: "/public", AuthMethod: AuthNone})
	is.NoErr(err)
	is.Equal(captured.Header.Get("Authorization"), "")
}

func TestAppID(t *testing.T) {
	is := is.New(t)
	is.Equal(New("http://localhost", AppCredentials("app-1", "secret")).AppID(), "app-1")
}
