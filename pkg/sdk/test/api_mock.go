package test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
)

// Response is a scripted reply to a single request
type Response struct {
	Body any
	Err  error
}

func Respond(body any) Response {
	return Response{Body: body}
}

// RespondJSON decodes body the way the transport does, so numbers end up as
// float64 just like in real responses
func RespondJSON(body string) Response {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		panic(err)
	}
	return Response{Body: decoded}
}

func Fail(err error) Response {
	return Response{Err: err}
}

// APIMock records every request it is asked to execute and replies with the
// scripted responses in order. Requests beyond the script get an empty reply.
type APIMock struct {
	appID     string
	responses []Response
	requests  []client.Request
	mu        sync.Mutex
}

func NewAPIMock(appID string, responses ...Response) *APIMock {
	return &APIMock{
		appID:     appID,
		responses: responses,
	}
}

func (m *APIMock) Execute(ctx context.Context, req client.Request) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.responses) == 0 {
		return nil, nil
	}

	r := m.responses[0]
	m.responses = m.responses[1:]

	return r.Body, r.Err
}

func (m *APIMock) AppID() string {
	return m.appID
}

func (m *APIMock) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *APIMock) Requests() []client.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make([]client.Request, len(m.requests))
	copy(requests, m.requests)
	return requests
}

func (m *APIMock) LastRequest() client.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.requests) == 0 {
		return client.Request{}
	}
	return m.requests[len(m.requests)-1]
}
