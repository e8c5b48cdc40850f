package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
)

// API is the part of the SDK that models route their requests through
type API interface {
	client.Executor
	AppID() string
}

// PathFunc resolves the collection path of a kind. It receives the API so
// that paths can embed runtime context such as the application id.
type PathFunc func(api API) string

func StaticPath(path string) PathFunc {
	return func(API) string {
		return path
	}
}

// Kind is everything that instances of one model type have in common
type Kind struct {
	Name          string
	Schema        *attributes.Schema
	Capabilities  Capabilities
	ResourcesPath PathFunc
	AuthMethod    client.AuthMethod
}

func (k *Kind) Path(api API) string {
	if k.ResourcesPath == nil {
		return ""
	}
	return k.ResourcesPath(api)
}

// Auth returns the auth method used for requests on behalf of this kind
func (k *Kind) Auth() client.AuthMethod {
	if k.AuthMethod == client.AuthUnspecified {
		return client.AuthBearer
	}
	return k.AuthMethod
}

// Require returns a *CapabilityError unless the kind supports op
func (k *Kind) Require(op Operation, subject any) error {
	if k.Capabilities.Allows(op) {
		return nil
	}
	return &CapabilityError{Op: op, Kind: k.Name, Subject: subject}
}

// New creates an unpersisted instance from user supplied values. Unknown
// attributes are an error.
func (k *Kind) New(api API, values map[string]any) (*Model, error) {
	attrs, err := k.Schema.New(values)
	if err != nil {
		return nil, err
	}

	return &Model{attrs: attrs, kind: k, api: api}, nil
}

// FromHash creates an instance from a decoded API object
func (k *Kind) FromHash(ctx context.Context, api API, data map[string]any) (*Model, error) {
	attrs := k.Schema.Empty()

	if err := attrs.MergeWire(ctx, data); err != nil {
		return nil, err
	}

	return &Model{attrs: attrs, kind: k, api: api}, nil
}

func (k *Kind) FromJSON(ctx context.Context, api API, b []byte) (*Model, error) {
	data := map[string]any{}

	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", k.Name, err)
	}

	return k.FromHash(ctx, api, data)
}
