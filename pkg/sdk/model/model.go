package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
	sdkerrors "github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// Model is an instance of a remote object. It starts out unpersisted, becomes
// persisted once the server has assigned it an id and ends up destroyed.
// Instances are not safe for concurrent use.
type Model struct {
	attrs     *attributes.Attributes
	kind      *Kind
	api       API
	destroyed bool
}

func (m *Model) Attributes() *attributes.Attributes {
	return m.attrs
}

func (m *Model) Kind() *Kind {
	return m.kind
}

func (m *Model) API() API {
	return m.api
}

func (m *Model) ID() string {
	return m.attrs.String("id")
}

func (m *Model) Persisted() bool {
	return !m.destroyed && m.ID() != ""
}

func (m *Model) Destroyed() bool {
	return m.destroyed
}

func (m *Model) ResourcesPath() string {
	return m.kind.Path(m.api)
}

func (m *Model) ResourcePath() string {
	return m.ResourcesPath() + "/" + url.PathEscape(m.ID())
}

// Execute sends a request on behalf of the model, using the auth method of
// its kind unless the request specifies one
func (m *Model) Execute(ctx context.Context, req client.Request) (any, error) {
	if req.AuthMethod == client.AuthUnspecified {
		req.AuthMethod = m.kind.Auth()
	}
	return m.api.Execute(ctx, req)
}

// Save updates a persisted instance with every assigned attribute, or creates
// it if it has not been persisted yet
func (m *Model) Save(ctx context.Context) error {
	if !m.Persisted() {
		return m.Create(ctx)
	}

	if err := m.kind.Require(OpUpdate, m); err != nil {
		return err
	}

	payload, err := m.attrs.SerializeForAPI()
	if err != nil {
		return err
	}

	return m.put(ctx, payload)
}

func (m *Model) Create(ctx context.Context) error {
	if m.destroyed {
		return ErrModelDestroyed
	}

	if err := m.kind.Require(OpCreate, m); err != nil {
		return err
	}

	payload, err := m.attrs.SerializeForAPI()
	if err != nil {
		return err
	}

	result, err := m.Execute(ctx, client.Request{
		Method:  http.MethodPost,
		Path:    m.ResourcesPath(),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", m.kind.Name, err)
	}

	return m.merge(ctx, result)
}

// Update assigns data to the instance and sends only those attributes to
// the server
func (m *Model) Update(ctx context.Context, data map[string]any) error {
	if err := m.requireUpdatable(); err != nil {
		return err
	}

	if err := m.assign(data); err != nil {
		return err
	}

	payload := map[string]any{}
	if len(data) > 0 {
		var err error
		payload, err = m.attrs.SerializeForAPI(keysOf(data)...)
		if err != nil {
			return err
		}
	}

	return m.put(ctx, payload)
}

// UpdateAllAttributes assigns data to the instance and replaces the remote
// object with every writable attribute
func (m *Model) UpdateAllAttributes(ctx context.Context, data map[string]any) error {
	if err := m.requireUpdatable(); err != nil {
		return err
	}

	if err := m.assign(data); err != nil {
		return err
	}

	return m.SaveAllAttributes(ctx)
}

func (m *Model) SaveAllAttributes(ctx context.Context) error {
	if !m.Persisted() {
		return m.Create(ctx)
	}

	if err := m.kind.Require(OpUpdate, m); err != nil {
		return err
	}

	payload, err := m.attrs.SerializeAllForAPI()
	if err != nil {
		return err
	}

	return m.put(ctx, payload)
}

// Reload replaces assigned attributes with the current remote state
func (m *Model) Reload(ctx context.Context) error {
	if err := m.requirePersisted(); err != nil {
		return err
	}

	result, err := m.Execute(ctx, client.Request{
		Method: http.MethodGet,
		Path:   m.ResourcePath(),
	})
	if err != nil {
		return fmt.Errorf("failed to reload %s %s: %w", m.kind.Name, m.ID(), err)
	}

	return m.merge(ctx, result)
}

// Destroy deletes the remote object. The instance can not be used for any
// further remote operations once it has been destroyed.
func (m *Model) Destroy(ctx context.Context) error {
	if m.destroyed {
		return ErrModelDestroyed
	}

	if err := m.kind.Require(OpDestroy, m); err != nil {
		return err
	}

	if err := m.requirePersisted(); err != nil {
		return err
	}

	_, err := m.Execute(ctx, client.Request{
		Method: http.MethodDelete,
		Path:   m.ResourcePath(),
	})
	if err != nil {
		return fmt.Errorf("failed to destroy %s %s: %w", m.kind.Name, m.ID(), err)
	}

	m.destroyed = true

	return nil
}

func (m *Model) ToJSON() ([]byte, error) {
	return json.Marshal(m.attrs)
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return m.ToJSON()
}

func (m *Model) requireUpdatable() error {
	if m.destroyed {
		return ErrModelDestroyed
	}

	if err := m.kind.Require(OpUpdate, m); err != nil {
		return err
	}

	return m.requirePersisted()
}

func (m *Model) requirePersisted() error {
	if m.destroyed {
		return ErrModelDestroyed
	}

	if m.ID() == "" {
		return fmt.Errorf("%s: %w", m.kind.Name, ErrModelNotPersisted)
	}

	return nil
}

func (m *Model) assign(data map[string]any) error {
	err := m.attrs.Merge(data)
	if err == nil {
		return nil
	}

	mfe := &MissingFieldError{Model: m.kind.Name, cause: err}

	var ae *attributes.AttributeError
	var mke *types.MissingKeyError

	if errors.As(err, &ae) {
		mfe.Key = ae.Name
	} else if errors.As(err, &mke) {
		mfe.Key = mke.Key
	}

	return mfe
}

func (m *Model) put(ctx context.Context, payload map[string]any) error {
	result, err := m.Execute(ctx, client.Request{
		Method:  http.MethodPut,
		Path:    m.ResourcePath(),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", m.kind.Name, m.ID(), err)
	}

	return m.merge(ctx, result)
}

func (m *Model) merge(ctx context.Context, result any) error {
	switch r := result.(type) {
	case nil:
		return nil
	case map[string]any:
		return m.attrs.MergeWire(ctx, r)
	default:
		return fmt.Errorf("unexpected %T in response to %s request (%w)", result, m.kind.Name, sdkerrors.ErrBadResponse)
	}
}

func keysOf(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	return keys
}
