package sdk

import (
	"context"
	"fmt"
	"strconv"

	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
	"github.com/diwise/mailbox-sdk/pkg/sdk/collection"
	"github.com/diwise/mailbox-sdk/pkg/sdk/resources"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

var ErrConfiguration = fmt.Errorf("invalid configuration")

// API is the entry point of the SDK. It owns the type registry, the resource
// declarations and the transport, and is what models route their requests
// through.
type API struct {
	client    *client.Client
	resources *resources.Resources
}

func New(cfg *Config, options ...func(*client.Client)) (*API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration (%w)", ErrConfiguration)
	}

	server := cfg.APIServer
	if server == "" {
		server = DefaultAPIServer
	}

	clientOptions := []func(*client.Client){
		client.AccessToken(cfg.AccessToken),
		client.AppCredentials(cfg.AppID, cfg.AppSecret),
		client.Debug(strconv.FormatBool(cfg.Debug)),
	}

	return &API{
		client:    client.New(server, append(clientOptions, options...)...),
		resources: resources.New(types.NewRegistry()),
	}, nil
}

func (a *API) Execute(ctx context.Context, req client.Request) (any, error) {
	return a.client.Execute(ctx, req)
}

func (a *API) AppID() string {
	return a.client.AppID()
}

func (a *API) Registry() *types.Registry {
	return a.resources.Registry()
}

func (a *API) Resources() *resources.Resources {
	return a.resources
}

func (a *API) Calendars() *collection.Collection[resources.Calendar] {
	return a.resources.Calendars(a)
}

func (a *API) Events() *collection.Collection[resources.Event] {
	return a.resources.Events(a)
}

func (a *API) Components() *collection.Collection[resources.Component] {
	return a.resources.Components(a)
}
