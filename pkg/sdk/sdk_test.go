package sdk

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/diwise/mailbox-sdk/internal/pkg/infrastructure/router"
	"github.com/diwise/mailbox-sdk/internal/pkg/sandbox"
	sdkerrors "github.com/diwise/mailbox-sdk/pkg/sdk/errors"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/matryer/is"
)

func TestCalendarLifecycle(t *testing.T) {
	is, ctx, api, server := setupSandboxAPI(t)
	defer server.Close()

	calendar, err := api.Calendars().Create(ctx, map[string]any{"name": "Work", "timezone": "Europe/Stockholm"})
	is.NoErr(err)
	is.True(calendar.Persisted())
	is.Equal(calendar.Name(), "Work")

	err = calendar.Update(ctx, map[string]any{"description": "Team meetings"})
	is.NoErr(err)

	found, err := api.Calendars().Find(ctx, calendar.ID())
	is.NoErr(err)
	is.Equal(found.Description(), "Team meetings")
	is.Equal(found.Timezone(), "Europe/Stockholm")

	err = found.Destroy(ctx)
	is.NoErr(err)
	is.True(found.Destroyed())

	err = found.Reload(ctx)
	is.True(errors.Is(err, model.ErrModelDestroyed))

	_, err = api.Calendars().Find(ctx, calendar.ID())
	is.True(errors.Is(err, sdkerrors.ErrNotFound))
}

func TestListingCountingAndIDs(t *testing.T) {
	is, ctx, api, server := setupSandboxAPI(t)
	defer server.Close()

	for _, name := range []string{"Work", "Home"} {
		_, err := api.Calendars().Create(ctx, map[string]any{"name": name})
		is.NoErr(err)
	}

	calendars, err := api.Calendars().All(ctx)
	is.NoErr(err)
	is.Equal(len(calendars), 3)
	is.Equal(calendars[0].HexColor(), "#1976d2")

	count, err := api.Calendars().Where(map[string]any{"name": "Home"}).Count(ctx)
	is.NoErr(err)
	is.Equal(count, 1)

	ids, err := api.Calendars().Limit(1).IDs(ctx)
	is.NoErr(err)
	is.Equal(ids, []string{"primary"})
}

func TestEventsOfACalendar(t *testing.T) {
	is, ctx, api, server := setupSandboxAPI(t)
	defer server.Close()

	primary, err := api.Calendars().Find(ctx, "primary")
	is.NoErr(err)
	is.True(primary.IsPrimary())

	event, found, err := primary.Events().First(ctx)
	is.NoErr(err)
	is.True(found)

	is.Equal(event.Title(), "Kickoff")

	when, ok := event.When()
	is.True(ok)
	is.Equal(when.StartTime(), time.Unix(1700000000, 0).UTC())

	participants := event.Participants()
	is.Equal(len(participants), 1)
	is.Equal(participants[0].Status(), "yes")
}

func TestSearchIsNotSupportedForCalendars(t *testing.T) {
	is, ctx, api, server := setupSandboxAPI(t)
	defer server.Close()

	_, err := api.Calendars().Search("work").All(ctx)
	is.True(errors.Is(err, model.ErrModelNotSearchable))
}

func TestComponentsUseTheAppSecret(t *testing.T) {
	is, ctx, api, server := setupSandboxAPI(t)
	defer server.Close()

	component, err := api.Components().Create(ctx, map[string]any{"name": "scheduler", "active": true})
	is.NoErr(err)
	is.True(component.Persisted())
	is.Equal(component.ResourcesPath(), "/component/sandbox-app")

	components, err := api.Components().All(ctx)
	is.NoErr(err)
	is.Equal(len(components), 1)
	is.True(components[0].Active())
}

func TestWrongTokenIsUnauthorized(t *testing.T) {
	is, ctx, _, server := setupSandboxAPI(t)
	defer server.Close()

	api, err := New(&Config{APIServer: server.URL, AccessToken: "wrong"})
	is.NoErr(err)

	_, err = api.Calendars().All(ctx)
	is.True(errors.Is(err, sdkerrors.ErrUnauthorized))
}

func setupSandboxAPI(t *testing.T) (*is.I, context.Context, *API, *httptest.Server) {
	is := is.New(t)
	ctx := context.Background()

	cfgFile, err := os.Open("../../assets/config/sandbox.yaml")
	is.NoErr(err)
	defer cfgFile.Close()

	cfg, err := sandbox.LoadConfiguration(cfgFile)
	is.NoErr(err)

	policies, err := os.Open("../../assets/config/authz.rego")
	is.NoErr(err)
	defer policies.Close()

	authenticator, err := sandbox.NewAuthenticator(ctx, policies)
	is.NoErr(err)

	r := router.New(ctx, "sdk-test")
	sandbox.RegisterHandlers(ctx, r, cfg, sandbox.NewStore(cfg), authenticator)

	server := httptest.NewServer(r)

	api, err := New(&Config{
		APIServer:   server.URL,
		AppID:       "sandbox-app",
		AppSecret:   "sandbox-secret",
		AccessToken: "sandbox-token",
	})
	is.NoErr(err)

	return is, ctx, api, server
}
