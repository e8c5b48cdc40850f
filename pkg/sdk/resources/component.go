package resources

import (
	"time"

	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/client"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// Components are scoped to the application and authenticate with the
// application secret instead of an account token
func (r *Resources) declareComponent() {
	schema := attributes.NewSchema(ComponentType, r.registry,
		attributes.Attribute("id", types.String, attributes.ReadOnly()),
		attributes.Attribute("account_id", types.String),
		attributes.Attribute("name", types.String),
		attributes.Attribute("type", types.String),
		attributes.Attribute("action", types.Integer),
		attributes.Attribute("active", types.Boolean),
		attributes.Attribute("settings", types.Hash),
		attributes.Attribute("public_account_id", types.String),
		attributes.Attribute("public_token_id", types.String),
		attributes.Attribute("access_token", types.String),
		attributes.HasNOf("allowed_domains", types.String),
		attributes.Attribute("public_application_id", types.String, attributes.ReadOnly()),
		attributes.Attribute("created_at", types.Date, attributes.ReadOnly()),
		attributes.Attribute("updated_at", types.Date, attributes.ReadOnly()),
	)

	r.Component = &model.Kind{
		Name:   ComponentType,
		Schema: schema,
		Capabilities: model.Capabilities{
			Creatable:   true,
			Showable:    true,
			Listable:    true,
			Updatable:   true,
			Destroyable: true,
		},
		ResourcesPath: func(api model.API) string {
			return "/component/" + api.AppID()
		},
		AuthMethod: client.AuthBasic,
	}
}

type Component struct {
	*model.Model
}

func (c Component) Name() string {
	return c.Attributes().String("name")
}

func (c Component) Type() string {
	return c.Attributes().String("type")
}

func (c Component) Active() bool {
	return c.Attributes().Bool("active")
}

func (c Component) AllowedDomains() []string {
	return c.Attributes().Strings("allowed_domains")
}

func (c Component) Settings() map[string]any {
	return c.Attributes().Hash("settings")
}

func (c Component) CreatedAt() time.Time {
	return c.Attributes().Time("created_at")
}
