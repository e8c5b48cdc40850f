package resources

import (
	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/collection"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

func (r *Resources) declareCalendar() {
	schema := attributes.NewSchema(CalendarType, r.registry,
		attributes.Attribute("id", types.String),
		attributes.Attribute("account_id", types.String),
		attributes.Attribute("object", types.String),
		attributes.Attribute("name", types.String),
		attributes.Attribute("description", types.String),
		attributes.Attribute("is_primary", types.Boolean),
		attributes.Attribute("location", types.String),
		attributes.Attribute("timezone", types.String),
		attributes.Attribute("read_only", types.Boolean),
		attributes.Attribute("metadata", types.Hash),
		attributes.Attribute("job_status_id", types.String, attributes.ReadOnly()),
		attributes.Attribute("hex_color", types.String, attributes.ReadOnly()),
	)

	r.Calendar = &model.Kind{
		Name:   CalendarType,
		Schema: schema,
		Capabilities: model.Capabilities{
			Creatable:   true,
			Showable:    true,
			Listable:    true,
			Filterable:  true,
			Updatable:   true,
			Destroyable: true,
			IDListable:  true,
			Countable:   true,
		},
		ResourcesPath: model.StaticPath("/calendars"),
	}
}

type Calendar struct {
	*model.Model
	resources *Resources
}

func (c Calendar) Name() string {
	return c.Attributes().String("name")
}

func (c Calendar) Description() string {
	return c.Attributes().String("description")
}

func (c Calendar) Location() string {
	return c.Attributes().String("location")
}

func (c Calendar) Timezone() string {
	return c.Attributes().String("timezone")
}

func (c Calendar) Metadata() map[string]any {
	return c.Attributes().Hash("metadata")
}

func (c Calendar) IsPrimary() bool {
	return c.Attributes().Bool("is_primary")
}

// IsReadOnly reports whether the calendar may be modified. Only an explicit
// true from the server counts.
func (c Calendar) IsReadOnly() bool {
	return c.Attributes().Bool("read_only")
}

func (c Calendar) HexColor() string {
	return c.Attributes().String("hex_color")
}

func (c Calendar) JobStatusID() string {
	return c.Attributes().String("job_status_id")
}

// Events returns the events that belong to this calendar
func (c Calendar) Events() *collection.Collection[Event] {
	return c.resources.Events(c.API()).Where(map[string]any{"calendar_id": c.ID()})
}
