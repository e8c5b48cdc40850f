package resources

import (
	"time"

	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

func (r *Resources) declareEvent() {
	schema := attributes.NewSchema(EventType, r.registry,
		attributes.Attribute("id", types.String),
		attributes.Attribute("object", types.String),
		attributes.Attribute("account_id", types.String),
		attributes.Attribute("calendar_id", types.String),
		attributes.Attribute("ical_uid", types.String),
		attributes.Attribute("master_event_id", types.String),
		attributes.Attribute("message_id", types.String),
		attributes.Attribute("title", types.String),
		attributes.Attribute("description", types.String),
		attributes.Attribute("location", types.String),
		attributes.Attribute("owner", types.String),
		attributes.Attribute("busy", types.Boolean),
		attributes.Attribute("read_only", types.Boolean),
		attributes.Attribute("status", types.String),
		attributes.Attribute("visibility", types.String),
		attributes.Attribute("capacity", types.Integer),
		attributes.Attribute("when", TimespanType),
		attributes.Attribute("metadata", types.Hash),
		attributes.Attribute("recurrence", types.Hash),
		attributes.Attribute("original_start_time", types.UnixTimestamp),
		attributes.HasNOf("participants", ParticipantType),
		attributes.Attribute("organizer_email", types.String, attributes.ReadOnly()),
		attributes.Attribute("organizer_name", types.String, attributes.ReadOnly()),
		attributes.Attribute("job_status_id", types.String, attributes.ReadOnly()),
	)

	r.Event = &model.Kind{
		Name:   EventType,
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
		ResourcesPath: model.StaticPath("/events"),
	}
}

type Event struct {
	*model.Model
}

func (e Event) Title() string {
	return e.Attributes().String("title")
}

func (e Event) CalendarID() string {
	return e.Attributes().String("calendar_id")
}

func (e Event) Description() string {
	return e.Attributes().String("description")
}

func (e Event) Location() string {
	return e.Attributes().String("location")
}

func (e Event) Busy() bool {
	return e.Attributes().Bool("busy")
}

func (e Event) Capacity() int64 {
	return e.Attributes().Int("capacity")
}

func (e Event) OriginalStartTime() time.Time {
	return e.Attributes().Time("original_start_time")
}

func (e Event) When() (Timespan, bool) {
	n := e.Attributes().Nested("when")
	return Timespan{n}, n != nil
}

func (e Event) Participants() []Participant {
	nested := e.Attributes().NestedList("participants")
	participants := make([]Participant, 0, len(nested))
	for _, n := range nested {
		participants = append(participants, Participant{n})
	}
	return participants
}
