package resources

import (
	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/collection"
	"github.com/diwise/mailbox-sdk/pkg/sdk/model"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

// Type tags of the model backed value types registered by New
const (
	CalendarType               string = "calendar"
	EventType                  string = "event"
	ComponentType              string = "component"
	MessageHeadersType         string = "message_headers"
	MessageTrackingType        string = "message_tracking"
	ParticipantType            string = "participant"
	PhysicalAddressType        string = "physical_address"
	SendGridVerifiedStatusType string = "send_grid_verified_status"
	TimeSlotType               string = "time_slot"
	TimeSlotCapacityType       string = "time_slot_capacity"
	TimespanType               string = "timespan"
	WebPageType                string = "web_page"
)

// Resources holds the declarations of every resource the SDK knows about
type Resources struct {
	registry *types.Registry

	Calendar  *model.Kind
	Event     *model.Kind
	Component *model.Kind

	MessageHeaders         *attributes.Schema
	MessageTracking        *attributes.Schema
	Participant            *attributes.Schema
	PhysicalAddress        *attributes.Schema
	SendGridVerifiedStatus *attributes.Schema
	TimeSlot               *attributes.Schema
	TimeSlotCapacity       *attributes.Schema
	Timespan               *attributes.Schema
	WebPage                *attributes.Schema
}

// New declares all resources against the registry and registers their model
// backed value types with it. It must be called before any instance is created
// and the registry should not be shared with another Resources.
func New(registry *types.Registry) *Resources {
	r := &Resources{registry: registry}

	r.declareNested()
	r.declareCalendar()
	r.declareEvent()
	r.declareComponent()

	registry.Register(MessageHeadersType, attributes.NewModelType(r.MessageHeaders, attributes.WithJSONKeys(messageHeaderKeys)))
	registry.Register(MessageTrackingType, attributes.NewModelType(r.MessageTracking))
	registry.Register(ParticipantType, attributes.NewModelType(r.Participant))
	registry.Register(PhysicalAddressType, attributes.NewModelType(r.PhysicalAddress))
	registry.Register(SendGridVerifiedStatusType, attributes.NewModelType(r.SendGridVerifiedStatus))
	registry.Register(TimeSlotType, attributes.NewModelType(r.TimeSlot))
	registry.Register(TimeSlotCapacityType, attributes.NewModelType(r.TimeSlotCapacity))
	registry.Register(TimespanType, attributes.NewModelType(r.Timespan))
	registry.Register(WebPageType, attributes.NewModelType(r.WebPage))

	registry.Register(CalendarType, attributes.NewModelType(r.Calendar.Schema))
	registry.Register(EventType, attributes.NewModelType(r.Event.Schema))
	registry.Register(ComponentType, attributes.NewModelType(r.Component.Schema))

	return r
}

func (r *Resources) Registry() *types.Registry {
	return r.registry
}

func (r *Resources) Calendars(api model.API) *collection.Collection[Calendar] {
	return collection.New(r.Calendar, api, func(m *model.Model) Calendar {
		return Calendar{Model: m, resources: r}
	})
}

func (r *Resources) Events(api model.API) *collection.Collection[Event] {
	return collection.New(r.Event, api, func(m *model.Model) Event {
		return Event{Model: m}
	})
}

func (r *Resources) Components(api model.API) *collection.Collection[Component] {
	return collection.New(r.Component, api, func(m *model.Model) Component {
		return Component{Model: m}
	})
}
