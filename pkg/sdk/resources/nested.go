package resources

import (
	"time"

	"github.com/diwise/mailbox-sdk/pkg/sdk/attributes"
	"github.com/diwise/mailbox-sdk/pkg/sdk/types"
)

var messageHeaderKeys = map[string]string{
	"in_reply_to": "In-Reply-To",
	"message_id":  "Message-Id",
	"references":  "References",
}

func (r *Resources) declareNested() {
	r.MessageHeaders = attributes.NewSchema(MessageHeadersType, r.registry,
		attributes.Attribute("in_reply_to", types.String),
		attributes.Attribute("message_id", types.String),
		attributes.HasNOf("references", types.String),
	)

	r.MessageTracking = attributes.NewSchema(MessageTrackingType, r.registry,
		attributes.Attribute("links", types.Boolean),
		attributes.Attribute("opens", types.Boolean),
		attributes.Attribute("thread_replies", types.Boolean),
		attributes.Attribute("payload", types.String),
	)

	r.Participant = attributes.NewSchema(ParticipantType, r.registry,
		attributes.Attribute("name", types.String),
		attributes.Attribute("email", types.String),
		attributes.Attribute("phone_number", types.String),
		attributes.Attribute("comment", types.String),
		attributes.Attribute("status", types.String, attributes.ReadOnly()),
	)

	r.PhysicalAddress = attributes.NewSchema(PhysicalAddressType, r.registry,
		attributes.Attribute("format", types.String),
		attributes.Attribute("type", types.String),
		attributes.Attribute("street_address", types.String),
		attributes.Attribute("postal_code", types.String),
		attributes.Attribute("state", types.String),
		attributes.Attribute("city", types.String),
		attributes.Attribute("country", types.String),
		attributes.Attribute("secondary_address", types.String),
	)

	r.SendGridVerifiedStatus = attributes.NewSchema(SendGridVerifiedStatusType, r.registry,
		attributes.Attribute("domain_verified", types.Boolean),
		attributes.Attribute("sender_verified", types.Boolean),
	)

	r.TimeSlotCapacity = attributes.NewSchema(TimeSlotCapacityType, r.registry,
		attributes.Attribute("event_id", types.String),
		attributes.Attribute("current_capacity", types.Integer),
		attributes.Attribute("max_capacity", types.Integer),
	)

	r.TimeSlot = attributes.NewSchema(TimeSlotType, r.registry,
		attributes.Attribute("object", types.String),
		attributes.Attribute("status", types.String),
		attributes.Attribute("start_time", types.UnixTimestamp),
		attributes.Attribute("end_time", types.UnixTimestamp),
		attributes.Attribute("capacity", TimeSlotCapacityType),
		attributes.HasNOf("emails", types.String),
	)

	r.Timespan = attributes.NewSchema(TimespanType, r.registry,
		attributes.Attribute("object", types.String),
		attributes.Attribute("start_time", types.UnixTimestamp),
		attributes.Attribute("end_time", types.UnixTimestamp),
	)

	r.WebPage = attributes.NewSchema(WebPageType, r.registry,
		attributes.Attribute("type", types.String),
		attributes.Attribute("url", types.String),
	)
}

// MessageHeaders are the threading headers of a message. On the wire they
// use their header names as keys.
type MessageHeaders struct {
	attrs *attributes.Attributes
}

func (h MessageHeaders) Attributes() *attributes.Attributes {
	return h.attrs
}

func (h MessageHeaders) InReplyTo() string {
	return h.attrs.String("in_reply_to")
}

func (h MessageHeaders) MessageID() string {
	return h.attrs.String("message_id")
}

func (h MessageHeaders) References() []string {
	return h.attrs.Strings("references")
}

type MessageTracking struct {
	attrs *attributes.Attributes
}

func (t MessageTracking) Attributes() *attributes.Attributes {
	return t.attrs
}

func (t MessageTracking) Links() bool {
	return t.attrs.Bool("links")
}

func (t MessageTracking) Opens() bool {
	return t.attrs.Bool("opens")
}

func (t MessageTracking) ThreadReplies() bool {
	return t.attrs.Bool("thread_replies")
}

func (t MessageTracking) Payload() string {
	return t.attrs.String("payload")
}

type Participant struct {
	attrs *attributes.Attributes
}

func (p Participant) Attributes() *attributes.Attributes {
	return p.attrs
}

func (p Participant) Name() string {
	return p.attrs.String("name")
}

func (p Participant) Email() string {
	return p.attrs.String("email")
}

func (p Participant) PhoneNumber() string {
	return p.attrs.String("phone_number")
}

func (p Participant) Comment() string {
	return p.attrs.String("comment")
}

// Status is the reply of the participant as reported by the server
func (p Participant) Status() string {
	return p.attrs.String("status")
}

type PhysicalAddress struct {
	attrs *attributes.Attributes
}

func (a PhysicalAddress) Attributes() *attributes.Attributes {
	return a.attrs
}

func (a PhysicalAddress) StreetAddress() string {
	return a.attrs.String("street_address")
}

func (a PhysicalAddress) PostalCode() string {
	return a.attrs.String("postal_code")
}

func (a PhysicalAddress) City() string {
	return a.attrs.String("city")
}

func (a PhysicalAddress) Country() string {
	return a.attrs.String("country")
}

type SendGridVerifiedStatus struct {
	attrs *attributes.Attributes
}

func (s SendGridVerifiedStatus) Attributes() *attributes.Attributes {
	return s.attrs
}

func (s SendGridVerifiedStatus) DomainVerified() bool {
	return s.attrs.Bool("domain_verified")
}

func (s SendGridVerifiedStatus) SenderVerified() bool {
	return s.attrs.Bool("sender_verified")
}

type TimeSlotCapacity struct {
	attrs *attributes.Attributes
}

func (c TimeSlotCapacity) Attributes() *attributes.Attributes {
	return c.attrs
}

func (c TimeSlotCapacity) EventID() string {
	return c.attrs.String("event_id")
}

func (c TimeSlotCapacity) CurrentCapacity() int64 {
	return c.attrs.Int("current_capacity")
}

func (c TimeSlotCapacity) MaxCapacity() int64 {
	return c.attrs.Int("max_capacity")
}

func (c TimeSlotCapacity) Full() bool {
	return c.MaxCapacity() > 0 && c.CurrentCapacity() >= c.MaxCapacity()
}

// TimeSlot is a free/busy slot of a calendar
type TimeSlot struct {
	attrs *attributes.Attributes
}

func (s TimeSlot) Attributes() *attributes.Attributes {
	return s.attrs
}

func (s TimeSlot) Status() string {
	return s.attrs.String("status")
}

func (s TimeSlot) StartTime() time.Time {
	return s.attrs.Time("start_time")
}

func (s TimeSlot) EndTime() time.Time {
	return s.attrs.Time("end_time")
}

func (s TimeSlot) Emails() []string {
	return s.attrs.Strings("emails")
}

func (s TimeSlot) Capacity() (TimeSlotCapacity, bool) {
	n := s.attrs.Nested("capacity")
	return TimeSlotCapacity{n}, n != nil
}

type Timespan struct {
	attrs *attributes.Attributes
}

func (t Timespan) Attributes() *attributes.Attributes {
	return t.attrs
}

func (t Timespan) StartTime() time.Time {
	return t.attrs.Time("start_time")
}

func (t Timespan) EndTime() time.Time {
	return t.attrs.Time("end_time")
}

// Covers reports whether at lies within the timespan, both ends included
func (t Timespan) Covers(at time.Time) bool {
	return !at.Before(t.StartTime()) && !at.After(t.EndTime())
}

type WebPage struct {
	attrs *attributes.Attributes
}

func (p WebPage) Attributes() *attributes.Attributes {
	return p.attrs
}

func (p WebPage) Type() string {
	return p.attrs.String("type")
}

func (p WebPage) URL() string {
	return p.attrs.String("url")
}

func (r *Resources) NewTimespan(start, end time.Time) (Timespan, error) {
	a, err := r.Timespan.New(map[string]any{"start_time": start, "end_time": end})
	return Timespan{a}, err
}

func (r *Resources) NewParticipant(values map[string]any) (Participant, error) {
	a, err := r.Participant.New(values)
	return Participant{a}, err
}

func (r *Resources) NewMessageHeaders(values map[string]any) (MessageHeaders, error) {
	a, err := r.MessageHeaders.New(values)
	return MessageHeaders{a}, err
}
