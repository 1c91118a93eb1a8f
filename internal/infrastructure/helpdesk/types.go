package helpdesk

import (
	"encoding/json"
	"strings"
)

// Ref is a reference to a remote entity: the stable external id plus a
// display title.
type Ref struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Ticket is one entry of the ticket listing. Optional sub-objects decode to
// nil; accessors below substitute defaults so missing-field behavior is an
// explicit contract rather than scattered nil checks.
type Ticket struct {
	Name                 string         `json:"name"`
	Title                string         `json:"title"`
	Created              string         `json:"created"`
	Edited               string         `json:"edited"`
	Priority             string         `json:"priority"`
	Stage                string         `json:"stage"`
	FirstAnswer          string         `json:"first_answer"`
	LastActivityOperator string         `json:"last_activity_operator"`
	LastActivityClient   string         `json:"last_activity_client"`
	Reopen               string         `json:"reopen"`
	Category             *Ref           `json:"category"`
	User                 *Ref           `json:"user"`
	Statuses             []Ref          `json:"statuses"`
	Contact              *TicketContact `json:"contact"`
	Followers            []Ref          `json:"followers"`
	CustomFields         CustomFields   `json:"customFields"`
}

// PrimaryStatus returns the first status reference, or nil.
func (t *Ticket) PrimaryStatus() *Ref {
	if len(t.Statuses) == 0 {
		return nil
	}
	return &t.Statuses[0]
}

// FollowerIDs returns the external ids of all followers.
func (t *Ticket) FollowerIDs() []string {
	ids := make([]string, 0, len(t.Followers))
	for _, f := range t.Followers {
		if f.Name != "" {
			ids = append(ids, f.Name)
		}
	}
	return ids
}

// IsVIP reports whether the remote vip custom field carries any value.
func (t *Ticket) IsVIP() bool {
	return len(t.CustomFields["vip"]) > 0
}

// TicketContact is the contact sub-object of a ticket, optionally carrying
// the client account and the CRM database it belongs to.
type TicketContact struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Database *Ref     `json:"database"`
	Account  *Account `json:"account"`
}

// Account is the client/company record attached to a contact.
type Account struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	CustomFields CustomFields `json:"customFields"`
}

// crmIDKeys are probed in order when extracting a CRM id from account
// custom fields.
var crmIDKeys = []string{"organization_id", "shipper_id", "dealer_id", "Dealer ID", "id_dopravce"}

// CRMID returns the first non-empty CRM identifier custom field.
func (a *Account) CRMID() string {
	for _, key := range crmIDKeys {
		if v := a.CustomFields.First(key); v != "" {
			return v
		}
	}
	return ""
}

// CustomFields maps a field key to its values. The remote serializes values
// as a string, a list of strings, or omits the object entirely; all of
// those decode without error.
type CustomFields map[string]StringList

func (cf *CustomFields) UnmarshalJSON(data []byte) error {
	var raw map[string]StringList
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-object payloads (empty list, null) mean "no custom fields".
		*cf = CustomFields{}
		return nil
	}
	*cf = raw
	return nil
}

// First returns the first value for key, or the empty string.
func (cf CustomFields) First(key string) string {
	if vals := cf[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// StringList decodes a scalar string, a list of strings, or null.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = StringList(list)
		return nil
	}
	*s = nil
	return nil
}

// Activity is one message/event within a ticket's thread.
type Activity struct {
	Name        string        `json:"name"`
	Time        string        `json:"time"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Text        string        `json:"text"`
	User        *Ref          `json:"user"`
	Contact     *Ref          `json:"contact"`
	Item        *ActivityItem `json:"item"`
}

// RawBody returns the message body, probing the known payload locations in
// priority order. Missing fields yield the empty string.
func (a *Activity) RawBody() string {
	if a.Text != "" {
		return a.Text
	}
	if a.Description != "" {
		return a.Description
	}
	if a.Item != nil {
		if a.Item.Text != "" {
			return a.Item.Text
		}
		if a.Item.Description != "" {
			return a.Item.Description
		}
		if a.Item.Mail != nil {
			return a.Item.Mail.Body
		}
	}
	return ""
}

// OperatorTitle returns the authoring operator's title, or fallback.
func (a *Activity) OperatorTitle(fallback string) string {
	if a.User != nil && a.User.Title != "" {
		return a.User.Title
	}
	return fallback
}

// Direction returns the uppercased transport direction, or "".
func (a *Activity) Direction() string {
	if a.Item == nil {
		return ""
	}
	return strings.ToUpper(a.Item.Direction)
}

// Headers returns the mail headers, never nil.
func (a *Activity) Headers() MailHeaders {
	if a.Item == nil || a.Item.Options == nil {
		return MailHeaders{}
	}
	return a.Item.Options.Headers
}

// ActivityItem carries the channel-specific payload of an activity.
type ActivityItem struct {
	Direction   string            `json:"direction"`
	Text        string            `json:"text"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	CLID        string            `json:"clid"`
	DID         string            `json:"did"`
	Queue       *Ref              `json:"queue"`
	Attachments []json.RawMessage `json:"attachments"`
	Options     *ItemOptions      `json:"options"`
	Mail        *Mail             `json:"mail"`
}

// HasAttachments reports whether any attachment entries are present.
func (i *ActivityItem) HasAttachments() bool {
	return i != nil && len(i.Attachments) > 0
}

type ItemOptions struct {
	Headers MailHeaders `json:"headers"`
}

type Mail struct {
	Body string `json:"body"`
}

// MailHeaders is the subset of transport headers the classifier reads.
// Header keys arrive with inconsistent casing and values as strings, lists
// of strings, or lists of {address} objects; decoding normalizes all of it.
type MailHeaders struct {
	From                 AddressList
	To                   AddressList
	AutoSubmitted        string
	AutoResponseSuppress string
}

func (h *MailHeaders) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for key, val := range raw {
		switch strings.ToLower(key) {
		case "from":
			_ = json.Unmarshal(val, &h.From)
		case "to":
			_ = json.Unmarshal(val, &h.To)
		case "auto-submitted":
			h.AutoSubmitted = decodeHeaderString(val)
		case "x-auto-response-suppress":
			h.AutoResponseSuppress = decodeHeaderString(val)
		}
	}
	return nil
}

// IsAutoGenerated reports whether the transport headers flag the message as
// machine-generated.
func (h MailHeaders) IsAutoGenerated() bool {
	if strings.EqualFold(strings.TrimSpace(h.AutoSubmitted), "auto-generated") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(h.AutoResponseSuppress), "all")
}

func decodeHeaderString(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// AddressList decodes a From/To header block: a bare string, a list of
// strings, or a list of {address, name} objects.
type AddressList []string

func (a *AddressList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*a = nil
			return nil
		}
		*a = AddressList{single}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*a = nil
		return nil
	}

	var out AddressList
	for _, entry := range raw {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Address string `json:"address"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && obj.Address != "" {
			out = append(out, obj.Address)
		}
	}
	*a = out
	return nil
}

// First returns the first address, or the empty string.
func (a AddressList) First() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}
