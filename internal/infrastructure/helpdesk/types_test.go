package helpdesk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFields_TolerantDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "scalar value", raw: `{"customFields":{"vip":"1"}}`, want: "1"},
		{name: "list value", raw: `{"customFields":{"vip":["yes","no"]}}`, want: "yes"},
		{name: "empty list payload", raw: `{"customFields":[]}`, want: ""},
		{name: "null payload", raw: `{"customFields":null}`, want: ""},
		{name: "absent key", raw: `{"customFields":{}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ticket Ticket
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ticket))
			assert.Equal(t, tt.want, ticket.CustomFields.First("vip"))
		})
	}
}

func TestTicket_IsVIP(t *testing.T) {
	var vip, plain Ticket
	require.NoError(t, json.Unmarshal([]byte(`{"customFields":{"vip":"1"}}`), &vip))
	require.NoError(t, json.Unmarshal([]byte(`{"customFields":{}}`), &plain))

	assert.True(t, vip.IsVIP())
	assert.False(t, plain.IsVIP())
}

func TestAccount_CRMID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "organization id", raw: `{"customFields":{"organization_id":"ORG-1"}}`, want: "ORG-1"},
		{name: "localized key", raw: `{"customFields":{"id_dopravce":["77"]}}`, want: "77"},
		{
			name: "first non-empty key wins",
			raw:  `{"customFields":{"shipper_id":"SHP-2","dealer_id":"DLR-3"}}`,
			want: "SHP-2",
		},
		{name: "no known key", raw: `{"customFields":{"other":"x"}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Account
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &acc))
			assert.Equal(t, tt.want, acc.CRMID())
		})
	}
}

func TestMailHeaders_Decoding(t *testing.T) {
	t.Run("mixed key casing", func(t *testing.T) {
		raw := `{"From":"a@example.com","TO":["b@example.com"],"Auto-Submitted":"auto-generated"}`

		var h MailHeaders
		require.NoError(t, json.Unmarshal([]byte(raw), &h))

		assert.Equal(t, "a@example.com", h.From.First())
		assert.Equal(t, "b@example.com", h.To.First())
		assert.True(t, h.IsAutoGenerated())
	})

	t.Run("address object list", func(t *testing.T) {
		raw := `{"from":[{"address":"c@example.com","name":"C"}]}`

		var h MailHeaders
		require.NoError(t, json.Unmarshal([]byte(raw), &h))

		assert.Equal(t, "c@example.com", h.From.First())
	})

	t.Run("auto response suppress", func(t *testing.T) {
		raw := `{"x-auto-response-suppress":"All"}`

		var h MailHeaders
		require.NoError(t, json.Unmarshal([]byte(raw), &h))

		assert.True(t, h.IsAutoGenerated())
	})

	t.Run("ordinary mail is not auto generated", func(t *testing.T) {
		raw := `{"from":"a@example.com","auto-submitted":"no"}`

		var h MailHeaders
		require.NoError(t, json.Unmarshal([]byte(raw), &h))

		assert.False(t, h.IsAutoGenerated())
	})
}

func TestActivity_RawBody(t *testing.T) {
	tests := []struct {
		name string
		act  Activity
		want string
	}{
		{name: "text field wins", act: Activity{Text: "top", Description: "desc"}, want: "top"},
		{name: "description fallback", act: Activity{Description: "desc"}, want: "desc"},
		{
			name: "item text fallback",
			act:  Activity{Item: &ActivityItem{Text: "item text"}},
			want: "item text",
		},
		{
			name: "mail body fallback",
			act:  Activity{Item: &ActivityItem{Mail: &Mail{Body: "<p>mail</p>"}}},
			want: "<p>mail</p>",
		},
		{name: "nothing present", act: Activity{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.act.RawBody())
		})
	}
}

func TestActivity_Accessors(t *testing.T) {
	act := Activity{
		User: &Ref{Title: "Jane Operator"},
		Item: &ActivityItem{Direction: "in", Attachments: []json.RawMessage{[]byte(`{}`)}},
	}

	assert.Equal(t, "Jane Operator", act.OperatorTitle("System"))
	assert.Equal(t, "IN", act.Direction())
	assert.True(t, act.Item.HasAttachments())

	var bare Activity
	assert.Equal(t, "System", bare.OperatorTitle("System"))
	assert.Equal(t, "", bare.Direction())
	assert.False(t, bare.Item.HasAttachments())
	assert.False(t, bare.Headers().IsAutoGenerated())
}
