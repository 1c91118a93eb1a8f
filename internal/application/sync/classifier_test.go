package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"desksync/internal/infrastructure/helpdesk"
)

func emailActivity(direction, from, to string) *helpdesk.Activity {
	return &helpdesk.Activity{
		Name: "activities_1",
		Type: "EMAIL",
		Item: &helpdesk.ActivityItem{
			Direction: direction,
			Options: &helpdesk.ItemOptions{
				Headers: helpdesk.MailHeaders{
					From: headerList(from),
					To:   headerList(to),
				},
			},
		},
	}
}

func headerList(addr string) helpdesk.AddressList {
	if addr == "" {
		return nil
	}
	return helpdesk.AddressList{addr}
}

func TestClassify_Email(t *testing.T) {
	tests := []struct {
		name          string
		act           *helpdesk.Activity
		wantSender    string
		wantRecipient string
		wantDirection string
		wantHeuristic bool
	}{
		{
			name:          "inbound with headers",
			act:           emailActivity("in", "customer@example.com", "support@example.com"),
			wantSender:    "customer@example.com",
			wantRecipient: "support@example.com",
			wantDirection: DirectionIn,
		},
		{
			name:          "outbound without from header falls back to operator",
			act:           emailActivity("out", "", "customer@example.com"),
			wantSender:    "Jane Operator",
			wantRecipient: "customer@example.com",
			wantDirection: DirectionOut,
		},
		{
			name:          "missing direction inferred from sender identity",
			act:           emailActivity("", "customer@example.com", "support@example.com"),
			wantSender:    "customer@example.com",
			wantRecipient: "support@example.com",
			wantDirection: DirectionIn,
			wantHeuristic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.act, "Jane Operator")

			assert.Equal(t, TypeEmail, cls.Type)
			assert.Equal(t, tt.wantSender, cls.Sender)
			assert.Equal(t, tt.wantRecipient, cls.Recipient)
			assert.Equal(t, tt.wantDirection, cls.Direction)
			assert.Equal(t, tt.wantHeuristic, cls.HeuristicHit)
		})
	}
}

func TestClassify_EmailDirectionInferredAsOutbound(t *testing.T) {
	act := emailActivity("", "Jane Operator", "customer@example.com")

	cls := Classify(act, "Jane Operator")

	assert.Equal(t, DirectionOut, cls.Direction)
	assert.True(t, cls.HeuristicHit)
}

func TestClassify_Call(t *testing.T) {
	t.Run("inbound call uses caller and destination numbers", func(t *testing.T) {
		act := &helpdesk.Activity{
			Type: "CALL",
			Item: &helpdesk.ActivityItem{
				Direction: "in",
				CLID:      "+420111222333",
				DID:       "800100200",
			},
		}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, TypeCall, cls.Type)
		assert.Equal(t, "+420111222333", cls.Sender)
		assert.Equal(t, "800100200", cls.Recipient)
		assert.Equal(t, DirectionIn, cls.Direction)
	})

	t.Run("inbound call without numbers uses sentinels", func(t *testing.T) {
		act := &helpdesk.Activity{
			Type: "CALL",
			Item: &helpdesk.ActivityItem{Direction: "in"},
		}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, SenderUnknown, cls.Sender)
		assert.Equal(t, SenderSystem, cls.Recipient)
	})

	t.Run("outbound call is operator to caller id", func(t *testing.T) {
		act := &helpdesk.Activity{
			Type: "CALL",
			Item: &helpdesk.ActivityItem{Direction: "out", CLID: "+420111222333"},
		}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, "Jane Operator", cls.Sender)
		assert.Equal(t, "+420111222333", cls.Recipient)
	})
}

func TestClassify_Comment(t *testing.T) {
	t.Run("authored comment", func(t *testing.T) {
		act := &helpdesk.Activity{
			Type: "COMMENT",
			Text: "internal note",
			User: &helpdesk.Ref{Name: "users_jane", Title: "Jane Operator"},
		}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, TypeComment, cls.Type)
		assert.Equal(t, "Jane Operator", cls.Sender)
		assert.Equal(t, RecipientInternal, cls.Recipient)
		assert.Equal(t, DirectionInternal, cls.Direction)
	})

	t.Run("authorless comment is attributed to System", func(t *testing.T) {
		act := &helpdesk.Activity{Type: "COMMENT", Text: "status changed"}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, SenderSystem, cls.Sender)
		assert.Equal(t, RecipientInternal, cls.Recipient)
		assert.Equal(t, DirectionInternal, cls.Direction)
	})

	t.Run("untyped activity with text defaults to comment", func(t *testing.T) {
		act := &helpdesk.Activity{Text: "free-form note"}

		cls := Classify(act, "Jane Operator")

		assert.Equal(t, TypeComment, cls.Type)
	})
}

func TestClassify_Other(t *testing.T) {
	act := &helpdesk.Activity{
		Type: "INSTAGRAM",
		User: &helpdesk.Ref{Title: "Jane Operator"},
		Item: &helpdesk.ActivityItem{
			Queue: &helpdesk.Ref{Name: "queues_1", Title: "Social"},
		},
	}

	cls := Classify(act, act.OperatorTitle("System"))

	assert.Equal(t, TypeOther, cls.Type)
	assert.Equal(t, "Jane Operator", cls.Sender)
	assert.Equal(t, "Social", cls.Recipient)
}

func TestIsAutoReply(t *testing.T) {
	t.Run("auto-submitted header", func(t *testing.T) {
		act := emailActivity("in", "noreply@example.com", "support@example.com")
		act.Item.Options.Headers.AutoSubmitted = "auto-generated"

		cls := Classify(act, "Jane Operator")

		assert.True(t, cls.AutoReply)
		assert.False(t, cls.HeuristicHit)
	})

	t.Run("auto-response-suppress header", func(t *testing.T) {
		act := emailActivity("in", "noreply@example.com", "support@example.com")
		act.Item.Options.Headers.AutoResponseSuppress = "All"

		cls := Classify(act, "Jane Operator")

		assert.True(t, cls.AutoReply)
	})

	t.Run("accent-insensitive phrase match marks heuristic", func(t *testing.T) {
		act := emailActivity("in", "noreply@example.com", "support@example.com")
		act.Text = "Potvrzujeme, že Vaše zpráva byla úspěšně doručena."

		cls := Classify(act, "Jane Operator")

		assert.True(t, cls.AutoReply)
		assert.True(t, cls.HeuristicHit)
	})

	t.Run("phrase inside quoted history does not fire", func(t *testing.T) {
		act := emailActivity("in", "customer@example.com", "support@example.com")
		act.Text = "Thanks, resolved.\n\nOn Monday, customer wrote:\nthis is an automated response"

		cls := Classify(act, "Jane Operator")

		assert.False(t, cls.AutoReply)
	})

	t.Run("plain message is not auto reply", func(t *testing.T) {
		act := emailActivity("in", "customer@example.com", "support@example.com")
		act.Text = "Hello, my delivery did not arrive."

		cls := Classify(act, "Jane Operator")

		assert.False(t, cls.AutoReply)
	})
}
