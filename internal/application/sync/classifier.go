package sync

import (
	"strings"

	"desksync/internal/infrastructure/helpdesk"
	"desksync/internal/shared/services/textclean"
)

// Activity types and directions as stored locally.
const (
	TypeEmail   = "EMAIL"
	TypeCall    = "CALL"
	TypeComment = "COMMENT"
	TypeOther   = "OTHER"

	DirectionIn       = "IN"
	DirectionOut      = "OUT"
	DirectionInternal = "INTERNAL"
)

// Participant sentinels.
const (
	SenderSystem      = "System"
	SenderUnknown     = "Unknown"
	RecipientInternal = "Internal"
)

// Classification is the derived view of one raw message record.
// HeuristicHit reports that some part of the result came from inference
// (direction guessed from sender identity, auto-reply detected by phrase)
// rather than from explicit payload fields.
type Classification struct {
	Type         string
	Sender       string
	Recipient    string
	Direction    string
	AutoReply    bool
	HeuristicHit bool
}

// Classify derives message type, sender, recipient, direction, and the
// automated-reply flag for one activity. operator is the identity of the
// operator side, already defaulted by the caller.
func Classify(act *helpdesk.Activity, operator string) Classification {
	cls := Classification{
		Type:      normalizeType(act),
		Direction: act.Direction(),
	}

	switch cls.Type {
	case TypeEmail:
		headers := act.Headers()
		cls.Sender = headers.From.First()
		cls.Recipient = headers.To.First()
		if cls.Sender == "" && cls.Direction == DirectionOut {
			cls.Sender = operator
		}
		if cls.Direction == "" {
			// No explicit direction: a message authored by the operator
			// identity is outbound, anything else inbound.
			if cls.Sender == operator {
				cls.Direction = DirectionOut
			} else {
				cls.Direction = DirectionIn
			}
			cls.HeuristicHit = true
		}

	case TypeCall:
		if cls.Direction == DirectionIn {
			cls.Sender = itemCallerID(act, SenderUnknown)
			cls.Recipient = itemDestination(act, SenderSystem)
		} else {
			cls.Sender = operator
			cls.Recipient = itemCallerID(act, "")
		}

	case TypeComment:
		// Comments are never public-facing.
		cls.Sender = act.OperatorTitle(SenderSystem)
		cls.Recipient = RecipientInternal
		cls.Direction = DirectionInternal

	default:
		cls.Sender = operator
		if cls.Sender == "" {
			cls.Sender = SenderUnknown
		}
		if act.Item != nil && act.Item.Queue != nil {
			cls.Recipient = act.Item.Queue.Title
		}
	}

	auto, byPhrase := isAutoReply(act)
	cls.AutoReply = auto
	if byPhrase {
		cls.HeuristicHit = true
	}

	return cls
}

// normalizeType maps the remote type field to the local enum. An absent
// type with free-text content defaults to COMMENT.
func normalizeType(act *helpdesk.Activity) string {
	switch strings.ToUpper(act.Type) {
	case TypeEmail:
		return TypeEmail
	case TypeCall:
		return TypeCall
	case TypeComment:
		return TypeComment
	case "":
		if act.RawBody() != "" {
			return TypeComment
		}
		return TypeOther
	default:
		return TypeOther
	}
}

func itemCallerID(act *helpdesk.Activity, fallback string) string {
	if act.Item != nil && act.Item.CLID != "" {
		return act.Item.CLID
	}
	return fallback
}

func itemDestination(act *helpdesk.Activity, fallback string) string {
	if act.Item != nil && act.Item.DID != "" {
		return act.Item.DID
	}
	return fallback
}

// autoReplyPhrases is matched case- and accent-insensitively against the
// pre-quote portion of the body. The list is frozen to known phrasings;
// unseen wordings or locales are accepted false negatives.
var autoReplyPhrases = []string{
	"potvrzujeme, ze vase zprava byla uspesne dorucena",
	"we are confirming that your message has been successfully delivered",
	"automaticky generovana zprava",
	"toto je automaticka odpoved",
	"this is an automated response",
	"out of office",
	"cerpam dovolenou",
}

// isAutoReply reports whether the activity is machine-generated, and
// whether that verdict came from the phrase heuristic rather than from
// transport headers.
func isAutoReply(act *helpdesk.Activity) (auto bool, byPhrase bool) {
	if act.Headers().IsAutoGenerated() {
		return true, false
	}

	pre := textclean.Fold(textclean.PreQuote(act.RawBody()))
	for _, phrase := range autoReplyPhrases {
		if strings.Contains(pre, phrase) {
			return true, true
		}
	}
	return false, false
}
