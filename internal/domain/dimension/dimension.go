// Package dimension defines the dimension-table abstraction: small lookup
// tables (category, operator, status, queue, client, contact) deduplicated
// by external reference id and addressed through local surrogate keys.
package dimension

import "context"

type Dimension string

const (
	Category Dimension = "category"
	Operator Dimension = "operator"
	Status   Dimension = "status"
	Queue    Dimension = "queue"
	Client   Dimension = "client"
	Contact  Dimension = "contact"
)

// All lists every dimension, in preload order.
var All = []Dimension{Category, Operator, Status, Queue, Client, Contact}

// Attributes are the mutable, non-key columns of a dimension row. CRMID
// and ClientType apply to the client dimension only; ClientID applies to
// the contact dimension only.
type Attributes struct {
	Title      string
	CRMID      string
	ClientType string
	ClientID   *uint
}

// Equal compares attributes by value.
func (a Attributes) Equal(b Attributes) bool {
	if a.Title != b.Title || a.CRMID != b.CRMID || a.ClientType != b.ClientType {
		return false
	}
	switch {
	case a.ClientID == nil && b.ClientID == nil:
		return true
	case a.ClientID == nil || b.ClientID == nil:
		return false
	default:
		return *a.ClientID == *b.ClientID
	}
}

// Record is one dimension row: the surrogate key plus current attributes.
type Record struct {
	ID         uint
	Attributes Attributes
}

// Store is the persistence port for dimension rows. Rows are created
// lazily on first observation and never deleted by the sync path.
type Store interface {
	Load(ctx context.Context, dim Dimension) (map[string]Record, error)
	Insert(ctx context.Context, dim Dimension, externalID string, attrs Attributes) (uint, error)
	Update(ctx context.Context, dim Dimension, id uint, attrs Attributes) error
}
