package sync

import (
	"context"

	"desksync/internal/domain/dimension"
	"desksync/internal/infrastructure/helpdesk"
	"desksync/internal/infrastructure/persistence/models"
	"desksync/internal/shared/logger"
)

type mockGateway struct {
	ListTicketsFunc    func(ctx context.Context, filter helpdesk.ListFilter) ([]helpdesk.Ticket, error)
	ListActivitiesFunc func(ctx context.Context, ticketID string) ([]helpdesk.Activity, error)
}

func (m *mockGateway) ListTickets(ctx context.Context, filter helpdesk.ListFilter) ([]helpdesk.Ticket, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockGateway) ListActivities(ctx context.Context, ticketID string) ([]helpdesk.Activity, error) {
	if m.ListActivitiesFunc != nil {
		return m.ListActivitiesFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockSyncStore struct {
	EditedMapFunc     func(ctx context.Context) (map[string]string, error)
	MaxEditedDateFunc func(ctx context.Context) (string, error)
	ReplaceTicketFunc func(ctx context.Context, ticket *models.TicketModel, activities []models.ActivityModel) error
}

func (m *mockSyncStore) EditedMap(ctx context.Context) (map[string]string, error) {
	if m.EditedMapFunc != nil {
		return m.EditedMapFunc(ctx)
	}
	return map[string]string{}, nil
}

func (m *mockSyncStore) MaxEditedDate(ctx context.Context) (string, error) {
	if m.MaxEditedDateFunc != nil {
		return m.MaxEditedDateFunc(ctx)
	}
	return "", nil
}

func (m *mockSyncStore) ReplaceTicket(ctx context.Context, ticket *models.TicketModel, activities []models.ActivityModel) error {
	if m.ReplaceTicketFunc != nil {
		return m.ReplaceTicketFunc(ctx, ticket, activities)
	}
	return nil
}

// mockDimensionStore implements dimension.Store with incrementing surrogate
// keys and call recording.
type mockDimensionStore struct {
	LoadFunc   func(ctx context.Context, dim dimension.Dimension) (map[string]dimension.Record, error)
	InsertFunc func(ctx context.Context, dim dimension.Dimension, externalID string, attrs dimension.Attributes) (uint, error)
	UpdateFunc func(ctx context.Context, dim dimension.Dimension, id uint, attrs dimension.Attributes) error

	nextID  uint
	inserts int
	updates int
}

func (m *mockDimensionStore) Load(ctx context.Context, dim dimension.Dimension) (map[string]dimension.Record, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, dim)
	}
	return map[string]dimension.Record{}, nil
}

func (m *mockDimensionStore) Insert(ctx context.Context, dim dimension.Dimension, externalID string, attrs dimension.Attributes) (uint, error) {
	m.inserts++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, dim, externalID, attrs)
	}
	m.nextID++
	return m.nextID, nil
}

func (m *mockDimensionStore) Update(ctx context.Context, dim dimension.Dimension, id uint, attrs dimension.Attributes) error {
	m.updates++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, dim, id, attrs)
	}
	return nil
}

type mockRedactor struct {
	RedactFunc func(text string) (string, error)
}

func (m *mockRedactor) Redact(text string) (string, error) {
	if m.RedactFunc != nil {
		return m.RedactFunc(text)
	}
	return text, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
