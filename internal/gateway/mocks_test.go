package gateway_test

import (
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"chatwire/backend/internal/gateway"
	"chatwire/backend/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient stands in for a websocket connection. Frames the gateway
// sends land in Recv.
type MockClient struct {
	Recv   chan gateway.Envelope
	closed atomic.Bool
}

func newMockClient() *MockClient {
	return &MockClient{Recv: make(chan gateway.Envelope, 16)}
}

func (c *MockClient) GetSendChannel() chan<- gateway.Envelope { return c.Recv }

func (c *MockClient) Close() { c.closed.Store(true) }

func (c *MockClient) Closed() bool { return c.closed.Load() }

// next pops a received frame, or fails the test after a short wait.
func (c *MockClient) next(t *testing.T) gateway.Envelope {
	t.Helper()
	select {
	case env := <-c.Recv:
		return env
	case <-time.After(time.Second):
		t.Fatal("expected a frame, got none")
		return gateway.Envelope{}
	}
}

// nothingPending asserts no frame was delivered.
func (c *MockClient) nothingPending(t *testing.T) {
	t.Helper()
	select {
	case env := <-c.Recv:
		t.Fatalf("unexpected frame %q", env.Event)
	default:
	}
}

func decodePayload(t *testing.T, env gateway.Envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// MockStorage implements storage.Storage via testify/mock.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateAccount(acc *models.Account) error {
	args := m.Called(acc)
	return args.Error(0)
}

func (m *MockStorage) FindAccountByUsername(username string) (*models.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockStorage) FindAccountByID(id string) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockStorage) ListAccounts() ([]models.Account, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetConversation(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) RevokeToken(token string, ttl time.Duration) error {
	args := m.Called(token, ttl)
	return args.Error(0)
}

func (m *MockStorage) IsTokenRevoked(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SetLastSeen(userID string, at time.Time) error {
	args := m.Called(userID, at)
	return args.Error(0)
}

func (m *MockStorage) LastSeen(userID string) (time.Time, error) {
	args := m.Called(userID)
	return args.Get(0).(time.Time), args.Error(1)
}
