package clients

import (
	"context"
	"sync"

	"github.com/tidepool-org/landing/models"
)

// MockNotifier records acknowledgements for tests.
type MockNotifier struct {
	mu   sync.Mutex
	acks []models.Acknowledgement
	Err  error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (c *MockNotifier) Notify(ctx context.Context, ack models.Acknowledgement) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acks = append(c.acks, ack)
	return c.Err
}

func (c *MockNotifier) Acknowledgements() []models.Acknowledgement {
	c.mu.Lock()
	defer c.mu.Unlock()
	acks := make([]models.Acknowledgement, len(c.acks))
	copy(acks, c.acks)
	return acks
}

func (c *MockNotifier) GetLastAcknowledgement() (models.Acknowledgement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.acks) == 0 {
		return models.Acknowledgement{}, false
	}
	return c.acks[len(c.acks)-1], true
}
