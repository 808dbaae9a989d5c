package services_test

import (
	"sync"
	"testing"

	"lanari/internal/database"
	"lanari/internal/models"
	"lanari/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gormDuplicate() error {
	return gorm.ErrDuplicatedKey
}

// setupTestDB opens a private in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.New().String()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, repos *repositories.Repositories, name string, price int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, PricePLN: price, StockQty: stock, IsActive: true}
	require.NoError(t, repos.Products.Create(p))
	return p
}

func seedUser(t *testing.T, repos *repositories.Repositories, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", FullName: "Anna Nowak", IsActive: true}
	require.NoError(t, repos.Users.Create(u))
	return u
}

type publishedEvent struct {
	Exchange   string
	RoutingKey string
	Body       []byte
}

// recordingPublisher collects every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Exchange: exchange, RoutingKey: routingKey, Body: body})
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}
