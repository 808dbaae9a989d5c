package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups repositories sharing one database handle, which is
// either the pool or a single open transaction.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Payments PaymentRepository
	Profiles ProfileRepository
	Media    MediaRepository
}

// NewGORMRepositories builds every GORM repository over db.
func NewGORMRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewGORMUserRepository(db),
		Products: NewGORMProductRepository(db),
		Carts:    NewGORMCartRepository(db),
		Orders:   NewGORMOrderRepository(db),
		Payments: NewGORMPaymentRepository(db),
		Profiles: NewGORMProfileRepository(db),
		Media:    NewGORMMediaRepository(db),
	}
}

// Transactor runs a unit of work atomically. If fn returns an error every write
// made through the repositories it was handed is rolled back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// GORMTransactor is a Transactor backed by gorm transactions.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *GORMTransactor) WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMRepositories(tx))
	})
}
