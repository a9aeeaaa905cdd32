package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mealprep/db"
	"mealprep/globals"
)

var (
	ErrAccountNotFound = errors.New("auth: account not found")
	ErrEmailTaken      = errors.New("auth: email already registered")
)

// Account is a credential record. It never leaves this package.
type Account struct {
	UID          string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type AccountRepository interface {
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, a Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Delete(ctx context.Context, uid string) error
}

type MongoAccounts struct {
	coll *mongo.Collection
}

func NewMongoAccounts(d *db.DB) *MongoAccounts {
	return &MongoAccounts{coll: d.Collection(globals.AccountsCollection)}
}

func (m *MongoAccounts) Create(ctx context.Context, a Account) error {
	_, err := m.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("auth: insert account: %w", err)
	}
	return nil
}

func (m *MongoAccounts) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := m.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("auth: find account: %w", err)
	}
	return &a, nil
}

func (m *MongoAccounts) Delete(ctx context.Context, uid string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": uid}); err != nil {
		return fmt.Errorf("auth: delete account %s: %w", uid, err)
	}
	return nil
}

type MemoryAccounts struct {
	mu      sync.Mutex
	byEmail map[string]Account
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{byEmail: make(map[string]Account)}
}

func (m *MemoryAccounts) Create(_ context.Context, a Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[a.Email]; ok {
		return ErrEmailTaken
	}
	m.byEmail[a.Email] = a
	return nil
}

func (m *MemoryAccounts) FindByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &a, nil
}

func (m *MemoryAccounts) Delete(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, a := range m.byEmail {
		if a.UID == uid {
			delete(m.byEmail, email)
		}
	}
	return nil
}

// Len reports how many accounts are stored.
func (m *MemoryAccounts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}
