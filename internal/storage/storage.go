package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"chatwire/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrAccountExists is returned by CreateAccount when the username is taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned by the account lookups on a miss.
	ErrAccountNotFound = errors.New("account not found")
)

// Storage is the persistence contract the gateway and the HTTP handlers
// depend on. Tests substitute a mock.
type Storage interface {
	CreateAccount(acc *models.Account) error
	FindAccountByUsername(username string) (*models.Account, error)
	FindAccountByID(id string) (*models.Account, error)
	ListAccounts() ([]models.Account, error)

	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB string) ([]models.Message, error)

	RevokeToken(token string, ttl time.Duration) error
	IsTokenRevoked(token string) (bool, error)

	SetLastSeen(userID string, at time.Time) error
	LastSeen(userID string) (time.Time, error)
}

// Service implements Storage on PostgreSQL (accounts, messages) and
// Redis (token denylist, last-seen timestamps).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// AutoMigrate creates or updates the tables for every model the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Message{},
	)
}

// CreateAccount inserts a new account, rejecting duplicate usernames.
func (s *Service) CreateAccount(acc *models.Account) error {
	var existing models.Account
	err := s.DB.Where("username = ?", acc.Username).First(&existing).Error
	if err == nil {
		return ErrAccountExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.DB.Create(acc).Error
}

func (s *Service) FindAccountByUsername(username string) (*models.Account, error) {
	var acc models.Account
	err := s.DB.Where("username = ?", username).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *Service) FindAccountByID(id string) (*models.Account, error) {
	var acc models.Account
	err := s.DB.Where("id = ?", id).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListAccounts returns every account with only id and username populated.
func (s *Service) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.DB.Select("id", "username").Find(&accounts).Error; err != nil {
		log.Printf("ERROR: Failed to list accounts: %v", err)
		return nil, err
	}
	return accounts, nil
}

// SaveMessage persists a chat message. The record's ID and CreatedAt
// are populated by GORM on success.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
		return err
	}
	return nil
}

// GetConversation loads every message exchanged between the two users,
// in either direction, ordered by creation time ascending.
func (s *Service) GetConversation(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("sender_id IN ? AND receiver_id IN ?", []string{userA, userB}, []string{userA, userB}).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to load conversation %s/%s: %v", userA, userB, err)
		return nil, err
	}
	return messages, nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

// RevokeToken denylists a token until its natural expiry. Used by logout.
func (s *Service) RevokeToken(token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to deny
	}
	return s.Redis.Set(s.Ctx, revokedKey(token), "1", ttl).Err()
}

func (s *Service) IsTokenRevoked(token string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, revokedKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetLastSeen records the moment a user's session ended.
func (s *Service) SetLastSeen(userID string, at time.Time) error {
	return s.Redis.Set(s.Ctx, "lastseen:"+userID, at.UTC().Format(time.RFC3339), 0).Err()
}

func (s *Service) LastSeen(userID string) (time.Time, error) {
	val, err := s.Redis.Get(s.Ctx, "lastseen:"+userID).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, val)
}
