package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobtracker/tracker-web/internal/core/ports"
)

const (
	defaultTimeout    = 10 * time.Second
	sessionCollection = "sessions"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect returns the client and the selected database after a successful ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

type sessionDoc struct {
	Profile   string `bson:"_id"`
	Token     string `bson:"token"`
	UpdatedAt int64  `bson:"updated_at"`
}

// TokenStore keeps one session document per profile, keyed by the profile name.
type TokenStore struct {
	coll    *mongo.Collection
	profile string
}

var _ ports.TokenStore = (*TokenStore)(nil)

func NewTokenStore(db *mongo.Database, profile string) *TokenStore {
	if profile == "" {
		profile = "default"
	}
	return &TokenStore{coll: db.Collection(sessionCollection), profile: profile}
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.profile}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find session %s: %w", s.profile, err)
	}
	return doc.Token, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	update := bson.M{"$set": bson.M{
		"token":      token,
		"updated_at": time.Now().UTC().Unix(),
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.profile}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", s.profile, err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.profile}); err != nil {
		return fmt.Errorf("delete session %s: %w", s.profile, err)
	}
	return nil
}

func (s *TokenStore) Check(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func (s *TokenStore) Name() string { return "mongo" }
