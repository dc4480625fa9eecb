package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/nclex-prep/backend/internal/question"
)

const (
	connectPingTimeout = 10 * time.Second
	// Retry interval ceiling for the startup connection loop.
	maxConnectInterval = 60 * time.Second
)

// MongoStore serves random questions from a MongoDB collection using the
// $sample aggregation stage. The connection is established in the
// background; until it is ready every query fails fast with ErrUnavailable.
type MongoStore struct {
	uri      string
	dbName   string
	collName string
	logger   *slog.Logger

	client atomic.Pointer[mongo.Client]
	coll   atomic.Pointer[mongo.Collection]
}

// NewMongo creates a MongoStore. Call Start to begin connecting.
func NewMongo(uri, dbName, collName string, logger *slog.Logger) *MongoStore {
	return &MongoStore{
		uri:      uri,
		dbName:   dbName,
		collName: collName,
		logger:   logger,
	}
}

// Start launches the connection loop with exponential backoff. It returns
// immediately so the HTTP server can begin accepting requests; the loop
// runs until it succeeds or ctx is cancelled.
func (s *MongoStore) Start(ctx context.Context) {
	go func() {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = time.Second
		b.MaxInterval = maxConnectInterval

		coll, err := backoff.Retry(ctx, func() (*mongo.Collection, error) {
			return s.connect(ctx)
		}, backoff.WithBackOff(b), backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("mongodb connection failed, retrying", "error", err, "next_attempt_in", next)
		}))
		if err != nil {
			s.logger.Error("giving up on mongodb connection", "error", err)
			return
		}

		s.coll.Store(coll)
		s.logger.Info("connected to mongodb", "database", s.dbName, "collection", s.collName)
	}()
}

func (s *MongoStore) connect(ctx context.Context) (*mongo.Collection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s.client.Store(client)
	return client.Database(s.dbName).Collection(s.collName), nil
}

// Close disconnects the underlying client if a connection was established.
func (s *MongoStore) Close(ctx context.Context) error {
	if client := s.client.Load(); client != nil {
		return client.Disconnect(ctx)
	}
	return nil
}

// RandomQuestion samples one question uniformly at random from the subset
// of the collection whose id is not in exclude. Uniformity is inherited
// from the $sample stage. Exclusion entries that are not valid ObjectID
// hex are dropped rather than rejected.
func (s *MongoStore) RandomQuestion(ctx context.Context, exclude []string) (*question.Question, error) {
	coll := s.coll.Load()
	if coll == nil {
		return nil, ErrUnavailable
	}

	pipeline := mongo.Pipeline{}
	if ids := parseExclude(exclude); len(ids) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$nin", Value: ids}}},
		}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}})

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, question.ErrExhausted
	}

	var doc questionDoc
	if err := cur.Decode(&doc); err != nil {
		s.logger.Warn("sampled document failed to decode", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	q := doc.normalize()
	if err := q.Validate(); err != nil {
		s.logger.Warn("sampled question failed validation", "id", q.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return q, nil
}

// parseExclude converts exclusion entries to ObjectIDs, silently dropping
// anything that does not parse as a valid key.
func parseExclude(exclude []string) []bson.ObjectID {
	var ids []bson.ObjectID
	for _, raw := range exclude {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// questionDoc is the stored document shape.
type questionDoc struct {
	ID            bson.ObjectID     `bson:"_id"`
	Question      string            `bson:"question"`
	Options       map[string]string `bson:"options"`
	CorrectAnswer string            `bson:"correctAnswer"`
	Explanation   string            `bson:"explanation"`
	Category      string            `bson:"category,omitempty"`
	Subcategory   string            `bson:"subcategory,omitempty"`
	Difficulty    string            `bson:"difficulty,omitempty"`
	NCLEXCategory string            `bson:"nclexCategory,omitempty"`
}

// normalize reshapes the stored document into the wire shape. Fields absent
// in storage stay absent in the output.
func (d *questionDoc) normalize() *question.Question {
	return &question.Question{
		ID:            d.ID.Hex(),
		Question:      d.Question,
		Options:       d.Options,
		CorrectAnswer: d.CorrectAnswer,
		Explanation:   d.Explanation,
		Category:      d.Category,
		Subcategory:   d.Subcategory,
		Difficulty:    d.Difficulty,
		NCLEXCategory: d.NCLEXCategory,
	}
}
