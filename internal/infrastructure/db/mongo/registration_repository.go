package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/event-hub/internal/core/domain"
)

const collectionRegistrations = "registrations"

// RegistrationRepository implements ports.RegistrationRepository using MongoDB.
// A unique (user_id, event_id) index rejects duplicates that race past the
// service-level check.
type RegistrationRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewRegistrationRepository(db *mongo.Database, timeout time.Duration) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(collectionRegistrations), timeout: timeoutOrDefault(timeout)}
}

type registrationDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	EventID      string             `bson:"event_id"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

func (d registrationDocument) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		EventID:      d.EventID,
		RegisteredAt: d.RegisteredAt.UTC(),
	}
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var d registrationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return d.toDomain(), nil
}

func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.find(ctx, bson.M{"event_id": eventID})
}

func (r *RegistrationRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *RegistrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) ([]*domain.Registration, error) {
	return r.find(ctx, bson.M{"user_id": userID, "event_id": eventID})
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []registrationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	regs := make([]*domain.Registration, 0, len(docs))
	for _, d := range docs {
		regs = append(regs, d.toDomain())
	}
	return regs, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	d := registrationDocument{
		ID:           primitive.NewObjectID(),
		UserID:       reg.UserID,
		EventID:      reg.EventID,
		RegisteredAt: storeTime(reg.RegisteredAt),
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return d.toDomain(), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrRegistrationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// EnsureIndexes creates the uniqueness constraint and the per-event lookup index.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_event"),
		},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
