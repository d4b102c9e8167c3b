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

const collectionEvents = "events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewEventRepository(db *mongo.Database, timeout time.Duration) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents), timeout: timeoutOrDefault(timeout)}
}

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        string             `bson:"date"`
	Venue       string             `bson:"venue"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty"`
}

func (d eventDocument) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Venue:       d.Venue,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt,
	}
}

// List returns all events sorted ascending by date.
func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]*domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var d eventDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return d.toDomain(), nil
}

// Create inserts a new event document and returns it with its assigned id.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	d := eventDocument{
		ID:          primitive.NewObjectID(),
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Venue:       e.Venue,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   storeTime(e.CreatedAt),
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return d.toDomain(), nil
}

// Update sets only the patched fields plus updated_at and returns the merged document.
func (r *EventRepository) Update(ctx context.Context, id string, patch domain.EventPatch, updatedAt time.Time) (*domain.Event, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	set := bson.M{"updated_at": storeTime(updatedAt)}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Venue != nil {
		set["venue"] = *patch.Venue
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var d eventDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return d.toDomain(), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing the date-ordered listing.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	return err
}
