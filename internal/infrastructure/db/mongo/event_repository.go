package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
)

const collectionStatusEvents = "status_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// AppendStatus atomically sets the shipment status and appends the history entry.
func (r *EventRepository) AppendStatus(ctx context.Context, trackingNumber string, entry domain.StatusHistoryEntry) error {
	historyEntry := bson.M{
		"status":    string(entry.Status),
		"timestamp": entry.Timestamp.UTC(),
	}
	if entry.Location != "" {
		historyEntry["location"] = entry.Location
	}
	if entry.Notes != "" {
		historyEntry["notes"] = entry.Notes
	}
	if !entry.Actor.IsZero() {
		historyEntry["user"] = actorDoc(entry.Actor)
	}

	filter := bson.M{"tracking_number": trackingNumber}
	update := bson.M{
		"$set":  bson.M{"status": string(entry.Status)},
		"$push": bson.M{"status_history": historyEntry},
	}

	_, err := r.db.Collection(collectionShipments).UpdateOne(ctx, filter, update)
	return err
}

// InsertEvent persists a tracking event to the status_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.TrackingEvent) error {
	doc := bson.M{
		"tracking_number": event.TrackingNumber,
		"status":          string(event.Status),
		"timestamp":       event.Timestamp.UTC(),
		"source":          event.Source,
		"processed_at":    time.Now().UTC(),
	}
	if event.Location != "" {
		doc["location"] = event.Location
	}
	if event.Notes != "" {
		doc["notes"] = event.Notes
	}
	if !event.Actor.IsZero() {
		doc["user"] = actorDoc(event.Actor)
	}

	_, err := r.db.Collection(collectionStatusEvents).InsertOne(ctx, doc)
	return err
}

// actorDoc stores actors in the object shape regardless of the wire shape
// they arrived in, so stored history is uniform.
func actorDoc(a domain.ActorRef) bson.M {
	doc := bson.M{}
	if a.ID != "" {
		doc["id"] = a.ID
	}
	if a.Name != "" {
		doc["name"] = a.Name
	}
	return doc
}
