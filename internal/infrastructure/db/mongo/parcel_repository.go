package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

const collectionParcels = "parcels"

type ParcelRepository struct {
	col *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{col: db.Collection(collectionParcels)}
}

// Create inserts a new parcel document. The unique index on tracking_number
// surfaces duplicates as domain.ErrDuplicateParcel.
func (r *ParcelRepository) Create(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stored := *p
	if stored.ID == "" {
		stored.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.col.InsertOne(ctx, &stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateParcel
		}
		return nil, err
	}
	return &stored, nil
}

// FindByID retrieves a parcel by id. When clientID is non-empty the lookup is
// additionally filtered by ownership, so foreign parcels read as not found.
func (r *ParcelRepository) FindByID(ctx context.Context, id string, clientID string) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	var p domain.Parcel
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns parcels matching filter in creation order.
func (r *ParcelRepository) List(ctx context.Context, filter ports.ListParcelsFilter) ([]*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Search != "" {
		query["tracking_number"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Search),
			Options: "i",
		}
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date_created", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var parcels []*domain.Parcel
	for cur.Next(ctx) {
		var p domain.Parcel
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		parcels = append(parcels, &p)
	}
	return parcels, cur.Err()
}

// UpdateStatus persists the new status and re-stamps date_updated.
func (r *ParcelRepository) UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus, updated time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":       string(status),
		"date_updated": updated,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func (r *ParcelRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

// EnsureIndexes creates the unique tracking number index plus the common
// query paths.
func (r *ParcelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
