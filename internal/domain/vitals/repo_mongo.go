package vitals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const vitalsCollection = "vitals"

// repoMongo stores each record as one document in the vitals collection,
// keyed by patient_id. bson omitempty on the model keeps absent optional
// fields out of the stored document.
type repoMongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewRepoMongo(ctx context.Context, client *mongo.Client, database string) (Repository, error) {
	coll := client.Database(database).Collection(vitalsCollection)

	// A unique index on patient_id backs the one-document-per-patient
	// invariant at the store rather than trusting the upsert filter alone.
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "patient_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, storeError("ensure patient_id index", err)
	}

	return &repoMongo{client: client, coll: coll}, nil
}

func (r *repoMongo) Save(ctx context.Context, rec *VitalsRecord) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	rec.CreatedAt = now
	rec.UpdatedAt = now

	// Preserve created_at across overwrites. Reads and replaces are separate
	// operations; concurrent saves for the same id resolve last-write-wins.
	var prev VitalsRecord
	err := r.coll.FindOne(ctx, bson.M{"patient_id": rec.PatientID}).Decode(&prev)
	switch {
	case err == nil:
		rec.CreatedAt = prev.CreatedAt
	case errors.Is(err, mongo.ErrNoDocuments):
		// first save for this patient id
	default:
		return storeError("load prior vitals record", err)
	}

	_, err = r.coll.ReplaceOne(ctx,
		bson.M{"patient_id": rec.PatientID},
		rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		return storeError("save vitals record", err)
	}
	return nil
}

func (r *repoMongo) FindByID(ctx context.Context, patientID string) (*VitalsRecord, error) {
	var rec VitalsRecord
	err := r.coll.FindOne(ctx, bson.M{"patient_id": patientID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("find vitals record", err)
	}
	return &rec, nil
}

func (r *repoMongo) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.client.Ping(pingCtx, nil); err != nil {
		return storeError("ping store", err)
	}
	return nil
}
