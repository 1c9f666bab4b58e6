package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"mediconnect/database"
	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs the repository and ensures its indexes.
func NewMongoDoctorRepo() DoctorRepository {
	repo := &MongoDoctorRepo{coll: database.DB().Collection("doctors")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("doctor repo: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("doctor with email %s already exists", doctor.Email)
		}
		return fmt.Errorf("error creating doctor: %w", err)
	}
	return nil
}

func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching doctor %s: %w", id, err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching doctor by email: %w", err)
	}
	return &doctor, nil
}

// GetSchedule projects out only the fields the slot and booking paths need.
func (r *MongoDoctorRepo) GetSchedule(id string) (*models.DoctorSchedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	proj := bson.M{"id": 1, "name": 1, "active": 1, "availability": 1, "fee": 1}
	var sched models.DoctorSchedule
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(proj)).Decode(&sched)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching schedule for doctor %s: %w", id, err)
	}
	return &sched, nil
}

func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": doctor.ID}, bson.M{"$set": doctor})
	if err != nil {
		return fmt.Errorf("error updating doctor %s: %w", doctor.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDoctorRepo) UpdateAvailability(id string, avail models.Availability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"availability": avail, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating availability for doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the accepting-bookings flag and returns the new value.
func (r *MongoDoctorRepo) SetActive(id string, active bool) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, fmt.Errorf("error toggling doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return active, nil
}

// AddReview appends a review and recomputes the denormalized rating in one
// update pipeline, so concurrent reviews cannot leave the average stale.
func (r *MongoDoctorRepo) AddReview(id string, review models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "reviews", Value: bson.D{
				{Key: "$concatArrays", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
					bson.A{review},
				}},
			}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{
				{Key: "$round", Value: bson.A{bson.D{{Key: "$avg", Value: "$reviews.rating"}}, 1}},
			}},
			{Key: "updated_at", Value: time.Now()},
		}}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("error adding review for doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetReviews returns the doctor's rating plus a page of reviews.
func (r *MongoDoctorRepo) GetReviews(id string, page, limit int) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	proj := bson.M{
		"id":     1,
		"rating": 1,
		"reviews": bson.M{"$slice": bson.A{(page - 1) * limit, limit}},
	}
	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(proj)).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reviews for doctor %s: %w", id, err)
	}
	return &doctor, nil
}
