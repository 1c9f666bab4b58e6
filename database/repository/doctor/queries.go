package doctorRepo

import (
	"fmt"
	"time"

	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Nearby runs a $geoNear pipeline over the 2dsphere index, applies the
// optional filters, and returns one page of results plus the total count.
func (r *MongoDoctorRepo) Nearby(q NearbyQuery) ([]NearbyResult, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if q.MaxDistance <= 0 {
		q.MaxDistance = 10000
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	pipeline := []bson.M{
		{"$geoNear": bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{q.Longitude, q.Latitude},
			},
			"distanceField": "distance",
			"maxDistance":   q.MaxDistance,
			"spherical":     true,
			"key":           "hospital_location",
		}},
	}

	match := bson.M{}
	if q.Specialization != "" {
		match["specialization"] = primitive.Regex{Pattern: q.Specialization, Options: "i"}
	}
	if q.MinRating > 0 {
		match["rating"] = bson.M{"$gte": q.MinRating}
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: q.Search, Options: "i"}
		match["$or"] = bson.A{bson.M{"name": re}, bson.M{"specialization": re}}
	}
	if q.ActiveOnly {
		match["active"] = true
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.M{"$match": match})
	}

	countPipeline := append(append([]bson.M{}, pipeline...), bson.M{"$count": "total"})

	pipeline = append(pipeline,
		bson.M{"$addFields": bson.M{"distance_km": bson.M{"$divide": bson.A{"$distance", 1000}}}},
		bson.M{"$sort": bson.M{"distance": 1}},
		bson.M{"$skip": (q.Page - 1) * q.Limit},
		bson.M{"$limit": q.Limit},
		bson.M{"$project": bson.M{"password_hash": 0, "certificate": 0, "reviews": 0, "fcm_token": 0}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("error running nearby search: %w", err)
	}
	defer cursor.Close(ctx)

	var results []NearbyResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("error decoding nearby results: %w", err)
	}

	countCursor, err := r.coll.Aggregate(ctx, countPipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting nearby results: %w", err)
	}
	defer countCursor.Close(ctx)

	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := countCursor.All(ctx, &counts); err != nil {
		return nil, 0, fmt.Errorf("error decoding nearby count: %w", err)
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}
	return results, total, nil
}

// TopRated lists the best-rated doctors (rating >= 4), highest first.
func (r *MongoDoctorRepo) TopRated(limit int) ([]models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.M{"rating": -1}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password_hash": 0, "certificate": 0, "reviews": 0, "fcm_token": 0})
	cursor, err := r.coll.Find(ctx, bson.M{"rating": bson.M{"$gte": 4}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching top rated doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("error decoding top rated doctors: %w", err)
	}
	return doctors, nil
}

// ListActive returns doctors currently accepting bookings, best rated first.
func (r *MongoDoctorRepo) ListActive(page, limit int) ([]models.Doctor, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	filter := bson.M{"active": true}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting active doctors: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"rating": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password_hash": 0, "certificate": 0, "reviews": 0, "fcm_token": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching active doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, 0, fmt.Errorf("error decoding active doctors: %w", err)
	}
	return doctors, total, nil
}

// Specializations returns the distinct specializations in the directory.
func (r *MongoDoctorRepo) Specializations() ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "specialization", bson.M{"specialization": bson.M{"$ne": ""}})
	if err != nil {
		return nil, fmt.Errorf("error fetching specializations: %w", err)
	}
	specs := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			specs = append(specs, s)
		}
	}
	return specs, nil
}

// Search matches doctors by name or specialization, case-insensitive.
func (r *MongoDoctorRepo) Search(query string, page, limit int) ([]models.Doctor, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	filter := bson.M{}
	if query != "" {
		re := primitive.Regex{Pattern: query, Options: "i"}
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"specialization": re}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting search results: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password_hash": 0, "reviews": 0, "fcm_token": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, 0, fmt.Errorf("error decoding search results: %w", err)
	}
	return doctors, total, nil
}
