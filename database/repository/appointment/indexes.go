package appointmentRepo

import (
	"fmt"
	"time"

	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the appointments
// collection. The unique partial index over {doctor_id, start_time} is the
// storage-level backstop against two live bookings claiming the same slot:
// a writer that loses a race fails the insert with a duplicate-key error
// instead of silently double-booking.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_live_doctor_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.AppointmentPending, models.AppointmentConfirmed}},
				}),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("patient_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "payment.external_order_id", Value: 1}},
			Options: options.Index().SetName("payment_order_idx").SetSparse(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
