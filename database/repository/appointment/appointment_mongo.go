package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mediconnect/database"
	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs the repository and ensures its
// indexes, including the booking-conflict backstop.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("appointment repo: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(id, status, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now()}
	if reason != "" {
		set["cancel_reason"] = reason
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointmentRepo) SetPaymentStatus(id, paymentStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment.status": paymentStatus, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating payment for appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaidByOrderID is the webhook settlement path: record the captured
// payment and confirm the appointment unless it already left pending.
func (r *MongoAppointmentRepo) MarkPaidByOrderID(orderID, paymentID string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"payment.external_order_id": orderID}
	update := bson.M{
		"$set": bson.M{
			"payment.status":              models.PaymentPaid,
			"payment.external_payment_id": paymentID,
			"updated_at":                  time.Now(),
		},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("error settling payment for order %s: %w", orderID, err)
	}

	confirm := bson.M{"$set": bson.M{"status": models.AppointmentConfirmed, "updated_at": time.Now()}}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"payment.external_order_id": orderID, "status": models.AppointmentPending}, confirm)
	if err != nil {
		return nil, fmt.Errorf("error confirming appointment for order %s: %w", orderID, err)
	}

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment for order %s: %w", orderID, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) MarkPaymentFailedByOrderID(orderID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment.status": models.PaymentFailed, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"payment.external_order_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("error marking payment failed for order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
