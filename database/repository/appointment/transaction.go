package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertIfFree re-checks the overlap and buffer rules inside a session
// transaction and inserts the appointment only when they hold. The
// application already validated against a read snapshot, but that snapshot
// may be stale by the time the write arrives; this check plus the unique
// {doctor_id, start_time} partial index guarantee at-most-one-writer-wins
// for a contested interval.
func (r *MongoAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment, buffer time.Duration) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		conflicts, err := r.countConflicting(sc, appt, buffer)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrConflict
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrConflict {
			return ErrConflict
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// countConflicting counts pending or confirmed appointments for the same
// doctor whose interval touches the candidate's buffered window. Each
// document's end is start_time plus its duration (default 30 minutes), so
// the comparison runs as an $expr.
func (r *MongoAppointmentRepo) countConflicting(sc mongo.SessionContext, appt *models.Appointment, buffer time.Duration) (int64, error) {
	windowStart := appt.StartTime.Add(-buffer)
	windowEnd := appt.End().Add(buffer)

	endExpr := bson.M{"$add": bson.A{
		"$start_time",
		bson.M{"$multiply": bson.A{
			bson.M{"$ifNull": bson.A{"$duration_minutes", 30}},
			60_000,
		}},
	}}

	filter := bson.M{
		"doctor_id": appt.DoctorID,
		"status":    bson.M{"$in": bson.A{models.AppointmentPending, models.AppointmentConfirmed}},
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$lt": bson.A{"$start_time", windowEnd}},
			bson.M{"$gt": bson.A{endExpr, windowStart}},
		}},
	}
	count, err := r.coll.CountDocuments(sc, filter)
	if err != nil {
		return 0, fmt.Errorf("error checking for conflicting appointments: %w", err)
	}
	return count, nil
}
