package appointmentRepo

import (
	"fmt"
	"time"

	"mediconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxLookback bounds how far before the window an appointment may start
// and still intersect it. Nothing on the platform runs longer than a day.
const maxLookback = 24 * time.Hour

// ListForDoctorBetween returns every appointment whose interval intersects
// [from, to), any status. The mongo filter is on start_time only; the end
// of each interval is derived from the duration (legacy records have no
// stored end), so the final intersect check happens in memory.
func (r *MongoAppointmentRepo) ListForDoctorBetween(doctorID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"doctor_id":  doctorID,
		"start_time": bson.M{"$gte": from.Add(-maxLookback), "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"start_time": 1}))
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var all []models.Appointment
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}

	var intersecting []models.Appointment
	for _, appt := range all {
		if appt.End().After(from) {
			intersecting = append(intersecting, appt)
		}
	}
	return intersecting, nil
}

// ListUpcomingForPatient returns the patient's future, non-cancelled
// appointments, soonest first.
func (r *MongoAppointmentRepo) ListUpcomingForPatient(patientID string, now time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"patient_id": patientID,
		"start_time": bson.M{"$gte": now},
		"status":     bson.M{"$ne": models.AppointmentCancelled},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"start_time": 1}))
	if err != nil {
		return nil, fmt.Errorf("error fetching upcoming appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding upcoming appointments: %w", err)
	}
	return appts, nil
}

// ListCompleted returns one page of a doctor's completed appointments plus
// the total, optionally bounded to a date range.
func (r *MongoAppointmentRepo) ListCompleted(q CompletedQuery) ([]models.Appointment, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	filter := bson.M{"doctor_id": q.DoctorID, "status": models.AppointmentCompleted}
	if rangeFilter := timeRange(q.From, q.To); rangeFilter != nil {
		filter["start_time"] = rangeFilter
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting completed appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error fetching completed appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("error decoding completed appointments: %w", err)
	}
	return appts, total, nil
}

// CountDistinctPatients counts patients with at least one completed
// appointment in the range.
func (r *MongoAppointmentRepo) CountDistinctPatients(doctorID string, from, to *time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "status": models.AppointmentCompleted}
	if rangeFilter := timeRange(from, to); rangeFilter != nil {
		filter["start_time"] = rangeFilter
	}
	ids, err := r.coll.Distinct(ctx, "patient_id", filter)
	if err != nil {
		return 0, fmt.Errorf("error counting distinct patients: %w", err)
	}
	return int64(len(ids)), nil
}

// CountCancelled counts a doctor's cancellations, optionally bounded to
// a date range.
func (r *MongoAppointmentRepo) CountCancelled(doctorID string, from, to *time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "status": models.AppointmentCancelled}
	if rangeFilter := timeRange(from, to); rangeFilter != nil {
		filter["start_time"] = rangeFilter
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting cancellations: %w", err)
	}
	return count, nil
}

func timeRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	rangeFilter := bson.M{}
	if from != nil {
		rangeFilter["$gte"] = *from
	}
	if to != nil {
		rangeFilter["$lte"] = *to
	}
	return rangeFilter
}
