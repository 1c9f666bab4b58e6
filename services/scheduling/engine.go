package scheduling

import (
	"time"

	"mediconnect/models"
)

const (
	// DefaultSlotMinutes is the fixed appointment slot length.
	DefaultSlotMinutes = 30
	// BufferMinutes is the minimum gap required between two appointments
	// for the same doctor.
	BufferMinutes = 30

	lunchStartHour = 12
	lunchEndHour   = 13

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	labelLayout = "3:04 PM"
)

// Engine computes available slots and validates candidate bookings. It is
// pure: all inputs, including the current time, are passed in, and it
// performs no I/O.
type Engine struct {
	SlotDuration time.Duration
	Buffer       time.Duration
}

// NewEngine returns an Engine with the platform defaults (30-minute slots,
// 30-minute buffer).
func NewEngine() *Engine {
	return &Engine{
		SlotDuration: DefaultSlotMinutes * time.Minute,
		Buffer:       BufferMinutes * time.Minute,
	}
}

func (e *Engine) slotDuration() time.Duration {
	if e.SlotDuration <= 0 {
		return DefaultSlotMinutes * time.Minute
	}
	return e.SlotDuration
}

func (e *Engine) buffer() time.Duration {
	if e.Buffer <= 0 {
		return BufferMinutes * time.Minute
	}
	return e.Buffer
}

// ComputeAvailableSlots returns the ordered bookable slots for one doctor
// on one calendar date. The date and working hours are interpreted in the
// doctor's timezone; existing must hold every appointment whose interval
// intersects that local day. An empty result is a valid outcome, not an
// error.
func (e *Engine) ComputeAvailableSlots(avail models.Availability, date string, existing []models.Appointment, now time.Time) ([]models.Slot, error) {
	loc, err := ResolveLocation(avail.Timezone)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil, newRuleError(CodeInvalidInput, "invalid date %q, want YYYY-MM-DD", date)
	}

	startH, startM, err := parseClock(avail.WorkingHours.Start)
	if err != nil {
		return nil, err
	}
	endH, endM, err := parseClock(avail.WorkingHours.End)
	if err != nil {
		return nil, err
	}

	windowStart := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, loc)
	if !windowStart.Before(windowEnd) {
		return nil, newRuleError(CodeInvalidInput, "working hours start %q is not before end %q",
			avail.WorkingHours.Start, avail.WorkingHours.End)
	}

	dur := e.slotDuration()
	var slots []models.Slot
	cursor := windowStart
	for !cursor.Add(dur).After(windowEnd) {
		// Fixed one-hour lunch break. The skip goes by local wall-clock
		// hour so it stays correct across DST transitions.
		if cursor.In(loc).Hour() == lunchStartHour {
			cursor = time.Date(day.Year(), day.Month(), day.Day(), lunchEndHour, 0, 0, 0, loc)
			continue
		}

		slotEnd := cursor.Add(dur)
		if cursor.After(now) && !overlapsAny(cursor, slotEnd, existing) {
			slots = append(slots, models.Slot{
				StartUTC:   cursor.UTC(),
				EndUTC:     slotEnd.UTC(),
				LocalLabel: cursor.In(loc).Format(labelLayout) + " - " + slotEnd.In(loc).Format(labelLayout),
			})
		}
		cursor = slotEnd
	}
	return slots, nil
}

// ValidateBooking decides whether a candidate appointment is legal against
// the doctor's current appointment set. Rules apply in order; the first
// failing rule wins. It runs at write time regardless of what any earlier
// slot listing showed, because that listing may be stale by now.
func (e *Engine) ValidateBooking(candidateStart time.Time, candidateDuration time.Duration, existing []models.Appointment, now time.Time) error {
	if candidateDuration <= 0 {
		candidateDuration = e.slotDuration()
	}
	if !candidateStart.After(now) {
		return newRuleError(CodePastOrInvalidTime, "appointment start %s is not in the future",
			candidateStart.UTC().Format(time.RFC3339))
	}

	candidateEnd := candidateStart.Add(candidateDuration)
	for _, appt := range existing {
		if !appt.Blocks() {
			continue
		}
		if candidateStart.Before(appt.End()) && candidateEnd.After(appt.StartTime) {
			return newRuleError(CodeSlotAlreadyBooked, "slot starting %s is already booked",
				candidateStart.UTC().Format(time.RFC3339))
		}
	}

	buf := e.buffer()
	for _, appt := range existing {
		if !appt.Blocks() {
			continue
		}
		// Non-overlapping at this point; require the 30-minute gap on
		// whichever side the neighbour sits.
		if !appt.End().After(candidateStart) && candidateStart.Sub(appt.End()) < buf {
			return newRuleError(CodeInsufficientBuffer, "only %s gap after previous appointment, need %s",
				candidateStart.Sub(appt.End()), buf)
		}
		if !candidateEnd.After(appt.StartTime) && appt.StartTime.Sub(candidateEnd) < buf {
			return newRuleError(CodeInsufficientBuffer, "only %s gap before next appointment, need %s",
				appt.StartTime.Sub(candidateEnd), buf)
		}
	}
	return nil
}

// parseClock validates an "HH:MM" working-hours bound.
func parseClock(s string) (hour, minute int, err error) {
	t, perr := time.Parse(clockLayout, s)
	if perr != nil {
		return 0, 0, newRuleError(CodeInvalidInput, "invalid working hours %q, want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// overlapsAny applies the half-open interval overlap test against every
// appointment, whatever its status. The display path is conservative and
// hides a slot even when the colliding appointment is cancelled; only the
// write-time validation distinguishes by status.
func overlapsAny(start, end time.Time, appts []models.Appointment) bool {
	for _, appt := range appts {
		if start.Before(appt.End()) && end.After(appt.StartTime) {
			return true
		}
	}
	return false
}
