package scheduling

import "mediconnect/models"

// ValidateAvailability checks a doctor's scheduling configuration before it
// is stored: both working-hour bounds parse as HH:MM, start precedes end,
// and the timezone resolves.
func ValidateAvailability(avail models.Availability) error {
	if _, err := ResolveLocation(avail.Timezone); err != nil {
		return err
	}

	startH, startM, err := parseClock(avail.WorkingHours.Start)
	if err != nil {
		return err
	}
	endH, endM, err := parseClock(avail.WorkingHours.End)
	if err != nil {
		return err
	}
	if startH*60+startM >= endH*60+endM {
		return newRuleError(CodeInvalidInput, "working hours start %q is not before end %q",
			avail.WorkingHours.Start, avail.WorkingHours.End)
	}
	return nil
}
