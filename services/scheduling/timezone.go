package scheduling

import "time"

// DefaultTimezone is used when a doctor has no timezone configured.
const DefaultTimezone = "Asia/Kolkata"

// Legacy doctor records carry fixed-offset labels instead of IANA names.
var timezoneAliases = map[string]string{
	"IST": "Asia/Kolkata",
}

// ResolveLocation maps a doctor's configured timezone (IANA name, legacy
// label, or empty) to a *time.Location. Resolution happens once per
// request; callers pass the location down rather than re-deriving it.
func ResolveLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	if alias, ok := timezoneAliases[name]; ok {
		name = alias
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, newRuleError(CodeInvalidInput, "unknown timezone %q", name)
	}
	return loc, nil
}
