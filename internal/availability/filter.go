package availability

// TimePreference selects a band of the working day.
type TimePreference string

// Recognized preference values. Unknown values behave like
// PreferenceAny so a mis-heard preference never hides availability.
const (
	PreferenceMorning   TimePreference = "morning"   // 09:00-12:00
	PreferenceAfternoon TimePreference = "afternoon" // 12:00-17:00
	PreferenceEvening   TimePreference = "evening"   // 17:00-20:00
	PreferenceAny       TimePreference = "any"
)

// band returns the half-open start-hour range [from, to) for the
// preference, and ok=false for "any" or unknown values.
func (p TimePreference) band() (from, to int, ok bool) {
	switch p {
	case PreferenceMorning:
		return 9, 12, true
	case PreferenceAfternoon:
		return 12, 17, true
	case PreferenceEvening:
		return 17, 20, true
	default:
		return 0, 0, false
	}
}

// FilterByPreference retains only slots whose start hour falls in the
// preferred band. PreferenceAny returns the input unchanged.
func FilterByPreference(slots []FreeSlot, pref TimePreference) []FreeSlot {
	from, to, ok := pref.band()
	if !ok {
		return slots
	}

	var filtered []FreeSlot
	for _, slot := range slots {
		if h := slot.Start.Hour(); h >= from && h < to {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
