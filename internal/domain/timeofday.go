package domain

import "time"

// BucketTimeOfDay classifies an instant by its local hour:
// [5,11) morning, [11,17) afternoon, [17,22) evening, otherwise night.
// This is the only bucketing rule in the codebase.
func BucketTimeOfDay(t time.Time) TimeOfDay {
	h := t.Hour()
	switch {
	case h >= 5 && h < 11:
		return Morning
	case h >= 11 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}
