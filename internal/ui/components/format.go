package components

import "time"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
