package backup

import "github.com/hearthview/hearth/internal/api"

// MaskedValue replaces sensitive values on display. A fixed width avoids
// leaking the secret's length.
const MaskedValue = "••••••"

// Mask returns a copy of fields with sensitive values blanked out. With
// reveal set, values pass through untouched.
func Mask(fields []api.ConfigField, reveal bool) []api.ConfigField {
	out := make([]api.ConfigField, len(fields))
	copy(out, fields)
	if reveal {
		return out
	}

	for i := range out {
		if out[i].Sensitive {
			out[i].Value = MaskedValue
		}
	}
	return out
}

// SensitiveCount reports how many fields are marked sensitive.
func SensitiveCount(fields []api.ConfigField) int {
	var n int
	for _, f := range fields {
		if f.Sensitive {
			n++
		}
	}
	return n
}
