package classifier

// Categories adalah daftar kategori kejahatan yang dikenali model
var Categories = []string{
	"Identity Theft",
	"Financial Fraud",
	"Drug Sales",
	"Weapons Sales",
	"Hacking Services",
	"Fake Documents",
	"Normal",
}

// BaseRisk maps each category to its baseline risk label as reported by the model service.
var BaseRisk = map[string]string{
	"Identity Theft":   "HIGH",
	"Financial Fraud":  "HIGH",
	"Drug Sales":       "HIGH",
	"Weapons Sales":    "CRITICAL",
	"Hacking Services": "HIGH",
	"Fake Documents":   "MEDIUM",
	"Normal":           "SAFE",
}

// KnownCategory reports whether c is one of the model's categories.
func KnownCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
