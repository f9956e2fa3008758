package intel

import "regexp"

// SuspiciousKeywords per kategori, dipakai untuk highlight dan evidence
var SuspiciousKeywords = map[string][]string{
	"Identity Theft": {
		"fullz", "ssn", "dob", "dox", "doxxing", "identity", "personal info",
		"credit report", "bank account", "social security", "drivers license",
	},
	"Financial Fraud": {
		"cc", "cvv", "dumps", "carding", "bank drops", "cashout", "wire transfer",
		"paypal", "bitcoin", "btc", "escrow", "fresh", "valid", "balance",
	},
	"Drug Sales": {
		"mdma", "cocaine", "heroin", "fentanyl", "pills", "bulk", "grams",
		"ounce", "shipping", "stealth", "vendor", "domestic", "international",
	},
	"Weapons Sales": {
		"firearm", "gun", "pistol", "rifle", "ammo", "ammunition", "untraceable",
		"ghost gun", "silencer", "suppressor", "automatic", "semi-auto",
	},
	"Hacking Services": {
		"ddos", "botnet", "rat", "exploit", "0day", "zero-day", "ransomware",
		"malware", "phishing", "cracking", "bruteforce", "root", "shell",
	},
	"Fake Documents": {
		"passport", "license", "id card", "diploma", "certificate", "forgery",
		"fake", "counterfeit", "replica", "scan", "template", "hologram",
	},
}

// CategorySeverity weights on a 1-10 scale.
var CategorySeverity = map[string]int{
	"Weapons Sales":    10,
	"Identity Theft":   9,
	"Hacking Services": 8,
	"Financial Fraud":  8,
	"Drug Sales":       7,
	"Fake Documents":   6,
	"Normal":           1,
}

// HighValueIndicators carry score multipliers for immediate attention.
var HighValueIndicators = map[string]float64{
	"bulk":        1.5,
	"wholesale":   1.5,
	"escrow":      1.3,
	"verified":    1.2,
	"fresh":       1.4,
	"valid":       1.3,
	"automatic":   1.5,
	"fentanyl":    2.0,
	"ransomware":  1.8,
	"0day":        2.0,
	"zero-day":    2.0,
	"fullz":       1.6,
	"botnet":      1.7,
	"ddos":        1.5,
	"ghost gun":   2.0,
	"untraceable": 1.8,
}

// contactPatterns match vendor contact handles in advert text.
var contactPatterns = map[string]*regexp.Regexp{
	"telegram": regexp.MustCompile(`@[\w]+|t\.me/[\w]+`),
	"wickr":    regexp.MustCompile(`wickr[:\s]+[\w]+`),
	"session":  regexp.MustCompile(`session[:\s]+[\w]+`),
	"jabber":   regexp.MustCompile(`[\w]+@[\w]+\.[\w]+`),
	"email":    regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`),
	"onion":    regexp.MustCompile(`[\w]+\.onion`),
}
