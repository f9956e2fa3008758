package intel

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// ReportClassification levels.
type ReportClassification string

const (
	ClassificationRestricted   ReportClassification = "RESTRICTED"
	ClassificationConfidential ReportClassification = "CONFIDENTIAL"
)

// ReportStatus enum
type ReportStatus string

const (
	StatusDraft         ReportStatus = "DRAFT"
	StatusPendingReview ReportStatus = "PENDING_REVIEW"
)

const (
	maxEvidenceItems   = 10
	maxSuggestedAction = 8
	contentPreviewLen  = 200
	contentSampleLen   = 500
)

// Evidence is one indicator extracted from the analyzed content.
type Evidence struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // keyword | contact | indicator
	Value     string `json:"value"`
	Context   string `json:"context"`
	Relevance string `json:"relevance"` // HIGH | MEDIUM
}

// Report is a police-style case file generated from a classification result.
type Report struct {
	ReportID       string               `json:"report_id"`
	CaseNumber     string               `json:"case_number"`
	ReportDate     time.Time            `json:"report_date"`
	Classification ReportClassification `json:"classification"`
	Status         ReportStatus         `json:"status"`
	AnalystID      string               `json:"analyst_id"`

	ExecutiveSummary string `json:"executive_summary"`
	ThreatAssessment string `json:"threat_assessment"`

	ContentPreview string `json:"content_preview"`
	ContentHash    string `json:"content_hash"`
	ContentSource  string `json:"content_source"`
	originalText   string

	PrimaryCategory     string   `json:"primary_category"`
	CategoryConfidence  float64  `json:"category_confidence"`
	SecondaryCategories []string `json:"secondary_categories"`
	RiskLevel           string   `json:"risk_level"`

	KeyIndicators      []Evidence `json:"key_indicators"`
	SupportingEvidence []Evidence `json:"supporting_evidence"`

	LikelyActivity       string   `json:"likely_activity"`
	ModusOperandi        string   `json:"modus_operandi"`
	ActorProfile         string   `json:"actor_profile"`
	GeographicIndicators []string `json:"geographic_indicators"`

	SuggestedActions []string `json:"suggested_actions"`
	ResponseTimeline string   `json:"response_timeline"`
}

// ReportInput bundles everything the generator needs.
type ReportInput struct {
	Text       string
	Category   string
	Confidence float64
	RiskLevel  string
	Keywords   []string
	Source     string
}

type activityProfile struct {
	likelyActivity string
	modusOperandi  string
	actorProfile   string
}

var activityProfiles = map[string]activityProfile{
	"Identity Theft": {
		likelyActivity: "Sale or distribution of stolen personal identification information",
		modusOperandi:  "Actor appears to be offering stolen personal data packages ('fullz') typically including SSN, DOB, name and financial information, likely obtained through phishing, breaches or insider access.",
		actorProfile:   "Likely a data broker or identity theft network member with access to compromised personal databases.",
	},
	"Financial Fraud": {
		likelyActivity: "Credit card fraud, payment card data trafficking, or financial scams",
		modusOperandi:  "Actor advertises compromised financial instruments including card data (dumps/CVV), bank account access or cashout services.",
		actorProfile:   "Likely associated with an organized financial crime network with card skimming or database access capability.",
	},
	"Drug Sales": {
		likelyActivity: "Illicit narcotics trafficking through dark web marketplace",
		modusOperandi:  "Vendor offers controlled substances with shipping options, stealth packaging and cryptocurrency payment.",
		actorProfile:   "Dark web drug vendor with an established distribution network.",
	},
	"Weapons Sales": {
		likelyActivity: "Illegal firearms or weapons trafficking",
		modusOperandi:  "Actor offers weapons outside legal channels, possibly including untraceable firearms, ammunition or modification services.",
		actorProfile:   "HIGH PRIORITY: Weapons trafficker with access to illegal arms. Requires immediate law enforcement coordination.",
	},
	"Hacking Services": {
		likelyActivity: "Cybercrime-as-a-service offerings",
		modusOperandi:  "Actor provides hacking tools, malware or attack services such as DDoS, RATs, exploit kits or breach services.",
		actorProfile:   "Technical threat actor with offensive cyber capabilities, possibly part of a hacking group.",
	},
	"Fake Documents": {
		likelyActivity: "Fraudulent document production and distribution",
		modusOperandi:  "Actor creates or distributes counterfeit identity documents including passports, IDs, diplomas or certificates.",
		actorProfile:   "Document forger with the technical capability to produce convincing fraudulent documents.",
	},
	"Normal": {
		likelyActivity: "No clearly identified criminal activity",
		modusOperandi:  "Content does not exhibit strong indicators of illegal activity.",
		actorProfile:   "Unidentified - no clear criminal profile established.",
	},
}

var caseCodes = map[string]string{
	"Identity Theft":   "IDT",
	"Financial Fraud":  "FFR",
	"Drug Sales":       "NAR",
	"Weapons Sales":    "WPN",
	"Hacking Services": "CYB",
	"Fake Documents":   "DOC",
	"Normal":           "GEN",
}

var geoPatterns = map[string][]*regexp.Regexp{
	"US":         {regexp.MustCompile(`\$`), regexp.MustCompile(`(?i)USA`), regexp.MustCompile(`(?i)domestic US`), regexp.MustCompile(`(?i)USPS`)},
	"EU":         {regexp.MustCompile(`€`), regexp.MustCompile(`(?i)EUR`), regexp.MustCompile(`(?i)Europe`), regexp.MustCompile(`(?i)\bUK\b`)},
	"Russia/CIS": {regexp.MustCompile(`(?i)\bRussia\b`), regexp.MustCompile(`₽`)},
	"China":      {regexp.MustCompile(`(?i)\bChina\b`), regexp.MustCompile(`¥`), regexp.MustCompile(`(?i)Alipay`)},
	"Global":     {regexp.MustCompile(`(?i)worldwide`), regexp.MustCompile(`(?i)international`), regexp.MustCompile(`(?i)WW ship`)},
}

var highRelevanceKeywords = map[string]struct{}{
	"fullz": {}, "cvv": {}, "ssn": {}, "ransomware": {}, "0day": {},
	"fentanyl": {}, "automatic": {}, "ghost gun": {},
}

var paymentPatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`\$[\d,]+`), "USD pricing"},
	{regexp.MustCompile(`[\d.]+\s*btc`), "Bitcoin payment"},
	{regexp.MustCompile(`[\d.]+\s*xmr`), "Monero payment"},
	{regexp.MustCompile(`crypto\s*only`), "Cryptocurrency restriction"},
	{regexp.MustCompile(`escrow`), "Escrow service"},
}

// ReportGenerator turns classification output into analyst-ready case files.
// Safe for concurrent use.
type ReportGenerator struct {
	mu        sync.Mutex
	analystID string
	sequence  int
}

func NewReportGenerator(analystID string) *ReportGenerator {
	if analystID == "" {
		analystID = "AI-SYSTEM"
	}
	return &ReportGenerator{analystID: analystID}
}

// Generate builds a complete intelligence report.
func (g *ReportGenerator) Generate(in ReportInput, now time.Time) *Report {
	g.mu.Lock()
	g.sequence++
	seq := g.sequence
	g.mu.Unlock()

	key, supporting := extractEvidence(in.Text, in.Keywords)
	profile, ok := activityProfiles[in.Category]
	if !ok {
		profile = activityProfiles["Normal"]
	}

	classification := ClassificationRestricted
	if in.RiskLevel == "CRITICAL" {
		classification = ClassificationConfidential
	}
	status := StatusDraft
	if in.RiskLevel == "CRITICAL" || in.RiskLevel == "HIGH" {
		status = StatusPendingReview
	}

	source := in.Source
	if source == "" {
		source = "Dark Web Monitoring"
	}

	sum := sha256.Sum256([]byte(in.Text))

	return &Report{
		ReportID:             fmt.Sprintf("IR-%s-%04d", now.UTC().Format("20060102150405"), seq),
		CaseNumber:           fmt.Sprintf("CASE-%s-%s-%03d", caseCode(in.Category), now.UTC().Format("20060102"), seq),
		ReportDate:           now,
		Classification:       classification,
		Status:               status,
		AnalystID:            g.analystID,
		ExecutiveSummary:     executiveSummary(in, key, profile),
		ThreatAssessment:     threatAssessment(in.Category, in.RiskLevel, key),
		ContentPreview:       clip(in.Text, contentPreviewLen),
		ContentHash:          fmt.Sprintf("%x", sum)[:16],
		ContentSource:        source,
		originalText:         in.Text,
		PrimaryCategory:      in.Category,
		CategoryConfidence:   in.Confidence,
		SecondaryCategories:  secondaryCategories(in.Text, in.Category),
		RiskLevel:            in.RiskLevel,
		KeyIndicators:        key,
		SupportingEvidence:   supporting,
		LikelyActivity:       profile.likelyActivity,
		ModusOperandi:        profile.modusOperandi,
		ActorProfile:         profile.actorProfile,
		GeographicIndicators: geographicIndicators(in.Text),
		SuggestedActions:     suggestedActions(in.Category, in.RiskLevel, key),
		ResponseTimeline:     responseTimeline(in.RiskLevel),
	}
}

func caseCode(category string) string {
	if code, ok := caseCodes[category]; ok {
		return code
	}
	return "UNK"
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func extractEvidence(text string, keywords []string) (key, supporting []Evidence) {
	lower := strings.ToLower(text)
	counter := 0

	for _, kw := range keywords {
		counter++
		context := "Keyword detected: " + kw
		if idx := strings.Index(lower, strings.ToLower(kw)); idx >= 0 {
			start := idx - 30
			if start < 0 {
				start = 0
			}
			end := idx + len(kw) + 30
			if end > len(text) {
				end = len(text)
			}
			context = text[start:end]
		}
		ev := Evidence{
			ID:        fmt.Sprintf("EV-%03d", counter),
			Type:      "keyword",
			Value:     kw,
			Context:   context,
			Relevance: "MEDIUM",
		}
		if _, hi := highRelevanceKeywords[strings.ToLower(kw)]; hi {
			ev.Relevance = "HIGH"
			key = append(key, ev)
		} else {
			supporting = append(supporting, ev)
		}
	}

	types := make([]string, 0, len(contactPatterns))
	for t := range contactPatterns {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, contactType := range types {
		for _, match := range contactPatterns[contactType].FindAllString(lower, -1) {
			counter++
			key = append(key, Evidence{
				ID:        fmt.Sprintf("EV-%03d", counter),
				Type:      "contact",
				Value:     match,
				Context:   strings.ToUpper(contactType[:1]) + contactType[1:] + " contact method detected",
				Relevance: "HIGH",
			})
		}
	}

	for _, pp := range paymentPatterns {
		for _, match := range pp.re.FindAllString(lower, -1) {
			counter++
			supporting = append(supporting, Evidence{
				ID:        fmt.Sprintf("EV-%03d", counter),
				Type:      "indicator",
				Value:     match,
				Context:   pp.desc,
				Relevance: "MEDIUM",
			})
		}
	}

	if len(key) > maxEvidenceItems {
		key = key[:maxEvidenceItems]
	}
	if len(supporting) > maxEvidenceItems {
		supporting = supporting[:maxEvidenceItems]
	}
	return key, supporting
}

func geographicIndicators(text string) []string {
	var found []string
	for region, patterns := range geoPatterns {
		for _, re := range patterns {
			if re.MatchString(text) {
				found = append(found, region)
				break
			}
		}
	}
	if len(found) == 0 {
		return []string{"Unspecified"}
	}
	sort.Strings(found)
	return found
}

func secondaryCategories(text, primary string) []string {
	lower := strings.ToLower(text)
	var out []string
	cats := make([]string, 0, len(SuspiciousKeywords))
	for cat := range SuspiciousKeywords {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		if cat == primary {
			continue
		}
		for _, kw := range SuspiciousKeywords[cat] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, cat)
				break
			}
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func executiveSummary(in ReportInput, key []Evidence, profile activityProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This content has been classified as %s with %.0f%% confidence. Risk assessment: %s. ",
		in.Category, in.Confidence*100, in.RiskLevel)
	if len(key) > 0 {
		vals := make([]string, 0, 5)
		for i, e := range key {
			if i == 5 {
				break
			}
			vals = append(vals, e.Value)
		}
		fmt.Fprintf(&b, "Key indicators include: %s. ", strings.Join(vals, ", "))
	}
	if profile.likelyActivity != "" {
		fmt.Fprintf(&b, "The content likely advertises %s.", strings.ToLower(profile.likelyActivity[:1])+profile.likelyActivity[1:])
	}
	return b.String()
}

func threatAssessment(category, riskLevel string, key []Evidence) string {
	assessments := map[string]string{
		"CRITICAL": "CRITICAL THREAT: This content represents an immediate and serious threat requiring urgent action. The combination of category, confidence level and identified indicators suggests active criminal operation.",
		"HIGH":     "HIGH THREAT: This content exhibits strong indicators of illegal activity. Priority investigation recommended.",
		"MEDIUM":   "MODERATE THREAT: Content contains indicators of potential illegal activity. Further investigation warranted.",
		"LOW":      "LOW THREAT: Limited indicators of illegal activity detected. May warrant monitoring but does not require immediate action.",
		"SAFE":     "MINIMAL THREAT: No significant indicators of criminal activity detected. Standard processing appropriate.",
	}
	base, ok := assessments[riskLevel]
	if !ok {
		base = assessments["LOW"]
	}

	if category == "Weapons Sales" {
		base += " NOTE: Weapons-related content should be treated as priority regardless of confidence."
	} else if category == "Hacking Services" {
		for _, e := range key {
			if strings.Contains(e.Value, "0day") || strings.Contains(e.Value, "ransomware") {
				base += " NOTE: Advanced threat indicators detected - potential APT activity."
				break
			}
		}
	}
	return base
}

var riskActions = map[string][]string{
	"Identity Theft": {
		"Check stolen data against known breach databases",
		"Alert identity theft task force if scale indicates bulk operation",
	},
	"Financial Fraud": {
		"Cross-reference with financial institution fraud alerts",
		"Check for associated money mule recruitment",
	},
	"Drug Sales": {
		"Check vendor reputation in known marketplace databases",
		"Monitor for shipping pattern indicators",
	},
	"Weapons Sales": {
		"PRIORITY: Coordinate with ATF liaison",
		"Check for connections to known weapons trafficking networks",
	},
	"Hacking Services": {
		"Assess potential targets in critical infrastructure",
		"Check for connections to known threat actors",
	},
	"Fake Documents": {
		"Identify document types and issuing jurisdictions",
		"Alert relevant immigration/document fraud units",
	},
}

func suggestedActions(category, riskLevel string, key []Evidence) []string {
	actions := []string{"Archive content for evidentiary purposes"}

	switch riskLevel {
	case "CRITICAL":
		actions = append([]string{"IMMEDIATE: Escalate to senior analyst and law enforcement liaison"}, actions...)
		actions = append(actions, "Initiate real-time monitoring of associated identifiers", "Cross-reference with ongoing investigations")
	case "HIGH":
		actions = append(actions, "Schedule priority review within 24 hours", "Check for related activity in intelligence databases")
	case "MEDIUM":
		actions = append(actions, "Add to watchlist for periodic monitoring")
	}

	actions = append(actions, riskActions[category]...)

	for _, e := range key {
		if e.Type == "contact" {
			actions = append(actions, "Monitor identified communication channels for related activity")
			break
		}
	}

	if len(actions) > maxSuggestedAction {
		actions = actions[:maxSuggestedAction]
	}
	return actions
}

func responseTimeline(riskLevel string) string {
	switch riskLevel {
	case "CRITICAL":
		return "Immediate (within 1 hour)"
	case "HIGH":
		return "Urgent (within 24 hours)"
	case "MEDIUM":
		return "Standard (within 72 hours)"
	case "LOW":
		return "Routine (within 1 week)"
	default:
		return "As resources permit"
	}
}

// TextReport renders the report in printable case-file format.
func (g *ReportGenerator) TextReport(r *Report) string {
	sep := strings.Repeat("=", 70)
	var b strings.Builder

	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s%s\n%s\n\n", sep, strings.Repeat(" ", 20), title, sep)
	}

	section("INTELLIGENCE REPORT")
	fmt.Fprintf(&b, "REPORT ID: %s\n", r.ReportID)
	fmt.Fprintf(&b, "CASE NUMBER: %s\n", r.CaseNumber)
	fmt.Fprintf(&b, "DATE: %s\n", r.ReportDate.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "CLASSIFICATION: %s\n", r.Classification)
	fmt.Fprintf(&b, "STATUS: %s\n", r.Status)
	fmt.Fprintf(&b, "ANALYST: %s\n", r.AnalystID)

	section("EXECUTIVE SUMMARY")
	b.WriteString(r.ExecutiveSummary + "\n")

	section("THREAT ASSESSMENT")
	b.WriteString(r.ThreatAssessment + "\n")

	section("CLASSIFICATION RESULTS")
	fmt.Fprintf(&b, "Primary Category: %s\n", r.PrimaryCategory)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", r.CategoryConfidence*100)
	fmt.Fprintf(&b, "Risk Level: %s\n", r.RiskLevel)
	secondary := "None"
	if len(r.SecondaryCategories) > 0 {
		secondary = strings.Join(r.SecondaryCategories, ", ")
	}
	fmt.Fprintf(&b, "Secondary Categories: %s\n", secondary)

	section("KEY INDICATORS")
	if len(r.KeyIndicators) == 0 {
		b.WriteString("No key indicators identified.\n")
	}
	for i, e := range r.KeyIndicators {
		fmt.Fprintf(&b, "%d. [%s] %s: %s\n   Context: %s\n\n", i+1, e.Relevance, strings.ToUpper(e.Type), e.Value, e.Context)
	}

	section("INTELLIGENCE ASSESSMENT")
	fmt.Fprintf(&b, "LIKELY ACTIVITY:\n%s\n\n", r.LikelyActivity)
	fmt.Fprintf(&b, "MODUS OPERANDI:\n%s\n\n", r.ModusOperandi)
	fmt.Fprintf(&b, "ACTOR PROFILE:\n%s\n\n", r.ActorProfile)
	fmt.Fprintf(&b, "GEOGRAPHIC INDICATORS: %s\n", strings.Join(r.GeographicIndicators, ", "))

	section("RECOMMENDED ACTIONS")
	fmt.Fprintf(&b, "Priority Level: %s\n", r.RiskLevel)
	fmt.Fprintf(&b, "Response Timeline: %s\n\nActions:\n", r.ResponseTimeline)
	for i, action := range r.SuggestedActions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
	}

	section("CONTENT SAMPLE")
	fmt.Fprintf(&b, "Source: %s\n", r.ContentSource)
	fmt.Fprintf(&b, "Hash: %s\n\n---\n%s\n---\n", r.ContentHash, clip(r.originalText, contentSampleLen))

	section("END OF REPORT")
	return b.String()
}
