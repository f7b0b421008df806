// Package report renders the interview integrity report delivered through a
// WhatsApp deep link. Rendering is a pure function of its inputs and a fixed
// "now": identical inputs produce byte-identical output.
package report

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/proctorai/backend/internal/models"
)

const (
	// DefaultPhoneNumber is the fixed deep-link destination.
	DefaultPhoneNumber = "918092970688"

	// defaultScore is used when a report request carries no score. The
	// lifecycle handler defaults to 100; the two defaults are intentionally
	// independent because the report path is invoked on its own.
	defaultScore = 85

	defaultName  = "Demo Candidate"
	defaultEmail = "demo@example.com"

	timeLayout     = "3:04:05 PM"
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
)

// Stats are the session figures a report is rendered from. Zero values take
// defaults; timeline strings are used verbatim when supplied and derived
// from now and the duration otherwise.
type Stats struct {
	CandidateName     string
	CandidateEmail    string
	CandidatePhone    string
	CandidateLocation string
	IntegrityScore    int
	Duration          int64 // seconds
	TotalEvents       int
	FocusLostCount    int
	SuspiciousCount   int
	StartTime         string
	EndTime           string
}

// Percentages returns the focus-lost and suspicious shares of the total
// event count, rounded to whole percent. Both are 0 when no events were
// recorded.
func Percentages(totalEvents, focusLost, suspicious int) (focusPct, suspiciousPct int) {
	if totalEvents <= 0 {
		return 0, 0
	}
	focusPct = int(math.Round(float64(focusLost) / float64(totalEvents) * 100))
	suspiciousPct = int(math.Round(float64(suspicious) / float64(totalEvents) * 100))
	return focusPct, suspiciousPct
}

func severitySymbol(severity string) string {
	switch severity {
	case models.SeverityCritical:
		return "🚨"
	case models.SeverityHigh:
		return "⚠️"
	case models.SeverityMedium:
		return "🔶"
	default:
		return "ℹ️"
	}
}

// Build renders the full report text. The integrity tier and recommendation
// bands are cumulative: a score of 95 prints the excellent, good and fair
// lines, matching the literal threshold checks the report has always used.
func Build(stats Stats, events []models.EventLog, now time.Time) string {
	score := stats.IntegrityScore
	if score == 0 {
		score = defaultScore
	}
	name := stats.CandidateName
	if name == "" {
		name = defaultName
	}
	email := stats.CandidateEmail
	if email == "" {
		email = defaultEmail
	}
	phone := stats.CandidatePhone
	if phone == "" {
		phone = "Not provided"
	}
	location := stats.CandidateLocation
	if location == "" {
		location = "Not provided"
	}
	startTime := stats.StartTime
	if startTime == "" {
		startTime = now.Add(-time.Duration(stats.Duration) * time.Second).Format(dateTimeLayout)
	}
	endTime := stats.EndTime
	if endTime == "" {
		endTime = now.Format(dateTimeLayout)
	}

	focusPct, suspiciousPct := Percentages(stats.TotalEvents, stats.FocusLostCount, stats.SuspiciousCount)

	var b strings.Builder
	b.WriteString("🎯 *PROCTORAI INTERVIEW REPORT*\n\n")

	b.WriteString("📝 *CANDIDATE INFORMATION:*\n")
	fmt.Fprintf(&b, "👤 *Name:* %s\n", name)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", email)
	fmt.Fprintf(&b, "📱 *Phone:* %s\n", phone)
	fmt.Fprintf(&b, "📍 *Location:* %s\n\n", location)

	b.WriteString("⏰ *INTERVIEW TIMELINE:*\n")
	fmt.Fprintf(&b, "🟢 *Start Time:* %s\n", startTime)
	fmt.Fprintf(&b, "🔴 *End Time:* %s\n", endTime)
	fmt.Fprintf(&b, "⏱️ *Duration:* %dm %ds\n\n", stats.Duration/60, stats.Duration%60)

	b.WriteString("📊 *INTEGRITY ANALYSIS:*\n")
	fmt.Fprintf(&b, "🎯 *Final Score:* %d/100\n", score)
	if score >= 90 {
		b.WriteString("✅ EXCELLENT - No significant violations\n")
	}
	if score >= 70 {
		b.WriteString("⚠️ GOOD - Minor issues detected\n")
	}
	if score >= 50 {
		b.WriteString("🔶 FAIR - Multiple violations observed\n")
	} else {
		b.WriteString("❌ POOR - Significant integrity concerns\n")
	}
	b.WriteString("\n")

	b.WriteString("📈 *DETAILED STATISTICS:*\n")
	fmt.Fprintf(&b, "• Total Events Monitored: %d\n", stats.TotalEvents)
	fmt.Fprintf(&b, "• Focus Lost Incidents: %d (%d%%)\n", stats.FocusLostCount, focusPct)
	fmt.Fprintf(&b, "• Suspicious Activities: %d (%d%%)\n", stats.SuspiciousCount, suspiciousPct)
	fmt.Fprintf(&b, "• Face Detection Events: %d\n", int(float64(stats.TotalEvents)*0.4))
	fmt.Fprintf(&b, "• Object Detection Events: %d\n", int(float64(stats.TotalEvents)*0.3))
	fmt.Fprintf(&b, "• Audio Analysis Events: %d\n", int(float64(stats.TotalEvents)*0.2))

	if len(events) > 0 {
		b.WriteString("\n📋 *DETAILED EVENT LOG:*\n")
		for _, ev := range events {
			ts := ev.Timestamp
			if ts.IsZero() {
				ts = now
			}
			eventType := ev.EventType
			if eventType == "" {
				eventType = "Event"
			}
			description := ev.Description
			if description == "" {
				description = "No description"
			}
			fmt.Fprintf(&b, "%s [%s] %s - %s\n",
				severitySymbol(ev.Severity), ts.Format(timeLayout), eventType, description)
		}
	}
	b.WriteString("\n")

	b.WriteString("🔍 *SECURITY ANALYSIS:*\n")
	switch {
	case stats.FocusLostCount > 5:
		b.WriteString("🚨 HIGH: Multiple focus loss incidents detected\n")
	case stats.FocusLostCount > 2:
		b.WriteString("⚠️ MEDIUM: Some focus issues observed\n")
	default:
		b.WriteString("✅ LOW: Good focus maintained\n")
	}
	switch {
	case stats.SuspiciousCount > 3:
		b.WriteString("🚨 HIGH: Multiple suspicious activities flagged\n")
	case stats.SuspiciousCount > 1:
		b.WriteString("⚠️ MEDIUM: Some suspicious activities detected\n")
	default:
		b.WriteString("✅ LOW: No significant suspicious activities\n")
	}
	b.WriteString("\n")

	b.WriteString("💡 *RECOMMENDATION:*\n")
	if score >= 90 {
		b.WriteString("✅ APPROVED: Candidate performed excellently, no concerns\n")
	}
	if score >= 70 {
		b.WriteString("⚠️ REVIEW: Standard review recommended, minor issues noted\n")
	}
	if score >= 50 {
		b.WriteString("🔶 INVESTIGATION: Manual review required, multiple violations detected\n")
	} else {
		b.WriteString("❌ REJECTION: Significant integrity concerns, immediate follow-up needed\n")
	}
	b.WriteString("\n")

	b.WriteString("📋 *TECHNICAL DETAILS:*\n")
	b.WriteString("🤖 AI Detection: MediaPipe + TensorFlow.js\n")
	if stats.Duration > 0 {
		b.WriteString("📹 Video Recording: Completed\n")
	} else {
		b.WriteString("📹 Video Recording: Failed\n")
	}
	b.WriteString("🎤 Audio Monitoring: Active\n")
	b.WriteString("🔒 Security Level: High\n\n")

	b.WriteString("---\n")
	b.WriteString("🤖 Generated by ProctorAI System v1.0\n")
	fmt.Fprintf(&b, "📅 Report Generated: %s\n", now.Format(dateTimeLayout))
	b.WriteString("🔗 System: http://localhost:5000/")

	return b.String()
}

// DeepLink builds the WhatsApp web URL carrying the percent-encoded report
// text to the fixed destination number.
func DeepLink(text string) string {
	q := url.Values{}
	q.Set("phone", DefaultPhoneNumber)
	q.Set("text", text)
	return "https://web.whatsapp.com/send?" + q.Encode()
}
