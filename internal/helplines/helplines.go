// Package helplines is the static crisis-support directory shown by the
// helplines command, the dashboard and crisis chat replies.
package helplines

import (
	"fmt"
	"strings"
)

type Helpline struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
}

// Available24x7 reports whether the line is staffed around the clock.
func (h Helpline) Available24x7() bool {
	return h.Hours == "24/7"
}

var directory = []Helpline{
	{Name: "National Suicide Prevention Helpline", Number: "9152987821", Hours: "24/7", Description: "Immediate crisis support and suicide prevention"},
	{Name: "Vandrevala Foundation", Number: "9999666555", Hours: "24/7", Description: "Mental health support and counseling"},
	{Name: "AASRA", Number: "9820466726", Hours: "24/7", Description: "Emotional support and crisis intervention"},
	{Name: "Sneha India", Number: "044-24640050", Hours: "24/7", Description: "Suicide prevention and emotional support"},
	{Name: "iCall Tata Institute", Number: "9152987821", Hours: "10 AM - 8 PM (Mon-Sat)", Description: "Professional counseling support"},
	{Name: "Sumaitri", Number: "011-23389090", Hours: "2 PM - 10 PM", Description: "Delhi-based emotional support"},
}

var emergencyTips = []string{
	"If you're having thoughts of self-harm, reach out immediately",
	"You are not alone - crisis support is available 24/7",
	"It's okay to ask for help - seeking support shows strength",
	"Your feelings are valid and temporary - this will pass",
	"Emergency services: Call 100 (Police) or 102 (Ambulance)",
}

// All returns a copy of the directory in display order.
func All() []Helpline {
	out := make([]Helpline, len(directory))
	copy(out, directory)
	return out
}

// AroundTheClock returns only the lines staffed 24/7.
func AroundTheClock() []Helpline {
	var out []Helpline
	for _, h := range directory {
		if h.Available24x7() {
			out = append(out, h)
		}
	}
	return out
}

// EmergencyTips returns a copy of the emergency guidance lines.
func EmergencyTips() []string {
	out := make([]string, len(emergencyTips))
	copy(out, emergencyTips)
	return out
}

// Format renders lines as a plain-text list suitable for the terminal or a chat reply.
func Format(lines []Helpline) string {
	var b strings.Builder
	for _, h := range lines {
		fmt.Fprintf(&b, "- %s: %s (%s) - %s\n", h.Name, h.Number, h.Hours, h.Description)
	}
	return b.String()
}
