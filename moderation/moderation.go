// Package moderation decides whether a candidate message body may be
// appended to a conversation. The platform mediates all tenant/landlord
// contact, so messages that try to move the exchange off-platform (phone
// numbers, email addresses) are rejected before they enter a thread.
package moderation

import "regexp"

// ReasonContactInfo is the rejection reason for messages that look like
// an attempt to exchange contact information.
const ReasonContactInfo = "contact-info"

// Result is the verdict for one message body. Reason is set only when
// Allowed is false.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Policy classifies an outgoing message body. Implementations must be
// pure: no side effects, same input always yields the same verdict.
// Callers hold a Policy so the heuristic can be swapped for a stricter
// classifier without touching them.
type Policy interface {
	Evaluate(text string) Result
}

var (
	// A run of 10+ consecutive digits covers most phone number formats
	// that survive stripping of separators.
	digitRun = regexp.MustCompile(`[0-9]{10,}`)
	// Email-shaped token: word chars, "@", word chars, ".", word chars.
	emailToken = regexp.MustCompile(`\w+@\w+\.\w+`)
)

// ContactLeakPolicy is the default moderation policy: a single-pass
// heuristic. It over-blocks long order numbers and under-blocks
// spelled-out or spaced-out contact details; both are accepted
// imprecision, inherited platform policy rather than bugs to fix here.
type ContactLeakPolicy struct{}

// Evaluate classifies text. Either a long digit run or an email-shaped
// token triggers rejection.
func (ContactLeakPolicy) Evaluate(text string) Result {
	if digitRun.MatchString(text) || emailToken.MatchString(text) {
		return Result{Allowed: false, Reason: ReasonContactInfo}
	}
	return Result{Allowed: true}
}
