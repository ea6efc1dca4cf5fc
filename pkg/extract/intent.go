package extract

import "regexp"

// Intent is the classified disposition of a message. The regex path always
// runs so the conversation can progress even when the text generator is
// down or returns unparseable output; any generator-provided signal is
// OR-merged on top via Merge.
type Intent struct {
	Agreement     bool `json:"is_agreement"`
	Rejection     bool `json:"is_rejection"`
	WantsMoreInfo bool `json:"wants_more_info"`
}

var (
	agreementRe = regexp.MustCompile(`(?i)\b(yes|yeah|yep|sure|okay|ok|fine|proceed|confirm|accept|agree|let'?s go|let'?s do|go ahead|sounds? good|perfect|great)\b`)
	rejectionRe = regexp.MustCompile(`(?i)\b(no|nope|not interested|maybe later|reject|decline|cancel)\b`)
	moreInfoRe  = regexp.MustCompile(`(?i)\b(tell me more|explain|what about|how|why|details|information|confused)\b`)
)

// DetectIntent classifies the message with the ordered keyword rules.
func DetectIntent(text string) Intent {
	return Intent{
		Agreement:     agreementRe.MatchString(text),
		Rejection:     rejectionRe.MatchString(text),
		WantsMoreInfo: moreInfoRe.MatchString(text),
	}
}

// Merge ORs a secondary signal (typically from the generator's constrained
// intent prompt) into the deterministic result.
func (i Intent) Merge(other Intent) Intent {
	return Intent{
		Agreement:     i.Agreement || other.Agreement,
		Rejection:     i.Rejection || other.Rejection,
		WantsMoreInfo: i.WantsMoreInfo || other.WantsMoreInfo,
	}
}
