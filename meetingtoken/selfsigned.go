package meetingtoken

import "time"

// SelfSigned is a decoded self-signed token.
type SelfSigned struct {
	DomainID string
	Claims   *Claims
}

func timeFromUnix(unix int64) time.Time {
	return time.Unix(unix, 0)
}
