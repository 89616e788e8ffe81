package recordings

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
)

// AccessLink is a signed, time-limited download URL for a recording.
type AccessLink struct {
	DownloadLink string `json:"download_link"`
	Expires      int64  `json:"expires"`
}

func (l *AccessLink) ExpiresAt() time.Time {
	return time.Unix(l.Expires, 0)
}

// AccessLinkBuilder builds a GET /recordings/:id/access-link request.
type AccessLinkBuilder struct {
	validForSecs *int64
}

func NewAccessLink() *AccessLinkBuilder {
	return &AccessLinkBuilder{}
}

// ValidForSecs sets how long the link stays valid. The service default is
// one hour.
func (b *AccessLinkBuilder) ValidForSecs(secs int64) *AccessLinkBuilder {
	b.validForSecs = &secs
	return b
}

// ValidFor is ValidForSecs rounded down to whole seconds.
func (b *AccessLinkBuilder) ValidFor(d time.Duration) *AccessLinkBuilder {
	return b.ValidForSecs(int64(d / time.Second))
}

func (b *AccessLinkBuilder) Get(ctx context.Context, d daily.Doer, id uuid.UUID) (*AccessLink, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	q := url.Values{}
	if b.validForSecs != nil {
		if *b.validForSecs < 0 {
			return nil, errors.Newf(daily.ErrValidation, "valid_for_secs must be non-negative, got %d", *b.validForSecs)
		}
		q.Set("valid_for_secs", strconv.FormatInt(*b.validForSecs, 10))
	}

	var link AccessLink
	err := d.Do(ctx, daily.Request{
		Method: http.MethodGet,
		Path:   recordingPath(id) + "/access-link",
		Query:  q,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}
