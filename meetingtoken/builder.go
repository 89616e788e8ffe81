package meetingtoken

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/utils"
)

// Builder accumulates claims through chained setters. A Builder is not safe
// for concurrent mutation. Every issuance works on a copy, so one Builder can
// issue many tokens and later edits never touch tokens already issued.
type Builder struct {
	claims      Claims
	clock       clockwork.Clock
	notBeforeIn *time.Duration
	expiresIn   *time.Duration
}

type BuilderOption func(*Builder)

// WithClock sets the clock that resolves relative validity windows.
func WithClock(c clockwork.Clock) BuilderOption {
	return func(b *Builder) { b.clock = c }
}

// New returns a builder with no claims set.
func New(opts ...BuilderOption) *Builder {
	b := &Builder{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromClaims starts a builder from existing claims, copied.
func NewFromClaims(c *Claims, opts ...BuilderOption) *Builder {
	b := New(opts...)
	if c != nil {
		b.claims = *c.Clone()
	}
	return b
}

// RoomName restricts the token to one room. Unset, it is valid for every room
// of the domain.
func (b *Builder) RoomName(name string) *Builder {
	b.claims.RoomName = &name
	return b
}

// EjectAtTokenExp kicks the participant out when the token expires.
func (b *Builder) EjectAtTokenExp(v bool) *Builder {
	b.claims.EjectAtTokenExp = &v
	return b
}

// EjectAfterElapsed kicks the participant out this many seconds after joining.
func (b *Builder) EjectAfterElapsed(seconds int64) *Builder {
	b.claims.EjectAfterElapsed = &seconds
	return b
}

// NotBefore sets nbf as a unix timestamp in seconds.
func (b *Builder) NotBefore(unix int64) *Builder {
	b.claims.NotBefore = &unix
	b.notBeforeIn = nil
	return b
}

func (b *Builder) NotBeforeAt(t time.Time) *Builder {
	return b.NotBefore(t.Unix())
}

// NotBeforeIn sets nbf relative to the moment of issuance.
func (b *Builder) NotBeforeIn(d time.Duration) *Builder {
	b.claims.NotBefore = nil
	b.notBeforeIn = &d
	return b
}

// Expiry sets exp as a unix timestamp in seconds.
func (b *Builder) Expiry(unix int64) *Builder {
	b.claims.Expiry = &unix
	b.expiresIn = nil
	return b
}

func (b *Builder) ExpiresAt(t time.Time) *Builder {
	return b.Expiry(t.Unix())
}

// ExpiresIn sets exp relative to the moment of issuance.
func (b *Builder) ExpiresIn(d time.Duration) *Builder {
	b.claims.Expiry = nil
	b.expiresIn = &d
	return b
}

// ValidFor sets nbf to the moment of issuance and exp d later.
func (b *Builder) ValidFor(d time.Duration) *Builder {
	return b.NotBeforeIn(0).ExpiresIn(d)
}

func (b *Builder) IsOwner(v bool) *Builder {
	b.claims.IsOwner = &v
	return b
}

func (b *Builder) UserName(name string) *Builder {
	b.claims.UserName = &name
	return b
}

func (b *Builder) UserID(id string) *Builder {
	b.claims.UserID = &id
	return b
}

func (b *Builder) EnableScreenshare(v bool) *Builder {
	b.claims.EnableScreenshare = &v
	return b
}

func (b *Builder) StartVideoOff(v bool) *Builder {
	b.claims.StartVideoOff = &v
	return b
}

func (b *Builder) StartAudioOff(v bool) *Builder {
	b.claims.StartAudioOff = &v
	return b
}

func (b *Builder) EnableRecording(t daily.RecordingType) *Builder {
	b.claims.EnableRecording = &t
	return b
}

func (b *Builder) EnablePrejoinUI(v bool) *Builder {
	b.claims.EnablePrejoinUI = &v
	return b
}

func (b *Builder) EnableTerseLogging(v bool) *Builder {
	b.claims.EnableTerseLogging = &v
	return b
}

// StartCloudRecording starts a cloud recording when the participant joins.
func (b *Builder) StartCloudRecording(v bool) *Builder {
	b.claims.StartCloudRecording = &v
	return b
}

func (b *Builder) CloseTabOnExit(v bool) *Builder {
	b.claims.CloseTabOnExit = &v
	return b
}

// RedirectOnMeetingExit must be an absolute URL.
func (b *Builder) RedirectOnMeetingExit(url string) *Builder {
	b.claims.RedirectOnMeetingExit = &url
	return b
}

func (b *Builder) Lang(l daily.Lang) *Builder {
	b.claims.Lang = &l
	return b
}

// Claims resolves relative validity windows against one clock reading,
// validates, and returns an independent copy.
func (b *Builder) Claims() (*Claims, error) {
	c := b.claims.Clone()
	if b.notBeforeIn != nil || b.expiresIn != nil {
		now := b.clock.Now()
		if b.notBeforeIn != nil {
			c.NotBefore = utils.Ptr(now.Add(*b.notBeforeIn).Unix())
		}
		if b.expiresIn != nil {
			c.Expiry = utils.Ptr(now.Add(*b.expiresIn).Unix())
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Create asks the service to issue a token for the current claims.
func (b *Builder) Create(ctx context.Context, d daily.Doer) (string, error) {
	c, err := b.Claims()
	if err != nil {
		return "", err
	}
	return Create(ctx, d, c)
}

type createRequest struct {
	Properties *Claims `json:"properties"`
}

type createResponse struct {
	Token string `json:"token"`
}

// Create issues a token for c via POST /meeting-tokens. Only set claims are sent.
func Create(ctx context.Context, d daily.Doer, c *Claims) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var resp createResponse
	err := d.Do(ctx, daily.Request{
		Method: http.MethodPost,
		Path:   "/meeting-tokens",
		Body:   createRequest{Properties: c},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New(daily.ErrTransport, "meeting token missing from response")
	}
	return resp.Token, nil
}
