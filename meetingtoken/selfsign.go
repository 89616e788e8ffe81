//go:build !daily_noselfsign

package meetingtoken

import (
	"github.com/golang-jwt/jwt/v5"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
)

// SelfSignSupported reports whether local signing is compiled in. Build with
// the daily_noselfsign tag to leave it out.
const SelfSignSupported = true

// payload is the self-signed JWT body. Claim names are the compact ones the
// service verifier expects; "d" carries the domain id. There is no iat, so
// equal inputs always produce byte-identical tokens.
type payload struct {
	DomainID              string               `json:"d"`
	RoomName              *string              `json:"r,omitempty"`
	EjectAtTokenExp       *bool                `json:"ejt,omitempty"`
	EjectAfterElapsed     *int64               `json:"eje,omitempty"`
	NotBefore             *int64               `json:"nbf,omitempty"`
	Expiry                *int64               `json:"exp,omitempty"`
	IsOwner               *bool                `json:"o,omitempty"`
	UserName              *string              `json:"u,omitempty"`
	UserID                *string              `json:"ud,omitempty"`
	EnableScreenshare     *bool                `json:"ss,omitempty"`
	StartVideoOff         *bool                `json:"vo,omitempty"`
	StartAudioOff         *bool                `json:"ao,omitempty"`
	EnableRecording       *daily.RecordingType `json:"er,omitempty"`
	EnablePrejoinUI       *bool                `json:"enable_prejoin_ui,omitempty"`
	EnableTerseLogging    *bool                `json:"enable_terse_logging,omitempty"`
	StartCloudRecording   *bool                `json:"sr,omitempty"`
	CloseTabOnExit        *bool                `json:"ctoe,omitempty"`
	RedirectOnMeetingExit *string              `json:"rome,omitempty"`
	Lang                  *daily.Lang          `json:"uil,omitempty"`
}

func newPayload(domainID string, c *Claims) *payload {
	return &payload{
		DomainID:              domainID,
		RoomName:              c.RoomName,
		EjectAtTokenExp:       c.EjectAtTokenExp,
		EjectAfterElapsed:     c.EjectAfterElapsed,
		NotBefore:             c.NotBefore,
		Expiry:                c.Expiry,
		IsOwner:               c.IsOwner,
		UserName:              c.UserName,
		UserID:                c.UserID,
		EnableScreenshare:     c.EnableScreenshare,
		StartVideoOff:         c.StartVideoOff,
		StartAudioOff:         c.StartAudioOff,
		EnableRecording:       c.EnableRecording,
		EnablePrejoinUI:       c.EnablePrejoinUI,
		EnableTerseLogging:    c.EnableTerseLogging,
		StartCloudRecording:   c.StartCloudRecording,
		CloseTabOnExit:        c.CloseTabOnExit,
		RedirectOnMeetingExit: c.RedirectOnMeetingExit,
		Lang:                  c.Lang,
	}
}

func (p *payload) claims() *Claims {
	return (&Claims{
		RoomName:              p.RoomName,
		EjectAtTokenExp:       p.EjectAtTokenExp,
		EjectAfterElapsed:     p.EjectAfterElapsed,
		NotBefore:             p.NotBefore,
		Expiry:                p.Expiry,
		IsOwner:               p.IsOwner,
		UserName:              p.UserName,
		UserID:                p.UserID,
		EnableScreenshare:     p.EnableScreenshare,
		StartVideoOff:         p.StartVideoOff,
		StartAudioOff:         p.StartAudioOff,
		EnableRecording:       p.EnableRecording,
		EnablePrejoinUI:       p.EnablePrejoinUI,
		EnableTerseLogging:    p.EnableTerseLogging,
		StartCloudRecording:   p.StartCloudRecording,
		CloseTabOnExit:        p.CloseTabOnExit,
		RedirectOnMeetingExit: p.RedirectOnMeetingExit,
		Lang:                  p.Lang,
	}).Clone()
}

// jwt.Claims

func (p *payload) GetExpirationTime() (*jwt.NumericDate, error) { return numericDate(p.Expiry), nil }
func (p *payload) GetNotBefore() (*jwt.NumericDate, error)      { return numericDate(p.NotBefore), nil }
func (p *payload) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (p *payload) GetIssuer() (string, error)                   { return "", nil }
func (p *payload) GetSubject() (string, error)                  { return "", nil }
func (p *payload) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

func numericDate(unix *int64) *jwt.NumericDate {
	if unix == nil {
		return nil
	}
	return &jwt.NumericDate{Time: timeFromUnix(*unix)}
}

// SelfSign signs the current claims locally with the domain key.
func (b *Builder) SelfSign(domainID string, key []byte) (string, error) {
	c, err := b.Claims()
	if err != nil {
		return "", err
	}
	return Sign(c, domainID, key)
}

// Sign produces an HS256 token for c. It does no I/O and touches no shared
// state; the same inputs always yield the same token.
func Sign(c *Claims, domainID string, key []byte) (string, error) {
	if len(key) == 0 {
		return "", errors.New(daily.ErrSigning, "signing key is required")
	}
	if domainID == "" {
		return "", errors.New(daily.ErrValidation, "domain id is required")
	}
	if err := c.Validate(); err != nil {
		return "", err
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, newPayload(domainID, c)).SignedString(key)
	if err != nil {
		return "", errors.Wrap(daily.ErrSigning, err, "sign meeting token")
	}
	return token, nil
}

// ParseSelfSigned verifies an HS256 token against key and maps its compact
// claims back. Time-based claims are not enforced; the caller decides what an
// expired token means.
func ParseSelfSigned(token string, key []byte) (*SelfSigned, error) {
	if len(key) == 0 {
		return nil, errors.New(daily.ErrSigning, "signing key is required")
	}
	p := &payload{}
	_, err := jwt.ParseWithClaims(token, p,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, errors.Wrap(daily.ErrValidation, err, "invalid self-signed token")
	}
	return &SelfSigned{DomainID: p.DomainID, Claims: p.claims()}, nil
}

// DecodeSelfSigned reads the claims without checking the signature. Use it
// for inspection only.
func DecodeSelfSigned(token string) (*SelfSigned, error) {
	p := &payload{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, p); err != nil {
		return nil, errors.Wrap(daily.ErrValidation, err, "malformed token")
	}
	return &SelfSigned{DomainID: p.DomainID, Claims: p.claims()}, nil
}
