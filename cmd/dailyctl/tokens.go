package main

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/meetingtoken"
)

// tokenFlags registers the claim flags shared by "tokens create" and
// "tokens sign" and returns a func building the builder from them.
func (c *cli) tokenFlags(fs *pflag.FlagSet) func() *meetingtoken.Builder {
	var (
		room          = fs.String("room", "", "restrict the token to this room")
		owner         = fs.Bool("owner", false, "grant meeting owner privileges")
		userName      = fs.String("user-name", "", "display name")
		userID        = fs.String("user-id", "", "user id reported in events")
		validFor      = fs.Duration("valid-for", 0, "valid from now for this long")
		expIn         = fs.Duration("exp-in", 0, "expire this long from now")
		ejectAtExp    = fs.Bool("eject-at-exp", false, "eject the participant when the token expires")
		ejectAfter    = fs.Duration("eject-after", 0, "eject the participant this long after joining")
		startVideoOff = fs.Bool("start-video-off", false, "join with camera off")
		startAudioOff = fs.Bool("start-audio-off", false, "join with mic off")
		recording     = fs.String("enable-recording", "", "allowed recording type")
		cloudRecord   = fs.Bool("start-cloud-recording", false, "start a cloud recording on join")
		redirect      = fs.String("redirect", "", "URL to open when leaving the meeting")
		lang          = fs.String("lang", "", "UI language")
	)
	return func() *meetingtoken.Builder {
		b := meetingtoken.New(meetingtoken.WithClock(c.clock))
		ifChanged(fs, "room", func() { b.RoomName(*room) })
		ifChanged(fs, "owner", func() { b.IsOwner(*owner) })
		ifChanged(fs, "user-name", func() { b.UserName(*userName) })
		ifChanged(fs, "user-id", func() { b.UserID(*userID) })
		ifChanged(fs, "valid-for", func() { b.ValidFor(*validFor) })
		ifChanged(fs, "exp-in", func() { b.ExpiresIn(*expIn) })
		ifChanged(fs, "eject-at-exp", func() { b.EjectAtTokenExp(*ejectAtExp) })
		ifChanged(fs, "eject-after", func() { b.EjectAfterElapsed(int64(*ejectAfter / time.Second)) })
		ifChanged(fs, "start-video-off", func() { b.StartVideoOff(*startVideoOff) })
		ifChanged(fs, "start-audio-off", func() { b.StartAudioOff(*startAudioOff) })
		ifChanged(fs, "enable-recording", func() { b.EnableRecording(daily.RecordingType(*recording)) })
		ifChanged(fs, "start-cloud-recording", func() { b.StartCloudRecording(*cloudRecord) })
		ifChanged(fs, "redirect", func() { b.RedirectOnMeetingExit(*redirect) })
		ifChanged(fs, "lang", func() { b.Lang(daily.Lang(*lang)) })
		return b
	}
}

type tokenOutput struct {
	Token  string               `json:"token"`
	Claims *meetingtoken.Claims `json:"claims,omitempty"`
}

func (c *cli) tokensCreate(ctx context.Context, args []string) error {
	fs := newCommandFlags("tokens create")
	build := c.tokenFlags(fs)
	if err := parse(fs, args, 0, "[flags]"); err != nil {
		return err
	}

	claims, err := build().Claims()
	if err != nil {
		return err
	}
	var token string
	err = c.call(ctx, func(d daily.Doer) (err error) {
		token, err = meetingtoken.Create(ctx, d, claims)
		return err
	})
	if err != nil {
		return err
	}
	return c.print(tokenOutput{Token: token, Claims: claims})
}

// tokensSign signs locally with the domain key. It makes no request.
func (c *cli) tokensSign(_ context.Context, args []string) error {
	fs := newCommandFlags("tokens sign")
	build := c.tokenFlags(fs)
	if err := parse(fs, args, 0, "[flags]"); err != nil {
		return err
	}
	if !meetingtoken.SelfSignSupported {
		return errors.New(daily.ErrUnsupported, "this build cannot self-sign tokens")
	}

	claims, err := build().Claims()
	if err != nil {
		return err
	}
	token, err := meetingtoken.Sign(claims, c.cfg.Daily.DomainID, []byte(c.cfg.Daily.SigningKey))
	if err != nil {
		return err
	}
	return c.print(tokenOutput{Token: token, Claims: claims})
}

type inspectOutput struct {
	Source   string                     `json:"source"`
	DomainID string                     `json:"domain_id,omitempty"`
	Verified bool                       `json:"verified"`
	Claims   *meetingtoken.Claims       `json:"claims,omitempty"`
	Token    *meetingtoken.MeetingToken `json:"token,omitempty"`
}

// tokensInspect asks the service with --remote. Otherwise it decodes the
// token locally, checking the signature when a signing key is configured.
func (c *cli) tokensInspect(ctx context.Context, args []string) error {
	fs := newCommandFlags("tokens inspect")
	remote := fs.Bool("remote", false, "validate with the service")
	if err := parse(fs, args, 1, "TOKEN"); err != nil {
		return err
	}
	token := fs.Arg(0)

	if *remote {
		var got *meetingtoken.MeetingToken
		err := c.call(ctx, func(d daily.Doer) (err error) {
			got, err = meetingtoken.Get(ctx, d, token)
			return err
		})
		if err != nil {
			return err
		}
		return c.print(inspectOutput{Source: "remote", Verified: true, Token: got})
	}

	var (
		ss       *meetingtoken.SelfSigned
		err      error
		verified bool
	)
	if key := c.cfg.Daily.SigningKey; key != "" {
		ss, err = meetingtoken.ParseSelfSigned(token, []byte(key))
		verified = true
	} else {
		ss, err = meetingtoken.DecodeSelfSigned(token)
	}
	if err != nil {
		return err
	}
	return c.print(inspectOutput{
		Source:   "local",
		DomainID: ss.DomainID,
		Verified: verified,
		Claims:   ss.Claims,
	})
}
