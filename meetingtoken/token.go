package meetingtoken

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/utils"
)

// MeetingToken is the configuration the service reports for a token. Fields
// the service leaves out take their documented defaults; fields without a
// default stay nil.
type MeetingToken struct {
	RoomName              *string              `json:"room_name"`
	EjectAtTokenExp       bool                 `json:"eject_at_token_exp"`
	EjectAfterElapsed     *int64               `json:"eject_after_elapsed"`
	NotBefore             *int64               `json:"nbf"`
	Expiry                *int64               `json:"exp"`
	IsOwner               bool                 `json:"is_owner"`
	UserName              *string              `json:"user_name"`
	UserID                *string              `json:"user_id"`
	EnableScreenshare     bool                 `json:"enable_screenshare"`
	StartVideoOff         bool                 `json:"start_video_off"`
	StartAudioOff         bool                 `json:"start_audio_off"`
	EnableRecording       *daily.RecordingType `json:"enable_recording"`
	EnablePrejoinUI       *bool                `json:"enable_prejoin_ui"`
	EnableTerseLogging    bool                 `json:"enable_terse_logging"`
	StartCloudRecording   bool                 `json:"start_cloud_recording"`
	CloseTabOnExit        bool                 `json:"close_tab_on_exit"`
	RedirectOnMeetingExit *string              `json:"redirect_on_meeting_exit"`
	Lang                  *daily.Lang          `json:"lang"`
}

func defaultMeetingToken() MeetingToken {
	return MeetingToken{EnableScreenshare: true}
}

func (t *MeetingToken) UnmarshalJSON(data []byte) error {
	type plain MeetingToken
	v := plain(defaultMeetingToken())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = MeetingToken(v)
	return nil
}

// ExpiresAt returns exp as a time, or the zero time when unset.
func (t *MeetingToken) ExpiresAt() time.Time {
	if t.Expiry == nil {
		return time.Time{}
	}
	return time.Unix(*t.Expiry, 0)
}

// ValidAt reports whether now falls inside the nbf/exp window.
func (t *MeetingToken) ValidAt(now time.Time) bool {
	unix := now.Unix()
	if t.NotBefore != nil && unix < *t.NotBefore {
		return false
	}
	if t.Expiry != nil && unix >= *t.Expiry {
		return false
	}
	return true
}

// FromClaims applies the same defaults the service does, so a request can be
// compared with what Get reports back.
func FromClaims(c *Claims) MeetingToken {
	t := defaultMeetingToken()
	if c == nil {
		return t
	}
	t.RoomName = utils.Clone(c.RoomName)
	t.EjectAtTokenExp = utils.Get(c.EjectAtTokenExp)
	t.EjectAfterElapsed = utils.Clone(c.EjectAfterElapsed)
	t.NotBefore = utils.Clone(c.NotBefore)
	t.Expiry = utils.Clone(c.Expiry)
	t.IsOwner = utils.Get(c.IsOwner)
	t.UserName = utils.Clone(c.UserName)
	t.UserID = utils.Clone(c.UserID)
	t.EnableScreenshare = utils.Or(c.EnableScreenshare, true)
	t.StartVideoOff = utils.Get(c.StartVideoOff)
	t.StartAudioOff = utils.Get(c.StartAudioOff)
	t.EnableRecording = utils.Clone(c.EnableRecording)
	t.EnablePrejoinUI = utils.Clone(c.EnablePrejoinUI)
	t.EnableTerseLogging = utils.Get(c.EnableTerseLogging)
	t.StartCloudRecording = utils.Get(c.StartCloudRecording)
	t.CloseTabOnExit = utils.Get(c.CloseTabOnExit)
	t.RedirectOnMeetingExit = utils.Clone(c.RedirectOnMeetingExit)
	t.Lang = utils.Clone(c.Lang)
	return t
}

// Get validates token with the service and returns its configuration.
func Get(ctx context.Context, d daily.Doer, token string) (*MeetingToken, error) {
	if token == "" {
		return nil, errors.New(daily.ErrValidation, "token is required")
	}

	var t MeetingToken
	err := d.Do(ctx, daily.Request{
		Method: http.MethodGet,
		Path:   "/meeting-tokens/" + url.PathEscape(token),
	}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
