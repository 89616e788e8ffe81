// Package meetingtoken builds meeting tokens: either issued by the service
// (Builder.Create) or signed locally with the domain key (Builder.SelfSign).
package meetingtoken

import (
	"encoding/json"
	"strings"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/utils"
	"github.com/imtaco/dailyco-go/internal/validation"
)

// Claims is the set of properties a token grants. A nil field is unset: it is
// left out of every payload and the service default applies.
type Claims struct {
	RoomName              *string              `json:"room_name,omitempty" validate:"omitnil,roomname"`
	EjectAtTokenExp       *bool                `json:"eject_at_token_exp,omitempty"`
	EjectAfterElapsed     *int64               `json:"eject_after_elapsed,omitempty" validate:"omitnil,gte=0"`
	NotBefore             *int64               `json:"nbf,omitempty"`
	Expiry                *int64               `json:"exp,omitempty"`
	IsOwner               *bool                `json:"is_owner,omitempty"`
	UserName              *string              `json:"user_name,omitempty" validate:"omitnil,utf8"`
	UserID                *string              `json:"user_id,omitempty" validate:"omitnil,utf8"`
	EnableScreenshare     *bool                `json:"enable_screenshare,omitempty"`
	StartVideoOff         *bool                `json:"start_video_off,omitempty"`
	StartAudioOff         *bool                `json:"start_audio_off,omitempty"`
	EnableRecording       *daily.RecordingType `json:"enable_recording,omitempty" validate:"omitnil,known"`
	EnablePrejoinUI       *bool                `json:"enable_prejoin_ui,omitempty"`
	EnableTerseLogging    *bool                `json:"enable_terse_logging,omitempty"`
	StartCloudRecording   *bool                `json:"start_cloud_recording,omitempty"`
	CloseTabOnExit        *bool                `json:"close_tab_on_exit,omitempty"`
	RedirectOnMeetingExit *string              `json:"redirect_on_meeting_exit,omitempty" validate:"omitnil,utf8,url"`
	Lang                  *daily.Lang          `json:"lang,omitempty" validate:"omitnil,known"`
}

// Clone returns a deep copy.
func (c *Claims) Clone() *Claims {
	if c == nil {
		return nil
	}
	return &Claims{
		RoomName:              utils.Clone(c.RoomName),
		EjectAtTokenExp:       utils.Clone(c.EjectAtTokenExp),
		EjectAfterElapsed:     utils.Clone(c.EjectAfterElapsed),
		NotBefore:             utils.Clone(c.NotBefore),
		Expiry:                utils.Clone(c.Expiry),
		IsOwner:               utils.Clone(c.IsOwner),
		UserName:              utils.Clone(c.UserName),
		UserID:                utils.Clone(c.UserID),
		EnableScreenshare:     utils.Clone(c.EnableScreenshare),
		StartVideoOff:         utils.Clone(c.StartVideoOff),
		StartAudioOff:         utils.Clone(c.StartAudioOff),
		EnableRecording:       utils.Clone(c.EnableRecording),
		EnablePrejoinUI:       utils.Clone(c.EnablePrejoinUI),
		EnableTerseLogging:    utils.Clone(c.EnableTerseLogging),
		StartCloudRecording:   utils.Clone(c.StartCloudRecording),
		CloseTabOnExit:        utils.Clone(c.CloseTabOnExit),
		RedirectOnMeetingExit: utils.Clone(c.RedirectOnMeetingExit),
		Lang:                  utils.Clone(c.Lang),
	}
}

// Validate runs the cheap local checks. The service stays the authority; a
// token passing here may still be rejected remotely.
func (c *Claims) Validate() error {
	if c == nil {
		return errors.New(daily.ErrValidation, "claims are required")
	}
	if err := validation.Default().Struct(c); err != nil {
		return errors.Newf(daily.ErrValidation, "invalid meeting token claims: %s", validation.Summary(err))
	}
	if c.NotBefore != nil && c.Expiry != nil && *c.NotBefore >= *c.Expiry {
		return errors.Newf(daily.ErrValidation, "nbf (%d) must be before exp (%d)", *c.NotBefore, *c.Expiry)
	}
	return nil
}

// SetFields lists the wire names of the fields that are set, in declaration order.
func (c *Claims) SetFields() []string {
	b, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	out := make([]string, 0, len(m))
	for _, name := range fieldNames {
		if _, ok := m[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// fieldNames is the declaration order of Claims' wire names.
var fieldNames = []string{
	"room_name", "eject_at_token_exp", "eject_after_elapsed", "nbf", "exp",
	"is_owner", "user_name", "user_id", "enable_screenshare", "start_video_off",
	"start_audio_off", "enable_recording", "enable_prejoin_ui", "enable_terse_logging",
	"start_cloud_recording", "close_tab_on_exit", "redirect_on_meeting_exit", "lang",
}

func (c *Claims) String() string {
	return "Claims{" + strings.Join(c.SetFields(), ",") + "}"
}
