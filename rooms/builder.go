package rooms

import (
	"context"
	"net/http"
	"net/url"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/validation"
)

// properties is the request form of Properties: only set fields are sent.
type properties struct {
	NotBefore                      *int64               `json:"nbf,omitempty"`
	Expiry                         *int64               `json:"exp,omitempty"`
	MaxParticipants                *int                 `json:"max_participants,omitempty" validate:"omitnil,gte=1"`
	EnablePeopleUI                 *bool                `json:"enable_people_ui,omitempty"`
	EnablePipUI                    *bool                `json:"enable_pip_ui,omitempty"`
	EnablePrejoinUI                *bool                `json:"enable_prejoin_ui,omitempty"`
	EnableNetworkUI                *bool                `json:"enable_network_ui,omitempty"`
	EnableKnocking                 *bool                `json:"enable_knocking,omitempty"`
	EnableScreenshare              *bool                `json:"enable_screenshare,omitempty"`
	EnableVideoProcessingUI        *bool                `json:"enable_video_processing_ui,omitempty"`
	EnableChat                     *bool                `json:"enable_chat,omitempty"`
	StartVideoOff                  *bool                `json:"start_video_off,omitempty"`
	StartAudioOff                  *bool                `json:"start_audio_off,omitempty"`
	OwnerOnlyBroadcast             *bool                `json:"owner_only_broadcast,omitempty"`
	EnableRecording                *daily.RecordingType `json:"enable_recording,omitempty" validate:"omitnil,known"`
	EjectAtRoomExp                 *bool                `json:"eject_at_room_exp,omitempty"`
	EjectAfterElapsed              *int64               `json:"eject_after_elapsed,omitempty" validate:"omitnil,gte=0"`
	EnableHiddenParticipants       *bool                `json:"enable_hidden_participants,omitempty"`
	EnableMeshSFU                  *bool                `json:"enable_mesh_sfu,omitempty"`
	ExperimentalOptimizeLargeCalls *bool                `json:"experimental_optimize_large_calls,omitempty"`
	Lang                           *daily.Lang          `json:"lang,omitempty" validate:"omitnil,known"`
	MeetingJoinHook                *string              `json:"meeting_join_hook,omitempty" validate:"omitnil,url,max=255"`
	SignalingImp                   *daily.SignalingImp  `json:"signaling_imp,omitempty" validate:"omitnil,known"`
	Geo                            *daily.Region        `json:"geo,omitempty" validate:"omitnil,known"`
	RtmpGeo                        *daily.RtmpGeoRegion `json:"rtmp_geo,omitempty" validate:"omitnil,known"`
	EnableTerseLogging             *bool                `json:"enable_terse_logging,omitempty"`
}

type createRequest struct {
	Name       *string     `json:"name,omitempty" validate:"omitnil,roomname"`
	Privacy    *Privacy    `json:"privacy,omitempty" validate:"omitnil,known"`
	Properties *properties `json:"properties"`
}

type updateRequest struct {
	Privacy    *Privacy    `json:"privacy,omitempty"`
	Properties *properties `json:"properties"`
}

// Builder collects room settings. Unset settings are left out of the request
// and the service default applies.
type Builder struct {
	name    *string
	privacy *Privacy
	props   properties
}

func New() *Builder {
	return &Builder{}
}

// Name sets the room name. Without one the service generates a random name.
func (b *Builder) Name(name string) *Builder {
	b.name = &name
	return b
}

func (b *Builder) Privacy(p Privacy) *Builder {
	b.privacy = &p
	return b
}

// NotBefore is the unix time before which the room cannot be joined.
func (b *Builder) NotBefore(unix int64) *Builder {
	b.props.NotBefore = &unix
	return b
}

// Expiry is the unix time after which the room is eventually deleted.
func (b *Builder) Expiry(unix int64) *Builder {
	b.props.Expiry = &unix
	return b
}

func (b *Builder) MaxParticipants(n int) *Builder {
	b.props.MaxParticipants = &n
	return b
}

func (b *Builder) EnablePeopleUI(v bool) *Builder {
	b.props.EnablePeopleUI = &v
	return b
}

func (b *Builder) EnablePipUI(v bool) *Builder {
	b.props.EnablePipUI = &v
	return b
}

func (b *Builder) EnablePrejoinUI(v bool) *Builder {
	b.props.EnablePrejoinUI = &v
	return b
}

func (b *Builder) EnableNetworkUI(v bool) *Builder {
	b.props.EnableNetworkUI = &v
	return b
}

// EnableKnocking lets participants without a token ask an owner to be let
// into a private room.
func (b *Builder) EnableKnocking(v bool) *Builder {
	b.props.EnableKnocking = &v
	return b
}

func (b *Builder) EnableScreenshare(v bool) *Builder {
	b.props.EnableScreenshare = &v
	return b
}

func (b *Builder) EnableVideoProcessingUI(v bool) *Builder {
	b.props.EnableVideoProcessingUI = &v
	return b
}

func (b *Builder) EnableChat(v bool) *Builder {
	b.props.EnableChat = &v
	return b
}

func (b *Builder) StartVideoOff(v bool) *Builder {
	b.props.StartVideoOff = &v
	return b
}

func (b *Builder) StartAudioOff(v bool) *Builder {
	b.props.StartAudioOff = &v
	return b
}

// OwnerOnlyBroadcast restricts camera, mic and screen share to owners.
func (b *Builder) OwnerOnlyBroadcast(v bool) *Builder {
	b.props.OwnerOnlyBroadcast = &v
	return b
}

func (b *Builder) EnableRecording(t daily.RecordingType) *Builder {
	b.props.EnableRecording = &t
	return b
}

// EjectAtRoomExp ends a running meeting when the room expires. Token eject
// settings take precedence.
func (b *Builder) EjectAtRoomExp(v bool) *Builder {
	b.props.EjectAtRoomExp = &v
	return b
}

func (b *Builder) EjectAfterElapsed(seconds int64) *Builder {
	b.props.EjectAfterElapsed = &seconds
	return b
}

func (b *Builder) EnableHiddenParticipants(v bool) *Builder {
	b.props.EnableHiddenParticipants = &v
	return b
}

func (b *Builder) EnableMeshSFU(v bool) *Builder {
	b.props.EnableMeshSFU = &v
	return b
}

func (b *Builder) ExperimentalOptimizeLargeCalls(v bool) *Builder {
	b.props.ExperimentalOptimizeLargeCalls = &v
	return b
}

func (b *Builder) Lang(l daily.Lang) *Builder {
	b.props.Lang = &l
	return b
}

// MeetingJoinHook is a webhook URL called when someone joins. At most 255
// characters.
func (b *Builder) MeetingJoinHook(url string) *Builder {
	b.props.MeetingJoinHook = &url
	return b
}

func (b *Builder) SignalingImp(s daily.SignalingImp) *Builder {
	b.props.SignalingImp = &s
	return b
}

// Geo pins the signaling server region.
func (b *Builder) Geo(r daily.Region) *Builder {
	b.props.Geo = &r
	return b
}

func (b *Builder) RtmpGeo(r daily.RtmpGeoRegion) *Builder {
	b.props.RtmpGeo = &r
	return b
}

func (b *Builder) EnableTerseLogging(v bool) *Builder {
	b.props.EnableTerseLogging = &v
	return b
}

func (b *Builder) request(withName bool) (*createRequest, error) {
	props := b.props
	req := &createRequest{
		Privacy:    b.privacy,
		Properties: &props,
	}
	if withName {
		req.Name = b.name
	}
	if err := validation.Default().Struct(req); err != nil {
		return nil, errors.Newf(daily.ErrValidation, "invalid room settings: %s", validation.Summary(err))
	}
	if props.NotBefore != nil && props.Expiry != nil && *props.NotBefore >= *props.Expiry {
		return nil, errors.Newf(daily.ErrValidation, "nbf (%d) must be before exp (%d)", *props.NotBefore, *props.Expiry)
	}
	return req, nil
}

// Create creates the room via POST /rooms.
func (b *Builder) Create(ctx context.Context, d daily.Doer) (*Room, error) {
	req, err := b.request(true)
	if err != nil {
		return nil, err
	}

	var room Room
	err = d.Do(ctx, daily.Request{
		Method: http.MethodPost,
		Path:   "/rooms",
		Body:   req,
	}, &room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update applies the privacy and properties set on b to an existing room.
// The builder's name is ignored; properties not set keep their current value.
func (b *Builder) Update(ctx context.Context, d daily.Doer, name string) (*Room, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	req, err := b.request(false)
	if err != nil {
		return nil, err
	}

	var room Room
	err = d.Do(ctx, daily.Request{
		Method: http.MethodPost,
		Path:   "/rooms/" + url.PathEscape(name),
		Body:   updateRequest{Privacy: req.Privacy, Properties: req.Properties},
	}, &room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
