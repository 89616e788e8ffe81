// Package rooms creates, inspects and removes video rooms.
package rooms

import (
	"encoding/json"

	daily "github.com/imtaco/dailyco-go"
)

type Privacy string

const (
	// PrivacyPublic rooms can be joined by anyone with the URL. It is the
	// service default.
	PrivacyPublic Privacy = "public"
	// PrivacyPrivate rooms need a meeting token or owner approval.
	PrivacyPrivate Privacy = "private"
)

func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

// Room is a room as the service reports it.
type Room struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	APICreated bool       `json:"api_created"`
	Privacy    Privacy    `json:"privacy"`
	URL        string     `json:"url"`
	CreatedAt  string     `json:"created_at"`
	Config     Properties `json:"config"`
}

// Properties is a room configuration as reported. Absent fields take the
// documented defaults; fields without one stay nil.
type Properties struct {
	NotBefore                      *int64               `json:"nbf"`
	Expiry                         *int64               `json:"exp"`
	MaxParticipants                *int                 `json:"max_participants"`
	EnablePeopleUI                 *bool                `json:"enable_people_ui"`
	EnablePipUI                    bool                 `json:"enable_pip_ui"`
	EnablePrejoinUI                *bool                `json:"enable_prejoin_ui"`
	EnableNetworkUI                bool                 `json:"enable_network_ui"`
	EnableKnocking                 bool                 `json:"enable_knocking"`
	EnableScreenshare              bool                 `json:"enable_screenshare"`
	EnableVideoProcessingUI        bool                 `json:"enable_video_processing_ui"`
	EnableChat                     bool                 `json:"enable_chat"`
	StartVideoOff                  bool                 `json:"start_video_off"`
	StartAudioOff                  bool                 `json:"start_audio_off"`
	OwnerOnlyBroadcast             bool                 `json:"owner_only_broadcast"`
	EnableRecording                *daily.RecordingType `json:"enable_recording"`
	EjectAtRoomExp                 bool                 `json:"eject_at_room_exp"`
	EjectAfterElapsed              *int64               `json:"eject_after_elapsed"`
	EnableHiddenParticipants       bool                 `json:"enable_hidden_participants"`
	EnableMeshSFU                  *bool                `json:"enable_mesh_sfu"`
	ExperimentalOptimizeLargeCalls *bool                `json:"experimental_optimize_large_calls"`
	Lang                           daily.Lang           `json:"lang"`
	MeetingJoinHook                *string              `json:"meeting_join_hook"`
	SignalingImp                   daily.SignalingImp   `json:"signaling_imp"`
	Geo                            *daily.Region        `json:"geo"`
	RtmpGeo                        *daily.RtmpGeoRegion `json:"rtmp_geo"`
	EnableTerseLogging             bool                 `json:"enable_terse_logging"`
}

// DefaultProperties is what a room created without properties reports.
func DefaultProperties() Properties {
	return Properties{
		EnableScreenshare:       true,
		EnableVideoProcessingUI: true,
		Lang:                    daily.DefaultLang,
		SignalingImp:            daily.DefaultSignalingImp,
	}
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	type plain Properties
	v := plain(DefaultProperties())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Properties(v)
	return nil
}

// Page is one window of a listing. TotalCount counts every room, not just
// the ones in Data.
type Page struct {
	TotalCount int    `json:"total_count"`
	Data       []Room `json:"data"`
}

// Complete reports whether the page holds every room.
func (p *Page) Complete() bool {
	return p.TotalCount <= len(p.Data)
}
