package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/dailytest"
	"github.com/imtaco/dailyco-go/internal/log"
)

type RoomsTestSuite struct {
	suite.Suite
	ctx    context.Context
	fake   *dailytest.TestServer
	client *daily.Client
}

func TestRoomsSuite(t *testing.T) {
	suite.Run(t, new(RoomsTestSuite))
}

func (s *RoomsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fake = dailytest.NewTestServer(s.T())

	var err error
	s.client, err = daily.New(daily.Config{APIKey: s.fake.APIKey(), BaseURL: s.fake.URL},
		daily.WithLogger(log.NewTest(s.T())))
	s.Require().NoError(err)
}

func (s *RoomsTestSuite) lastBody() map[string]any {
	req, ok := s.fake.LastRequest()
	s.Require().True(ok)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(req.Body, &body))
	return body
}

func (s *RoomsTestSuite) addRooms(n int) {
	for i := 0; i < n; i++ {
		s.fake.AddRoom(dailytest.Room{Name: fmt.Sprintf("room-%03d", i)})
	}
}

func (s *RoomsTestSuite) TestCreate() {
	room, err := New().
		Name("standup").
		Privacy(PrivacyPrivate).
		MaxParticipants(5).
		StartVideoOff(true).
		Geo(daily.RegionEuWest2).
		Create(s.ctx, s.client)
	s.Require().NoError(err)

	s.Equal("standup", room.Name)
	s.Equal(PrivacyPrivate, room.Privacy)
	s.True(room.APICreated)
	s.NotEmpty(room.ID)
	s.Equal("https://example.daily.co/standup", room.URL)
	s.Equal(5, *room.Config.MaxParticipants)
	s.True(room.Config.StartVideoOff)
	s.Equal(daily.RegionEuWest2, *room.Config.Geo)

	// defaults for what was not set
	s.True(room.Config.EnableScreenshare)
	s.True(room.Config.EnableVideoProcessingUI)
	s.Equal(daily.LangEN, room.Config.Lang)
	s.Equal(daily.SignalingWS, room.Config.SignalingImp)
	s.Nil(room.Config.EnableRecording)

	s.Equal(map[string]any{
		"name":    "standup",
		"privacy": "private",
		"properties": map[string]any{
			"max_participants": float64(5),
			"start_video_off":  true,
			"geo":              "eu-west-2",
		},
	}, s.lastBody())
}

func (s *RoomsTestSuite) TestCreateWithoutSettings() {
	room, err := New().Create(s.ctx, s.client)
	s.Require().NoError(err)
	s.NotEmpty(room.Name)
	s.Equal(PrivacyPublic, room.Privacy)
	s.Equal(DefaultProperties(), room.Config)
	s.Equal(map[string]any{"properties": map[string]any{}}, s.lastBody())
}

func (s *RoomsTestSuite) TestCreateDuplicate() {
	_, err := New().Name("standup").Create(s.ctx, s.client)
	s.Require().NoError(err)

	_, err = New().Name("standup").Create(s.ctx, s.client)
	apiErr, ok := daily.AsAPIError(err)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal(daily.KindInvalidRequest, apiErr.Kind)
}

func (s *RoomsTestSuite) TestCreateValidation() {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"room name with spaces", New().Name("a b")},
		{"unknown privacy", New().Privacy(Privacy("secret"))},
		{"zero participants", New().MaxParticipants(0)},
		{"negative eject", New().EjectAfterElapsed(-1)},
		{"unknown lang", New().Lang(daily.Lang("xx"))},
		{"unknown region", New().Geo(daily.Region("mars-1"))},
		{"unknown rtmp region", New().RtmpGeo(daily.RtmpGeoRegion("af-south-1"))},
		{"unknown signaling", New().SignalingImp(daily.SignalingImp("sse"))},
		{"unknown recording type", New().EnableRecording(daily.RecordingType("tape"))},
		{"bad hook", New().MeetingJoinHook("not a url")},
		{"nbf after exp", New().NotBefore(20).Expiry(10)},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			room, err := tt.b.Create(s.ctx, s.client)
			s.Require().ErrorIs(err, daily.ErrValidation)
			s.Nil(room)
		})
	}
	s.Empty(s.fake.Requests())
}

func (s *RoomsTestSuite) TestServiceRejectsUnknownPrivacy() {
	for _, path := range []string{"/rooms", "/rooms/standup"} {
		s.fake.AddRoom(dailytest.Room{Name: "standup"})
		err := s.client.Do(s.ctx, daily.Request{
			Method: http.MethodPost,
			Path:   path,
			Body:   map[string]any{"privacy": "secret"},
		}, nil)

		apiErr, ok := daily.AsAPIError(err)
		s.Require().True(ok, path)
		s.Equal(http.StatusBadRequest, apiErr.StatusCode, path)
		s.Equal(daily.KindInvalidRequest, apiErr.Kind, path)
	}

	var room Room
	s.Require().NoError(s.client.Do(s.ctx, daily.Request{
		Method: http.MethodPost,
		Path:   "/rooms/standup",
		Body:   map[string]any{"privacy": "private"},
	}, &room))
	s.Equal(PrivacyPrivate, room.Privacy)
}

func (s *RoomsTestSuite) TestUpdateMergesProperties() {
	_, err := New().Name("standup").StartVideoOff(true).Create(s.ctx, s.client)
	s.Require().NoError(err)

	room, err := New().Name("ignored").EnableChat(true).Privacy(PrivacyPrivate).Update(s.ctx, s.client, "standup")
	s.Require().NoError(err)
	s.Equal("standup", room.Name)
	s.Equal(PrivacyPrivate, room.Privacy)
	s.True(room.Config.EnableChat)
	s.True(room.Config.StartVideoOff)

	req, ok := s.fake.LastRequest()
	s.Require().True(ok)
	s.Equal("/v1/rooms/standup", req.Path)
	s.NotContains(s.lastBody(), "name")
}

func (s *RoomsTestSuite) TestUpdateMissing() {
	_, err := New().EnableChat(true).Update(s.ctx, s.client, "ghost")
	s.True(daily.IsNotFound(err))
}

func (s *RoomsTestSuite) TestGetAndDelete() {
	created, err := New().Name("standup").Create(s.ctx, s.client)
	s.Require().NoError(err)

	got, err := Get(s.ctx, s.client, "standup")
	s.Require().NoError(err)
	s.Equal(created, got)

	s.Require().NoError(Delete(s.ctx, s.client, "standup"))

	_, err = Get(s.ctx, s.client, "standup")
	s.Require().ErrorIs(err, daily.ErrAPI)
	s.True(daily.IsNotFound(err))

	err = Delete(s.ctx, s.client, "standup")
	s.True(daily.IsNotFound(err))
}

func (s *RoomsTestSuite) TestInvalidNameSendsNothing() {
	_, err := Get(s.ctx, s.client, "../rooms")
	s.ErrorIs(err, daily.ErrValidation)
	s.ErrorIs(Delete(s.ctx, s.client, ""), daily.ErrValidation)
	_, err = New().Update(s.ctx, s.client, "a/b")
	s.ErrorIs(err, daily.ErrValidation)
	s.Empty(s.fake.Requests())
}

func (s *RoomsTestSuite) TestListPage() {
	s.addRooms(5)

	page, err := List(s.ctx, s.client, ListOptions{Limit: 2})
	s.Require().NoError(err)
	s.Equal(5, page.TotalCount)
	s.Require().Len(page.Data, 2)
	s.Equal("room-000", page.Data[0].Name)
	s.False(page.Complete())

	next, err := List(s.ctx, s.client, ListOptions{Limit: 2, StartingAfter: page.Data[1].ID})
	s.Require().NoError(err)
	s.Require().Len(next.Data, 2)
	s.Equal("room-002", next.Data[0].Name)

	req, ok := s.fake.LastRequest()
	s.Require().True(ok)
	q, err := url.ParseQuery(req.Query)
	s.Require().NoError(err)
	s.Equal("2", q.Get("limit"))
	s.Equal(page.Data[1].ID, q.Get("starting_after"))
	s.False(q.Has("ending_before"))

	prev, err := List(s.ctx, s.client, ListOptions{Limit: 2, EndingBefore: next.Data[0].ID})
	s.Require().NoError(err)
	s.Equal(page.Data, prev.Data)
}

func (s *RoomsTestSuite) TestListStrict() {
	s.addRooms(3)

	_, err := List(s.ctx, s.client, ListOptions{Limit: 2, Strict: true})
	s.Require().ErrorIs(err, daily.ErrRequiresPagination)

	page, err := List(s.ctx, s.client, ListOptions{Strict: true})
	s.Require().NoError(err)
	s.Len(page.Data, 3)
	s.True(page.Complete())
}

func (s *RoomsTestSuite) TestListOptionsValidation() {
	_, err := List(s.ctx, s.client, ListOptions{Limit: MaxPageSize + 1})
	s.ErrorIs(err, daily.ErrValidation)
	_, err = List(s.ctx, s.client, ListOptions{Limit: -1})
	s.ErrorIs(err, daily.ErrValidation)
}

func (s *RoomsTestSuite) TestListAllFollowsCursors() {
	s.addRooms(2*MaxPageSize + 5)

	all, err := ListAll(s.ctx, s.client)
	s.Require().NoError(err)
	s.Require().Len(all, 2*MaxPageSize+5)
	s.Equal("room-000", all[0].Name)
	s.Equal("room-204", all[len(all)-1].Name)
	s.Len(s.fake.Requests(), 3)
}

func (s *RoomsTestSuite) TestListAllEmpty() {
	all, err := ListAll(s.ctx, s.client)
	s.Require().NoError(err)
	s.Empty(all)
	s.Len(s.fake.Requests(), 1)
}

func (s *RoomsTestSuite) TestListAllStopsOnError() {
	s.addRooms(MaxPageSize + 1)
	s.fake.FailNext(dailytest.Failure{Status: http.StatusTooManyRequests, Kind: string(daily.KindRateLimit), Info: "slow down"})

	_, err := ListAll(s.ctx, s.client)
	apiErr, ok := daily.AsAPIError(err)
	s.Require().True(ok)
	s.True(apiErr.Retryable())
}

func (s *RoomsTestSuite) TestPropertiesDefaults() {
	var p Properties
	s.Require().NoError(json.Unmarshal([]byte(`{"enable_screenshare":false,"lang":"fr"}`), &p))
	s.False(p.EnableScreenshare)
	s.True(p.EnableVideoProcessingUI)
	s.Equal(daily.LangFR, p.Lang)
	s.Equal(daily.SignalingWS, p.SignalingImp)
}
