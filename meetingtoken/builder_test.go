package meetingtoken

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/dailytest"
	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/internal/utils"
	"github.com/imtaco/dailyco-go/mocks"
)

var epoch = time.Unix(1_700_000_000, 0)

type BuilderTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *clockwork.FakeClock
	fake   *dailytest.TestServer
	client *daily.Client
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func (s *BuilderTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clockwork.NewFakeClockAt(epoch)
	s.fake = dailytest.NewTestServer(s.T())

	var err error
	s.client, err = daily.New(daily.Config{APIKey: s.fake.APIKey(), BaseURL: s.fake.URL},
		daily.WithLogger(log.NewTest(s.T())))
	s.Require().NoError(err)
}

func (s *BuilderTestSuite) properties(body []byte) map[string]any {
	var req struct {
		Properties map[string]any `json:"properties"`
	}
	s.Require().NoError(json.Unmarshal(body, &req))
	return req.Properties
}

func (s *BuilderTestSuite) TestNoSettersNoFields() {
	c, err := New().Claims()
	s.Require().NoError(err)
	s.Empty(c.SetFields())

	b, err := json.Marshal(c)
	s.Require().NoError(err)
	s.JSONEq(`{}`, string(b))
	s.Equal("Claims{}", c.String())
}

func (s *BuilderTestSuite) TestSetFieldsMatchSerializedKeys() {
	c, err := New().
		RoomName("standup").
		IsOwner(true).
		StartVideoOff(false).
		Lang(daily.LangFR).
		Claims()
	s.Require().NoError(err)
	s.Equal([]string{"room_name", "is_owner", "start_video_off", "lang"}, c.SetFields())

	b, err := json.Marshal(c)
	s.Require().NoError(err)
	s.JSONEq(`{"room_name":"standup","is_owner":true,"start_video_off":false,"lang":"fr"}`, string(b))
}

func (s *BuilderTestSuite) TestEverySetter() {
	c, err := New(WithClock(s.clock)).
		RoomName("r").
		EjectAtTokenExp(true).
		EjectAfterElapsed(60).
		NotBefore(epoch.Unix()).
		Expiry(epoch.Unix() + 10).
		IsOwner(true).
		UserName("Ada").
		UserID("u-1").
		EnableScreenshare(false).
		StartVideoOff(true).
		StartAudioOff(true).
		EnableRecording(daily.RecordingCloud).
		EnablePrejoinUI(true).
		EnableTerseLogging(true).
		StartCloudRecording(true).
		CloseTabOnExit(true).
		RedirectOnMeetingExit("https://example.com/bye").
		Lang(daily.LangDE).
		Claims()
	s.Require().NoError(err)
	s.Equal(fieldNames, c.SetFields())
}

func (s *BuilderTestSuite) TestRelativeWindowUsesClock() {
	b := New(WithClock(s.clock)).ExpiresIn(time.Hour)

	c, err := b.Claims()
	s.Require().NoError(err)
	s.Nil(c.NotBefore)
	s.Equal(epoch.Add(time.Hour).Unix(), *c.Expiry)

	s.clock.Advance(time.Minute)
	c, err = b.Claims()
	s.Require().NoError(err)
	s.Equal(epoch.Add(time.Hour+time.Minute).Unix(), *c.Expiry)
}

func (s *BuilderTestSuite) TestValidFor() {
	c, err := New(WithClock(s.clock)).ValidFor(30 * time.Minute).Claims()
	s.Require().NoError(err)
	s.Equal(epoch.Unix(), *c.NotBefore)
	s.Equal(epoch.Add(30*time.Minute).Unix(), *c.Expiry)
}

func (s *BuilderTestSuite) TestLastWindowSetterWins() {
	c, err := New(WithClock(s.clock)).
		ExpiresIn(time.Hour).
		ExpiresAt(epoch.Add(time.Minute)).
		NotBeforeAt(epoch).
		NotBeforeIn(time.Second).
		Claims()
	s.Require().NoError(err)
	s.Equal(epoch.Add(time.Minute).Unix(), *c.Expiry)
	s.Equal(epoch.Add(time.Second).Unix(), *c.NotBefore)
}

func (s *BuilderTestSuite) TestValidation() {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"room name with spaces", New().RoomName("bad name")},
		{"empty room name", New().RoomName("")},
		{"negative eject after elapsed", New().EjectAfterElapsed(-1)},
		{"nbf after exp", New().NotBefore(20).Expiry(10)},
		{"nbf equals exp", New().NotBefore(10).Expiry(10)},
		{"unknown lang", New().Lang(daily.Lang("xx"))},
		{"unknown recording type", New().EnableRecording(daily.RecordingType("tape"))},
		{"relative redirect", New().RedirectOnMeetingExit("/bye")},
		{"invalid utf-8 user name", New().UserName("a\xffb")},
		{"invalid utf-8 user id", New().UserID("\xc3\x28")},
		{"invalid utf-8 room name", New().RoomName("room\xff")},
		{"invalid utf-8 redirect", New().RedirectOnMeetingExit("https://example.com/\xff")},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, err := tt.b.Claims()
			s.Require().ErrorIs(err, daily.ErrValidation)
			s.Nil(c)
		})
	}
}

func (s *BuilderTestSuite) TestNilClaimsInvalid() {
	var c *Claims
	s.ErrorIs(c.Validate(), daily.ErrValidation)
}

func (s *BuilderTestSuite) TestIssuedClaimsAreIndependent() {
	b := New().RoomName("a")
	first, err := b.Claims()
	s.Require().NoError(err)

	b.RoomName("b").UserName("later")
	*first.RoomName = "mutated"

	second, err := b.Claims()
	s.Require().NoError(err)
	s.Equal("b", *second.RoomName)
	s.Equal("later", *second.UserName)
	s.Nil(first.UserName)
}

func (s *BuilderTestSuite) TestFromClaimsCopies() {
	src := &Claims{RoomName: utils.Ptr("a")}
	b := NewFromClaims(src).IsOwner(true)
	*src.RoomName = "changed"

	c, err := b.Claims()
	s.Require().NoError(err)
	s.Equal("a", *c.RoomName)
	s.Nil(src.IsOwner)
}

func (s *BuilderTestSuite) TestCreateSendsOnlySetFields() {
	token, err := New().RoomName("standup").IsOwner(true).Create(s.ctx, s.client)
	s.Require().NoError(err)
	s.NotEmpty(token)

	req, ok := s.fake.LastRequest()
	s.Require().True(ok)
	s.Equal(http.MethodPost, req.Method)
	s.Equal("/v1/meeting-tokens", req.Path)
	s.Equal(map[string]any{"room_name": "standup", "is_owner": true}, s.properties(req.Body))
}

func (s *BuilderTestSuite) TestCreateOmitsUnsetOwner() {
	_, err := New().UserName("guest").Create(s.ctx, s.client)
	s.Require().NoError(err)

	req, ok := s.fake.LastRequest()
	s.Require().True(ok)
	props := s.properties(req.Body)
	s.NotContains(props, "is_owner")
	s.Equal("guest", props["user_name"])
}

func (s *BuilderTestSuite) TestCreateUnauthorized() {
	client, err := daily.New(daily.Config{APIKey: "wrong", BaseURL: s.fake.URL})
	s.Require().NoError(err)

	token, err := New().RoomName("standup").Create(s.ctx, client)
	s.Require().ErrorIs(err, daily.ErrAPI)
	s.Empty(token)

	apiErr, ok := daily.AsAPIError(err)
	s.Require().True(ok)
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	s.Equal(daily.KindAuthentication, apiErr.Kind)
	s.Equal("Invalid API key", apiErr.Info)
}

func (s *BuilderTestSuite) TestCreateInvalidSendsNothing() {
	_, err := New().EjectAfterElapsed(-5).Create(s.ctx, s.client)
	s.Require().ErrorIs(err, daily.ErrValidation)
	s.Empty(s.fake.Requests())
}

func (s *BuilderTestSuite) TestCreateServerRejection() {
	s.fake.FailNext(dailytest.Failure{
		Status: http.StatusBadRequest,
		Kind:   string(daily.KindInvalidRequest),
		Info:   "room_name is too long",
	})

	_, err := New().RoomName("standup").Create(s.ctx, s.client)
	apiErr, ok := daily.AsAPIError(err)
	s.Require().True(ok)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal("room_name is too long", apiErr.Info)
}

func (s *BuilderTestSuite) TestCreateWithDoer() {
	ctrl := gomock.NewController(s.T())
	d := mocks.NewMockDoer(ctrl)

	d.EXPECT().
		Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req daily.Request, out any) error {
			s.Equal(http.MethodPost, req.Method)
			s.Equal("/meeting-tokens", req.Path)
			s.Equal("standup", *req.Body.(createRequest).Properties.RoomName)
			out.(*createResponse).Token = "tok"
			return nil
		})

	token, err := New().RoomName("standup").Create(s.ctx, d)
	s.Require().NoError(err)
	s.Equal("tok", token)
}

func (s *BuilderTestSuite) TestCreateEmptyTokenInResponse() {
	ctrl := gomock.NewController(s.T())
	d := mocks.NewMockDoer(ctrl)
	d.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	token, err := Create(s.ctx, d, &Claims{})
	s.Require().ErrorIs(err, daily.ErrTransport)
	s.Empty(token)
}
