package daily

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type EnumsTestSuite struct {
	suite.Suite
}

func TestEnumsSuite(t *testing.T) {
	suite.Run(t, new(EnumsTestSuite))
}

func (s *EnumsTestSuite) TestValid() {
	s.True(RegionEuWest2.Valid())
	s.False(Region("eu-west-1").Valid())

	s.True(RtmpGeoApSoutheast1.Valid())
	s.False(RtmpGeoRegion("us-east-1").Valid())

	s.True(LangUser.Valid())
	s.True(DefaultLang.Valid())
	s.False(Lang("EN").Valid())

	s.True(RecordingRtpTracks.Valid())
	s.False(RecordingType("raw").Valid())

	s.True(DefaultSignalingImp.Valid())
	s.False(SignalingImp("sse").Valid())

	s.True(KindNotFound.Valid())
	s.False(ErrorKind("").Valid())
}

func (s *EnumsTestSuite) TestWireForm() {
	b, err := json.Marshal(struct {
		Geo  Region        `json:"geo"`
		Rec  RecordingType `json:"enable_recording"`
		Lang Lang          `json:"lang"`
	}{RegionApNortheast2, RecordingOutputByteStream, LangJP})
	s.Require().NoError(err)
	s.JSONEq(`{"geo":"ap-northeast-2","enable_recording":"output-byte-stream","lang":"jp"}`, string(b))
}
