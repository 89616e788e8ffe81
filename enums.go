package daily

// Region is a signaling/media region a room can be pinned to.
type Region string

const (
	RegionAfSouth1     Region = "af-south-1"
	RegionApNortheast2 Region = "ap-northeast-2"
	RegionApSoutheast1 Region = "ap-southeast-1"
	RegionApSoutheast2 Region = "ap-southeast-2"
	RegionApSouth1     Region = "ap-south-1"
	RegionEuCentral1   Region = "eu-central-1"
	RegionEuWest2      Region = "eu-west-2"
	RegionSaEast1      Region = "sa-east-1"
	RegionUsEast1      Region = "us-east-1"
	RegionUsWest2      Region = "us-west-2"
)

func (r Region) Valid() bool {
	switch r {
	case RegionAfSouth1, RegionApNortheast2, RegionApSoutheast1, RegionApSoutheast2,
		RegionApSouth1, RegionEuCentral1, RegionEuWest2, RegionSaEast1,
		RegionUsEast1, RegionUsWest2:
		return true
	}
	return false
}

// RtmpGeoRegion is where an RTMP stream originates.
type RtmpGeoRegion string

const (
	RtmpGeoUsWest2      RtmpGeoRegion = "us-west-2"
	RtmpGeoEuCentral1   RtmpGeoRegion = "eu-central-1"
	RtmpGeoApSoutheast1 RtmpGeoRegion = "ap-southeast-1"
)

func (r RtmpGeoRegion) Valid() bool {
	switch r {
	case RtmpGeoUsWest2, RtmpGeoEuCentral1, RtmpGeoApSoutheast1:
		return true
	}
	return false
}

// Lang is the language of the prebuilt call UI. LangUser follows the
// participant's browser setting.
type Lang string

const (
	LangDE   Lang = "de"
	LangEN   Lang = "en"
	LangES   Lang = "es"
	LangFI   Lang = "fi"
	LangFR   Lang = "fr"
	LangIT   Lang = "it"
	LangJP   Lang = "jp"
	LangKA   Lang = "ka"
	LangNL   Lang = "nl"
	LangNO   Lang = "no"
	LangPT   Lang = "pt"
	LangPL   Lang = "pl"
	LangRU   Lang = "ru"
	LangSV   Lang = "sv"
	LangTR   Lang = "tr"
	LangUser Lang = "user"

	DefaultLang = LangEN
)

func (l Lang) Valid() bool {
	switch l {
	case LangDE, LangEN, LangES, LangFI, LangFR, LangIT, LangJP, LangKA,
		LangNL, LangNO, LangPT, LangPL, LangRU, LangSV, LangTR, LangUser:
		return true
	}
	return false
}

// RecordingType selects which recording mode a room or participant may use.
type RecordingType string

const (
	RecordingCloud            RecordingType = "cloud"
	RecordingRtpTracks        RecordingType = "rtp-tracks"
	RecordingOutputByteStream RecordingType = "output-byte-stream"
	RecordingLocal            RecordingType = "local"
)

func (r RecordingType) Valid() bool {
	switch r {
	case RecordingCloud, RecordingRtpTracks, RecordingOutputByteStream, RecordingLocal:
		return true
	}
	return false
}

type SignalingImp string

const (
	SignalingWS SignalingImp = "ws"

	DefaultSignalingImp = SignalingWS
)

func (s SignalingImp) Valid() bool {
	return s == SignalingWS
}

// ErrorKind is the "error" field of a failed API response.
type ErrorKind string

const (
	KindAuthentication      ErrorKind = "authentication-error"
	KindAuthorizationHeader ErrorKind = "authorization-header-error"
	KindJSONParsing         ErrorKind = "json-parsing-error"
	KindInvalidRequest      ErrorKind = "invalid-request-error"
	KindRateLimit           ErrorKind = "rate-limit-error"
	KindServer              ErrorKind = "server-error"
	KindNotFound            ErrorKind = "not-found"
)

func (k ErrorKind) Valid() bool {
	switch k {
	case KindAuthentication, KindAuthorizationHeader, KindJSONParsing,
		KindInvalidRequest, KindRateLimit, KindServer, KindNotFound:
		return true
	}
	return false
}
