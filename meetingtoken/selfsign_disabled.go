//go:build daily_noselfsign

package meetingtoken

import (
	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/errors"
)

const SelfSignSupported = false

var errNoSelfSign = errors.New(daily.ErrUnsupported, "self-signed meeting tokens are disabled in this build")

func (b *Builder) SelfSign(string, []byte) (string, error) {
	return "", errNoSelfSign
}

func Sign(*Claims, string, []byte) (string, error) {
	return "", errNoSelfSign
}

func ParseSelfSigned(string, []byte) (*SelfSigned, error) {
	return nil, errNoSelfSign
}

func DecodeSelfSigned(string) (*SelfSigned, error) {
	return nil, errNoSelfSign
}
