//go:build daily_noselfsign

package meetingtoken

import (
	"testing"

	"github.com/stretchr/testify/require"

	daily "github.com/imtaco/dailyco-go"
)

func TestSelfSignDisabled(t *testing.T) {
	require.False(t, SelfSignSupported)

	token, err := New().RoomName("standup").SelfSign("domain", []byte("key"))
	require.ErrorIs(t, err, daily.ErrUnsupported)
	require.Empty(t, token)

	_, err = Sign(&Claims{}, "domain", []byte("key"))
	require.ErrorIs(t, err, daily.ErrUnsupported)
	_, err = ParseSelfSigned("a.b.c", []byte("key"))
	require.ErrorIs(t, err, daily.ErrUnsupported)
	_, err = DecodeSelfSigned("a.b.c")
	require.ErrorIs(t, err, daily.ErrUnsupported)
}
