//go:build !daily_noselfsign

package main

import (
	"time"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/meetingtoken"
)

func (s *CLITestSuite) TestTokensSignOffline() {
	s.cli.newDoer = func() (daily.Doer, error) {
		s.FailNow("sign must not build a client")
		return nil, nil
	}

	s.Require().NoError(s.run("tokens", "sign", "--room", "standup", "--valid-for", "30m"))
	var out tokenOutput
	s.decode(&out)

	ss, err := meetingtoken.ParseSelfSigned(out.Token, s.fake.SigningKey())
	s.Require().NoError(err)
	s.Equal(s.fake.DomainID(), ss.DomainID)
	s.Equal(epoch.Unix(), *ss.Claims.NotBefore)
	s.Equal(epoch.Add(30*time.Minute).Unix(), *ss.Claims.Expiry)

	s.Require().NoError(s.run("tokens", "inspect", out.Token))
	var inspected inspectOutput
	s.decode(&inspected)
	s.True(inspected.Verified)
	s.Equal("standup", *inspected.Claims.RoomName)
}

func (s *CLITestSuite) TestTokensSignWithoutKey() {
	s.cli.cfg.Daily.SigningKey = ""
	s.ErrorIs(s.run("tokens", "sign", "--room", "standup"), daily.ErrSigning)
	s.Zero(s.out.Len())
}
