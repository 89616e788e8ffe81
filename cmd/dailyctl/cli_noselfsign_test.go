//go:build daily_noselfsign

package main

import (
	daily "github.com/imtaco/dailyco-go"
)

func (s *CLITestSuite) TestTokensSignUnsupported() {
	s.cli.newDoer = func() (daily.Doer, error) {
		s.FailNow("sign must not build a client")
		return nil, nil
	}

	s.ErrorIs(s.run("tokens", "sign", "--room", "standup"), daily.ErrUnsupported)
	s.Zero(s.out.Len())
}

func (s *CLITestSuite) TestTokensInspectLocalUnsupported() {
	s.ErrorIs(s.run("tokens", "inspect", "header.payload.signature"), daily.ErrUnsupported)
	s.Zero(s.out.Len())
}
