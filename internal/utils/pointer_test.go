package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PointerTestSuite struct {
	suite.Suite
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(PointerTestSuite))
}

func (s *PointerTestSuite) TestGetAndOr() {
	var nilInt *int
	s.Equal(0, Get(nilInt))
	s.Equal(7, Or(nilInt, 7))
	s.Equal(3, Get(Ptr(3)))
	s.Equal(3, Or(Ptr(3), 7))
	s.False(Or(Ptr(false), true))
}

func (s *PointerTestSuite) TestClone() {
	var nilStr *string
	s.Nil(Clone(nilStr))

	orig := Ptr("room")
	cp := Clone(orig)
	s.Require().NotNil(cp)
	s.NotSame(orig, cp)
	*orig = "changed"
	s.Equal("room", *cp)
}
