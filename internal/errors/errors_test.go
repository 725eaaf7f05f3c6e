package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/forgelight/forge-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "item not found",
			expected: "NOT_FOUND: item not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("item not found").
		WithMeta("item_id", "123").
		WithMeta("director_id", "456")

	s.Assert().Equal("123", err.Meta["item_id"])
	s.Assert().Equal("456", err.Meta["director_id"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("ruleset not found").WithMeta("ruleset_id", "core")
	wrapped := errors.Wrap(base, "failed to load rules")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("failed to load rules", wrapped.Message)
	s.Assert().Equal("core", wrapped.Meta["ruleset_id"])
	s.Assert().True(errors.Is(wrapped, base))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "redis unavailable")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Contains(wrapped.Error(), "connection refused")
}

func (s *ErrorsTestSuite) TestWrapNilReturnsNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestWrapWithCodeOverridesCode() {
	base := fmt.Errorf("redis: nil")
	wrapped := errors.WrapWithCode(base, errors.CodeNotFound, "item not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeAlreadyExists, errors.GetCode(errors.AlreadyExists("dup")))
}

func (s *ErrorsTestSuite) TestTypeCheckHelpers() {
	s.Assert().True(errors.IsNotFound(errors.NotFoundf("item %s not found", "abc")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgument("bad")))
	s.Assert().True(errors.IsAlreadyExists(errors.AlreadyExistsf("item %s exists", "abc")))
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPrecondition("not ready")))
	s.Assert().True(errors.IsUnavailable(errors.Unavailablef("redis down: %s", "timeout")))
	s.Assert().False(errors.IsNotFound(errors.Internal("boom")))
}

func (s *ErrorsTestSuite) TestUnwrap() {
	base := fmt.Errorf("root cause")
	wrapped := errors.Wrapf(base, "context %d", 1)

	s.Assert().Equal(base, wrapped.Unwrap())
}
