package testenv

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

type MatchBackendErrorMatcher struct {
	Error error
}

// Match compares the error text, so it works on errors that crossed the wire
// as gRPC statuses.
func (matcher *MatchBackendErrorMatcher) Match(actual interface{}) (success bool, err error) {
	e, ok := actual.(error)
	if !ok {
		return false, fmt.Errorf("MatchBackendError matcher requires an error, got:\n%s", format.Object(actual, 1))
	}

	return strings.Contains(e.Error(), matcher.Error.Error()), nil
}

func (matcher *MatchBackendErrorMatcher) FailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "to be", matcher.Error.Error())
}

func (matcher *MatchBackendErrorMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "not to be", matcher.Error.Error())
}

func MatchBackendError(err error) types.GomegaMatcher {
	return &MatchBackendErrorMatcher{
		Error: err,
	}
}
