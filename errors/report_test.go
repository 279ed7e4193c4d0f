package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  "unauthorized",
		},
		"wrapped registered error": {
			err:      Wrap(ErrNotFound, "transaction 3"),
			wantCode: ErrNotFound.code,
			wantLog:  "transaction 3: not found",
		},
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"stdlib error is hidden": {
			err:      fmt.Errorf("disk on fire"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"panic is hidden": {
			err:      Wrap(ErrPanic, "secret"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Report(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestReportDebug(t *testing.T) {
	code, log := Report(fmt.Errorf("disk on fire"), true)
	assert.Equal(t, internalCode, code)
	assert.Equal(t, "disk on fire", log)

	code, log = Report(Wrap(ErrAmount, "too low"), true)
	assert.Equal(t, ErrAmount.code, code)
	assert.True(t, strings.HasPrefix(log, "too low: invalid amount"), log)
}

func TestCode(t *testing.T) {
	assert.Equal(t, SuccessCode, Code(nil))
	assert.Equal(t, internalCode, Code(fmt.Errorf("std")))
	assert.Equal(t, ErrState.code, Code(Wrapf(Wrap(ErrState, "inner"), "outer %d", 1)))
}
