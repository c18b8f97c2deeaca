package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"crimescope/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := MissingRequiredField("date", []string{"occurred_at", "date"})
	wrapped := Wrap(base, "normalization failed")

	assert.Equal(t, CodeMissingRequiredField, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeMissingRequiredField))
	assert.True(t, core.IsMissingRequiredField(wrapped))
	assert.Contains(t, wrapped.Error(), "Add one of: occurred_at, date")
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrap(stderrors.New("disk full"), "write chart")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "write chart: disk full", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestSourceNotFound(t *testing.T) {
	err := SourceNotFound("sample_crime.csv", []string{"missing.csv", "sample_crime.csv"})

	assert.True(t, core.IsSourceNotFound(err))
	assert.Equal(t, CodeSourceNotFound, err.Code)
	assert.Contains(t, err.Error(), "Provide --csv path or include sample_crime.csv")
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("run: %w", UnsupportedSource("data.parquet"))

	assert.True(t, HasCode(err, CodeUnsupportedSource))
	assert.False(t, HasCode(err, CodeSourceNotFound))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("topk must be positive"))

	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestWithHint(t *testing.T) {
	err := MissingRequiredField("date", []string{"date"})

	hinted := WithHint(err, "Try --date-column when")
	assert.Equal(t, CodeMissingRequiredField, GetCode(hinted))
	assert.Contains(t, hinted.Error(), "Add one of: date. Try --date-column when")
	assert.True(t, core.IsMissingRequiredField(hinted))

	assert.Equal(t, error(err), WithHint(err, ""))
}
