package workflow

import (
	"testing"

	"github.com/InQaaaaGit/shorten_form.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdit(t *testing.T) {
	t.Run("updates input and keeps previous result", func(t *testing.T) {
		s := FormState{ShortURLResult: "http://sho.rt/a", Phase: PhaseSucceeded}
		s = Edit(s, "https://example.com")
		assert.Equal(t, "https://example.com", s.LongURLInput)
		assert.Equal(t, "http://sho.rt/a", s.ShortURLResult)
		assert.Equal(t, PhaseSucceeded, s.Phase)
	})

	t.Run("keeps previous error", func(t *testing.T) {
		s := FormState{ErrorMessage: MsgInvalidURL, Phase: PhaseFailed, Failure: models.KindValidation}
		s = Edit(s, "x")
		assert.Equal(t, MsgInvalidURL, s.ErrorMessage)
		assert.Equal(t, models.KindValidation, s.Failure)
	})

	t.Run("ignored while submitting", func(t *testing.T) {
		s := FormState{LongURLInput: "https://a.com", IsSubmitting: true, Phase: PhaseSubmitting}
		assert.Equal(t, s, Edit(s, "changed"))
	})
}

func TestBeginPreconditions(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		configured bool
		wantErr    error
		wantKind   models.ErrorKind
		wantMsg    string
	}{
		{
			name:       "unconfigured with valid input",
			input:      "https://example.com",
			configured: false,
			wantErr:    ErrConfigurationMissing,
			wantKind:   models.KindConfiguration,
			wantMsg:    MsgConfigurationMissing,
		},
		{
			name:       "unconfigured with empty input",
			input:      "",
			configured: false,
			wantErr:    ErrConfigurationMissing,
			wantKind:   models.KindConfiguration,
			wantMsg:    MsgConfigurationMissing,
		},
		{
			name:       "empty input",
			input:      "",
			configured: true,
			wantErr:    ErrInputRequired,
			wantKind:   models.KindValidation,
			wantMsg:    MsgInputRequired,
		},
		{
			name:       "not a URL",
			input:      "example.com",
			configured: true,
			wantErr:    ErrInvalidURL,
			wantKind:   models.KindValidation,
			wantMsg:    MsgInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := FormState{LongURLInput: tt.input, ShortURLResult: "http://sho.rt/old", Phase: PhaseSucceeded}

			next, req, err := Begin(prev, tt.configured)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var failure *FailureError
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.wantKind, failure.Kind)

			assert.Nil(t, req)
			assert.Equal(t, PhaseFailed, next.Phase)
			assert.False(t, next.IsSubmitting)
			assert.Equal(t, tt.wantMsg, next.ErrorMessage)
			assert.Empty(t, next.ShortURLResult)
			assert.Equal(t, tt.input, next.LongURLInput)
		})
	}
}

func TestBeginEntersSubmitting(t *testing.T) {
	prev := FormState{
		LongURLInput: "https://example.com/long",
		ErrorMessage: "quota exceeded",
		Phase:        PhaseFailed,
		Failure:      models.KindService,
	}

	next, req, err := Begin(prev, true)

	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, "https://example.com/long", req.LongURL)
	assert.True(t, next.IsSubmitting)
	assert.Equal(t, PhaseSubmitting, next.Phase)
	assert.Empty(t, next.ErrorMessage)
	assert.Empty(t, next.ShortURLResult)
	assert.Equal(t, models.KindNone, next.Failure)
}

func TestBeginWhileSubmitting(t *testing.T) {
	prev := FormState{LongURLInput: "https://example.com", IsSubmitting: true, Phase: PhaseSubmitting}

	next, req, err := Begin(prev, true)

	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Nil(t, req)
	assert.Equal(t, prev, next)
}

func TestResolve(t *testing.T) {
	submitting := FormState{LongURLInput: "https://example.com", IsSubmitting: true, Phase: PhaseSubmitting}

	t.Run("success", func(t *testing.T) {
		s := Resolve(submitting, models.ShortenSuccess("http://sho.rt/abc123"))
		assert.Equal(t, "http://sho.rt/abc123", s.ShortURLResult)
		assert.Empty(t, s.LongURLInput)
		assert.Empty(t, s.ErrorMessage)
		assert.False(t, s.IsSubmitting)
		assert.Equal(t, PhaseSucceeded, s.Phase)
	})

	t.Run("service error with detail", func(t *testing.T) {
		s := Resolve(submitting, models.ShortenFailure(models.KindService, "quota exceeded"))
		assert.Equal(t, "quota exceeded", s.ErrorMessage)
		assert.Empty(t, s.ShortURLResult)
		assert.Equal(t, "https://example.com", s.LongURLInput)
		assert.False(t, s.IsSubmitting)
		assert.Equal(t, PhaseFailed, s.Phase)
		assert.Equal(t, models.KindService, s.Failure)
	})

	t.Run("failure without detail uses fallback", func(t *testing.T) {
		s := Resolve(submitting, models.ShortenFailure(models.KindTransport, ""))
		assert.Equal(t, MsgShortenFailed, s.ErrorMessage)
		assert.Equal(t, models.KindTransport, s.Failure)
	})

	t.Run("empty short url is a failure", func(t *testing.T) {
		s := Resolve(submitting, models.ShortenSuccess(""))
		assert.Equal(t, PhaseFailed, s.Phase)
		assert.Equal(t, MsgShortenFailed, s.ErrorMessage)
		assert.Equal(t, models.KindService, s.Failure)
	})

	t.Run("ignored outside submitting", func(t *testing.T) {
		idle := FormState{LongURLInput: "https://example.com"}
		assert.Equal(t, idle, Resolve(idle, models.ShortenSuccess("http://sho.rt/x")))
	})
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "succeeded", PhaseSucceeded.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}
