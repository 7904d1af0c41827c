package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/recipe-box/backend"
	apperrors "github.com/jrsteele09/recipe-box/internal/errors"
)

// statusErrors maps identity API statuses to the failure an action reports.
type statusErrors map[int]*ActionError

// action describes one auth operation for run.
type action[I any, O any] struct {
	name string
	// validate normalizes the input in place and returns per-field problems
	validate func(*I) FieldErrors
	handler  func(ctx context.Context, in I) (O, error)
	message  func(O) string
	statuses statusErrors
}

// run validates, executes and converts the outcome into a Result. Nothing escapes as an error.
func run[I any, O any](ctx context.Context, a action[I, O], in I) Result[O] {
	if a.validate != nil {
		if fe := a.validate(&in); fe != nil {
			log.Debug().Str("action", a.name).Interface("fields", fe).Msg("auth action rejected input")
			return invalid[O](fe)
		}
	}

	out, err := a.handler(ctx, in)
	if err != nil {
		ae := a.transform(err)
		return fail[O](ae.Code, ae.Message)
	}

	msg := ""
	if a.message != nil {
		msg = a.message(out)
	}
	return succeed(out, msg)
}

func (a action[I, O]) transform(err error) *ActionError {
	var ae *ActionError
	if apperrors.As(err, &ae) {
		log.Debug().Str("action", a.name).Str("code", string(ae.Code)).Msg("auth action failed")
		return ae
	}

	switch {
	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		return actionErr(CodeUnauthenticated, msgUnauthenticated)
	case apperrors.Is(err, apperrors.ErrRateLimited):
		return actionErr(CodeRateLimited, msgRateLimited)
	case apperrors.Is(err, apperrors.ErrInvalidOAuthState):
		return actionErr(CodeOAuthState, msgOAuthState)
	}

	status := backend.StatusCode(err)
	if mapped, ok := a.statuses[status]; ok {
		log.Debug().Str("action", a.name).Int("status", status).Msg("identity API refused auth action")
		return mapped
	}
	if status == http.StatusUnprocessableEntity {
		return actionErr(CodeValidation, msgInvalidInput)
	}
	if status == http.StatusTooManyRequests {
		return actionErr(CodeRateLimited, msgRateLimited)
	}

	log.Err(err).Str("action", a.name).Int("status", status).Msg("auth action failed unexpectedly")
	return actionErr(CodeUnexpected, msgUnexpected)
}

func staticMessage[O any](msg string) func(O) string {
	return func(O) string { return msg }
}
