package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/recipe-box/auth"
	"github.com/jrsteele09/recipe-box/autosave"
	"github.com/jrsteele09/recipe-box/backend"
)

const (
	minReviewRating     = 1
	maxReviewRating     = 5
	maxReviewCommentLen = 2000
)

// ReviewSaver persists a user's review of a recipe.
type ReviewSaver interface {
	SaveReview(ctx context.Context, userID, recipeID string, review backend.Review) error
}

type reviewKey struct {
	UserID   string
	RecipeID string
}

// ReviewDrafts buffers review edits per user and recipe, saving each one once the user
// stops typing, or at once on submit.
type ReviewDrafts struct {
	buffer *autosave.Buffer[reviewKey, backend.Review]
}

func NewReviewDrafts(saver ReviewSaver, idle time.Duration) (*ReviewDrafts, error) {
	if saver == nil {
		return nil, fmt.Errorf("[NewReviewDrafts] review saver is required")
	}
	buffer, err := autosave.New[reviewKey, backend.Review](idle, func(ctx context.Context, key reviewKey, review backend.Review) error {
		return saver.SaveReview(ctx, key.UserID, key.RecipeID, review)
	})
	if err != nil {
		return nil, err
	}
	return &ReviewDrafts{buffer: buffer}, nil
}

// SaveDraft records the latest draft. It is written to the API after the idle delay.
func (d *ReviewDrafts) SaveDraft(userID, recipeID string, review backend.Review) error {
	return d.buffer.Put(reviewKey{UserID: userID, RecipeID: recipeID}, review)
}

// Submit records review and writes it to the API before returning.
func (d *ReviewDrafts) Submit(ctx context.Context, userID, recipeID string, review backend.Review) error {
	key := reviewKey{UserID: userID, RecipeID: recipeID}
	if err := d.buffer.Put(key, review); err != nil {
		return err
	}
	return d.buffer.Flush(ctx, key)
}

// Draft returns the unsaved draft, if any.
func (d *ReviewDrafts) Draft(userID, recipeID string) (backend.Review, bool) {
	return d.buffer.Pending(reviewKey{UserID: userID, RecipeID: recipeID})
}

// Close saves every pending draft and stops accepting new ones.
func (d *ReviewDrafts) Close(ctx context.Context) error {
	return d.buffer.Close(ctx)
}

func validateReview(review *backend.Review) auth.FieldErrors {
	review.Comment = strings.TrimSpace(review.Comment)
	fe := auth.FieldErrors{}
	if review.Rating < minReviewRating || review.Rating > maxReviewRating {
		fe["rating"] = "Rating must be between 1 and 5"
	}
	if utf8.RuneCountInString(review.Comment) > maxReviewCommentLen {
		fe["comment"] = "Comment must be at most 2000 characters"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// reviewRequest resolves the signed-in user and validated review of a review request. On
// failure the response has already been written.
func (s *Server) reviewRequest(w http.ResponseWriter, r *http.Request) (string, backend.Review, bool) {
	user, err := s.sessions.RequireAuth(s.cookieStore(w, r))
	if err != nil {
		writeResult(w, auth.Result[auth.Empty]{Error: "You must be signed in", Code: auth.CodeUnauthenticated})
		return "", backend.Review{}, false
	}
	var review backend.Review
	if !decodeJSON(w, r, &review) {
		return "", backend.Review{}, false
	}
	if fe := validateReview(&review); fe != nil {
		writeResult(w, auth.Result[auth.Empty]{Error: "Invalid data", Code: auth.CodeValidation, FieldErrors: fe})
		return "", backend.Review{}, false
	}
	return user.ID, review, true
}

// ReviewDraftHandler autosaves a review draft (PUT /api/recipes/{id}/review/draft).
func (s *Server) ReviewDraftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, review, ok := s.reviewRequest(w, r)
		if !ok {
			return
		}
		if err := s.reviews.SaveDraft(userID, r.PathValue("id"), review); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("review draft rejected")
			writeJSON(w, http.StatusServiceUnavailable, auth.Result[auth.Empty]{Error: "Drafts are not being accepted right now", Code: auth.CodeUnexpected})
			return
		}
		writeJSON(w, http.StatusAccepted, auth.Result[auth.Empty]{Success: true, Message: "Draft saved"})
	}
}

// ReviewSubmitHandler saves a review immediately (POST /api/recipes/{id}/review).
func (s *Server) ReviewSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, review, ok := s.reviewRequest(w, r)
		if !ok {
			return
		}
		recipeID := r.PathValue("id")
		if err := s.reviews.Submit(r.Context(), userID, recipeID, review); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("recipeID", recipeID).Msg("review could not be saved")
			writeResult(w, auth.Result[auth.Empty]{Error: "Your review could not be saved. Please try again.", Code: auth.CodeUnexpected})
			return
		}
		writeResult(w, auth.Result[auth.Empty]{Success: true, Message: "Review saved"})
	}
}
