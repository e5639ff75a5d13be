package middleware

import (
	"context"
	"net/http"

	"github.com/jcallaghan/betpool/internal/api/apierr"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/operator"
)

type contextKey string

const memberContextKey contextKey = "member_id"

// memberHeader carries the acting member's identity, validated by the
// chat-platform collaborator in front of this API
const memberHeader = "X-Member-ID"

// Identify extracts the acting member from the request header and stores
// it in the request context. Requests without an identity are rejected.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(memberHeader)
		if id == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}

		ctx := context.WithValue(r.Context(), memberContextKey, model.MemberID(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOperator creates middleware that only lets configured operators
// through. It assumes Identify has already run.
func RequireOperator(checker operator.Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := MemberID(r.Context())
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if !checker.IsOperator(id) {
				apierr.WriteError(w, apierr.NewNotOperatorError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MemberID returns the acting member from the context
func MemberID(ctx context.Context) (model.MemberID, bool) {
	id, ok := ctx.Value(memberContextKey).(model.MemberID)
	return id, ok
}

// MustMemberID returns the acting member, panicking if Identify did not run
func MustMemberID(ctx context.Context) model.MemberID {
	id, ok := MemberID(ctx)
	if !ok {
		panic("member id missing from context")
	}
	return id
}
