package common

import (
	"context"
	"strings"

	"vita/internal/core/domain"
	"vita/internal/platform/errors"
)

// Emit trims and dedupes names and sends them as one batch on out. An empty
// result is reported as a *domain.SourceError and nothing is sent. The send
// honours ctx so a stalled consumer cannot pin the caller forever.
func Emit(ctx context.Context, out chan<- []string, source, host string, names []string) (int, error) {
	batch := Dedupe(names)
	if len(batch) == 0 {
		return 0, domain.NewSourceError(source, host, nil)
	}

	select {
	case out <- batch:
		return len(batch), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Dedupe trims values and drops empty and repeated ones, keeping first-seen order.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Classify maps a transport failure onto the source error taxonomy:
//   - errors already classified pass through unchanged
//   - 401/403/429 become *domain.AuthError
//   - context cancellation passes through so the runner can report it
//   - everything else (404, 5xx, timeouts, bad bodies) is a *domain.SourceError
func Classify(source, host string, err error) error {
	if err == nil {
		return nil
	}
	if domain.Classify(err) != domain.KindUnexpected {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.IsAuth(err) {
		return domain.NewAuthError(source, err)
	}
	return domain.NewSourceError(source, host, err)
}

// JoinSub builds "sub.root". An empty sub yields root; a sub that
// already ends with root is returned as-is.
func JoinSub(sub, root string) string {
	sub = strings.TrimSuffix(strings.TrimSpace(sub), ".")
	root = strings.TrimPrefix(strings.TrimSpace(root), ".")
	switch {
	case sub == "":
		return root
	case sub == root, strings.HasSuffix(sub, "."+root):
		return sub
	default:
		return sub + "." + root
	}
}
