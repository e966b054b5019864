package game

import "context"

// MatchArchive stores finished match results for the history API.
type MatchArchive interface {
	SaveResult(ctx context.Context, res MatchResult) error
	Recent(ctx context.Context, limit int) ([]MatchResult, error)
}
