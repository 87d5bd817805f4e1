package posts

import "context"

// randomSelector picks a uniformly random post id from committed state.
//
// The repository implements selection by indexed offset sampling: count
// the live rows, draw k in [0, N), and fetch the id at ordinal position
// k under ordering by identifier. Both steps run inside one read-only
// snapshot, so the result is always a post that existed at selection
// time and every live post carries probability exactly 1/N. This avoids
// the ORDER BY RANDOM() full scan, which sorts the whole table per call
// and ties selection to one storage engine's random function.
type randomSelector struct {
	postRepo Repository
}

// NewRandomSelector creates a selector backed by the post repository
func NewRandomSelector(postRepo Repository) RandomSelector {
	return &randomSelector{postRepo: postRepo}
}

func (s *randomSelector) RandomPostID(ctx context.Context) (int64, error) {
	return s.postRepo.RandomID(ctx)
}
