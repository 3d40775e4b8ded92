package sentiment

import "github.com/sentitube/sentitube/internal/models"

// ReplySignal carries one reply's contribution to its parent's adjusted
// score.
type ReplySignal struct {
	Score float64
	Likes int64
}

// BlendOptions selects tunable variants of the blending algorithm.
type BlendOptions struct {
	// WeightReplyLikes weights each reply by 1 + its like count instead of
	// a flat 1. Off by default.
	WeightReplyLikes bool
}

// Blend combines a parent comment's base score with its engagement and its
// replies' sentiment into a single adjusted score. Pure and deterministic.
//
// The parent carries weight 1+likes in a vote aggregate over parent and
// replies; likes additionally reinforce the parent's existing polarity via
// sign(base)*likes. The result is clamped to [-1, 1] whatever the weights.
func Blend(base float64, likes int64, replies []ReplySignal, w models.BlendWeights, opts BlendOptions) float64 {
	parentWeight := 1 + float64(likes)
	num := parentWeight * base
	den := parentWeight

	for _, r := range replies {
		rw := 1.0
		if opts.WeightReplyLikes {
			rw = 1 + float64(r.Likes)
		}
		num += rw * r.Score
		den += rw
	}

	voteAggregate := num / den
	likeTerm := sign(base) * float64(likes)

	return clamp(w.Comment*base + w.Replies*voteAggregate + w.Likes*likeTerm)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
