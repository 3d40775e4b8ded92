package sentiment

import (
	"testing"

	"github.com/sentitube/sentitube/internal/models"
)

func TestBlend_CommentWeightOnly(t *testing.T) {
	// b=0.5, L=10, wComment=1, wReplies=0, wLikes=0 must pass the base
	// score through untouched.
	got := Blend(0.5, 10, nil, models.BlendWeights{Comment: 1}, BlendOptions{})
	if got != 0.5 {
		t.Errorf("Blend() = %v, want 0.5", got)
	}
}

func TestBlend_ZeroReplies(t *testing.T) {
	// With no replies the vote aggregate reduces to the base score:
	// adjusted = clamp(wComment*b + wReplies*b + wLikes*sign(b)*L)
	w := models.BlendWeights{Comment: 0.5, Replies: 0.3, Likes: 0.01}
	b := -0.4
	likes := int64(5)

	want := clamp(w.Comment*b + w.Replies*b + w.Likes*(-1)*float64(likes))
	got := Blend(b, likes, nil, w, BlendOptions{})
	if got != want {
		t.Errorf("Blend() = %v, want %v", got, want)
	}
}

func TestBlend_AllWeightsZero(t *testing.T) {
	replies := []ReplySignal{{Score: 0.9, Likes: 100}}
	got := Blend(0.8, 50, replies, models.BlendWeights{}, BlendOptions{})
	if got != 0 {
		t.Errorf("Blend() with zero weights = %v, want 0", got)
	}
}

func TestBlend_Deterministic(t *testing.T) {
	replies := []ReplySignal{{Score: 0.2, Likes: 3}, {Score: -0.7, Likes: 0}}
	w := models.BlendWeights{Comment: 1, Replies: 0.5, Likes: 0.1}

	first := Blend(0.3, 7, replies, w, BlendOptions{})
	second := Blend(0.3, 7, replies, w, BlendOptions{})
	if first != second {
		t.Errorf("Blend() not deterministic: %v vs %v", first, second)
	}
}

func TestBlend_BoundedUnderExtremeWeights(t *testing.T) {
	tests := []struct {
		name    string
		base    float64
		likes   int64
		weights models.BlendWeights
	}{
		{
			name:    "huge like weight",
			base:    0.9,
			likes:   1000000,
			weights: models.BlendWeights{Comment: 1, Likes: 100},
		},
		{
			name:    "huge negative weights",
			base:    -0.9,
			likes:   500,
			weights: models.BlendWeights{Comment: -1000, Replies: -1000, Likes: -1000},
		},
	}

	replies := []ReplySignal{{Score: 1, Likes: 9999}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.base, tt.likes, replies, tt.weights, BlendOptions{})
			if got < -1 || got > 1 {
				t.Errorf("Blend() = %v, outside [-1, 1]", got)
			}
		})
	}
}

func TestBlend_VoteAggregate(t *testing.T) {
	// parent weight 1+L = 3, one reply weight 1:
	// aggregate = (3*0.6 + 1*(-0.6)) / 4 = 0.3
	replies := []ReplySignal{{Score: -0.6}}
	got := Blend(0.6, 2, replies, models.BlendWeights{Replies: 1}, BlendOptions{})
	if got != 0.3 {
		t.Errorf("Blend() = %v, want 0.3", got)
	}
}

func TestBlend_ReplyLikeVariant(t *testing.T) {
	// With WeightReplyLikes the liked reply dominates the aggregate:
	// (1*0 + 10*1) / 11 vs (1*0 + 1*1) / 2 without it.
	replies := []ReplySignal{{Score: 1, Likes: 9}}
	w := models.BlendWeights{Replies: 1}

	flat := Blend(0, 0, replies, w, BlendOptions{})
	weighted := Blend(0, 0, replies, w, BlendOptions{WeightReplyLikes: true})

	if flat != 0.5 {
		t.Errorf("flat variant = %v, want 0.5", flat)
	}
	if weighted <= flat {
		t.Errorf("reply-like variant should exceed flat variant: %v <= %v", weighted, flat)
	}
}
