package models

// BlendWeights are the caller-supplied weights for the adjusted score.
type BlendWeights struct {
	Comment float64 `json:"wComment"`
	Replies float64 `json:"wReplies"`
	Likes   float64 `json:"wLikes"`
}

// ScoredResult is the full payload produced by one ingest+score cycle.
// This is what gets cached and returned from /comments_scored.
type ScoredResult struct {
	VideoID            string          `json:"videoId"`
	Model              string          `json:"model"`
	Weights            BlendWeights    `json:"weights"`
	TotalPositive      int             `json:"totalPositive"`
	TotalNegative      int             `json:"totalNegative"`
	TotalNeutral       int             `json:"totalNeutral"`
	TotalScore         float64         `json:"totalScore"`
	TotalAdjustedScore float64         `json:"totalAdjustedScore"`
	Comments           []CommentThread `json:"comments"`
}
