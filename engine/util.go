package engine

import "fmt"

// ScoreString renders a search score for display: "mate N" (negative when
// the side to move is being mated) or the raw centipawn value.
func ScoreString(score int32) string {
	if score > mateBound {
		return fmt.Sprintf("mate %d", (Mate-score+1)/2)
	}
	if score < -mateBound {
		return fmt.Sprintf("mate %d", -(Mate+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// IsMateScore reports whether a score encodes a forced king capture.
func IsMateScore(score int32) bool {
	return score > mateBound || score < -mateBound
}
