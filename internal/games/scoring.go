// Package games scores individual mini-game rounds before they are recorded
// as leaderboard events.
package games

const (
	ResultWin  = "win"
	ResultDraw = "draw"
	ResultLoss = "loss"
)

var ticTacToePoints = map[string]float64{
	ResultWin:  3,
	ResultDraw: 1,
	ResultLoss: 0,
}

// TicTacToeScore maps a round outcome to points. Unrecognized outcomes score
// zero rather than failing.
func TicTacToeScore(result string) float64 {
	return ticTacToePoints[result]
}

// PuzzleScore scores a crossword or word-search round: found count times a
// bounded speed factor, so both accuracy and speed pay off without letting a
// lucky fast round dominate.
func PuzzleScore(correctCount, elapsedSeconds int) float64 {
	return float64(correctCount) * timeFactor(elapsedSeconds)
}

func timeFactor(elapsedSeconds int) float64 {
	if elapsedSeconds < 1 {
		elapsedSeconds = 1
	}
	factor := 120.0 / float64(elapsedSeconds)
	if factor < 0.5 {
		return 0.5
	}
	if factor > 3.0 {
		return 3.0
	}
	return factor
}
