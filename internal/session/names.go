package session

import (
	"fmt"
	"math/rand/v2"
)

var (
	nameAdjectives = []string{"mighty", "curious", "speedy", "brave", "smart"}
	nameNouns      = []string{"eagle", "panda", "rabbit", "lion", "fox"}
)

// GenerateName returns a human-friendly test name such as "brave-fox-42".
func GenerateName(r *rand.Rand) string {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return fmt.Sprintf("%s-%s-%02d",
		nameAdjectives[r.IntN(len(nameAdjectives))],
		nameNouns[r.IntN(len(nameNouns))],
		1+r.IntN(99),
	)
}
