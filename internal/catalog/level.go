package catalog

import "fmt"

// Level is a difficulty level within a topic, 1 (Beginner) through 5 (Master).
type Level int

const (
	Beginner Level = iota + 1
	Intermediate
	Advanced
	Expert
	Master
)

// MinLevel and MaxLevel bound the valid level range.
const (
	MinLevel = Beginner
	MaxLevel = Master
)

var levelNames = map[Level]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	Expert:       "Expert",
	Master:       "Master",
}

// String returns the display name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Valid reports whether l is within MinLevel..MaxLevel.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// AllLevels returns every level in ascending order.
func AllLevels() []Level {
	return []Level{Beginner, Intermediate, Advanced, Expert, Master}
}
