package domain

import "time"

// Goal is one entry of the goal list
type Goal struct {
	ID        string
	Task      string
	CreatedAt time.Time
}

// IndexOf returns the position of the goal with the given id, or -1
func IndexOf(goals []Goal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
