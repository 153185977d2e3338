package store

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newEntityID builds a millisecond timestamp plus a short random base36
// suffix. Collisions are negligible but not cryptographically ruled out.
func newEntityID(now time.Time) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendInt(buf, now.UnixMilli(), 10)
	buf = append(buf, '-')
	for range 6 {
		buf = append(buf, idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return string(buf)
}

// newNoteID is the timestamp alone. Two notes created within the same
// millisecond would collide; the UI flow makes that window irrelevant in
// practice and the format is kept for blob compatibility.
func newNoteID(now time.Time) string {
	return "note-" + strconv.FormatInt(now.UnixMilli(), 10)
}
