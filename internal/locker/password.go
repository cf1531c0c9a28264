package locker

// MaxPassword is the most characters the password buffer holds.
const MaxPassword = 255

// passwordBuffer holds typed characters until submit. Removed characters are
// overwritten before the backing array is reused or dropped.
type passwordBuffer struct {
	runes []rune
}

func newPasswordBuffer() *passwordBuffer {
	return &passwordBuffer{runes: make([]rune, 0, MaxPassword)}
}

// Push appends r and reports whether there was room for it.
func (b *passwordBuffer) Push(r rune) bool {
	if len(b.runes) >= MaxPassword {
		return false
	}
	b.runes = append(b.runes, r)
	return true
}

// Pop removes the last character and reports whether there was one.
func (b *passwordBuffer) Pop() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes[len(b.runes)-1] = 0
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

// Clear empties the buffer and reports whether it held anything.
func (b *passwordBuffer) Clear() bool {
	had := len(b.runes) > 0
	clear(b.runes[:cap(b.runes)])
	b.runes = b.runes[:0]
	return had
}

// Take returns the buffered password and clears the buffer.
func (b *passwordBuffer) Take() string {
	s := string(b.runes)
	b.Clear()
	return s
}

func (b *passwordBuffer) Len() int { return len(b.runes) }
