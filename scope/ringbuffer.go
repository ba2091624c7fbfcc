package scope

// RingBuffer keeps the most recent len(Buffer) values written to it. Cursor
// is the index where the oldest value is, and where the next one goes.
type RingBuffer[T any] struct {
	Buffer []T
	Cursor int
}

func (r *RingBuffer[T]) WriteWrap(values []T) {
	if len(r.Buffer) == 0 {
		return
	}
	if len(values) > len(r.Buffer) {
		values = values[len(values)-len(r.Buffer):]
	}
	n := copy(r.Buffer[r.Cursor:], values)
	copy(r.Buffer, values[n:])
	r.Cursor = (r.Cursor + len(values)) % len(r.Buffer)
}

func (r *RingBuffer[T]) WriteWrapSingle(value T) {
	if len(r.Buffer) == 0 {
		return
	}
	r.Buffer[r.Cursor] = value
	r.Cursor = (r.Cursor + 1) % len(r.Buffer)
}

// Ordered appends the contents of the buffer to dst, oldest value first.
func (r *RingBuffer[T]) Ordered(dst []T) []T {
	dst = append(dst, r.Buffer[r.Cursor:]...)
	return append(dst, r.Buffer[:r.Cursor]...)
}
