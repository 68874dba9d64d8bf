package massenger

// frameBuffer holds exactly one frame, overwritten in place by each
// receive cycle.
type frameBuffer struct {
	data     []byte
	length   int  // bytes of the current frame, length <= len(data)
	cursor   int  // start of the next unread argument, cursor <= length
	escaping bool // the previous byte was SLIP ESC
}

func newFrameBuffer(size int) frameBuffer {
	return frameBuffer{data: make([]byte, size)}
}

func (f *frameBuffer) reset() {
	f.length, f.cursor, f.escaping = 0, 0, false
}

func (f *frameBuffer) capacity() int {
	return len(f.data)
}

func (f *frameBuffer) write(b byte) bool {
	if f.length >= len(f.data) {
		return false
	}
	f.data[f.length] = b
	f.length++
	return true
}

func (f *frameBuffer) endsWithNUL() bool {
	return f.length > 0 && f.data[f.length-1] == 0
}

func (f *frameBuffer) hasNext() bool {
	return f.cursor < f.length
}

// skipToken moves the cursor one past the NUL ending the token under it.
// Without a NUL inside the frame the cursor stops at the frame end.
func (f *frameBuffer) skipToken() bool {
	for f.cursor < f.length && f.data[f.cursor] != 0 {
		f.cursor++
	}
	if f.cursor < f.length {
		f.cursor++
	}
	return f.hasNext()
}

// complete positions the cursor on the first argument after the address.
func (f *frameBuffer) complete() bool {
	f.cursor = 0
	f.skipToken()
	return true
}

// token returns the bytes from pos up to the next NUL or the frame end.
func (f *frameBuffer) token(pos int) []byte {
	end := pos
	for end < f.length && f.data[end] != 0 {
		end++
	}
	return f.data[pos:end]
}

func (f *frameBuffer) address() string {
	return string(f.token(0))
}

func (f *frameBuffer) frame() []byte {
	return f.data[:f.length]
}

func (f *frameBuffer) remaining() []byte {
	return f.data[f.cursor:f.length]
}

// take returns the next n bytes and advances the cursor. Fewer than n bytes
// left consumes the rest of the frame and returns nil.
func (f *frameBuffer) take(n int) []byte {
	if f.cursor+n > f.length {
		f.cursor = f.length
		return nil
	}
	b := f.data[f.cursor : f.cursor+n]
	f.cursor += n
	return b
}
