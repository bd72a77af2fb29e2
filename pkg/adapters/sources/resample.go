package sources

import "io"

// resampler converts a reader to another sample rate by linear
// interpolation between neighbouring input frames.
type resampler struct {
	src   pcmReader
	rate  int
	ch    int
	ratio float64 // input frames per output frame

	k     int64     // next output frame
	start int64     // input index of the first frame in win
	win   []float64 // buffered input frames
	tmp   []float64
	eof   bool
}

const resampleBlock = 1024

func newResampler(src pcmReader, rate int) *resampler {
	ch := src.channels()
	return &resampler{
		src:   src,
		rate:  rate,
		ch:    ch,
		ratio: float64(src.sampleRate()) / float64(rate),
		tmp:   make([]float64, resampleBlock*ch),
	}
}

func (r *resampler) sampleRate() int { return r.rate }
func (r *resampler) channels() int   { return r.ch }
func (r *resampler) close() error    { return r.src.close() }

func (r *resampler) frames() int64 {
	n := r.src.frames()
	if n < 0 {
		return -1
	}
	in := int64(r.src.sampleRate())
	return (n*int64(r.rate) + in - 1) / in
}

func (r *resampler) buffered() int64 { return int64(len(r.win) / r.ch) }

func (r *resampler) read(out []float64) (int, error) {
	ch := r.ch
	n := 0
	for n < len(out)/ch {
		pos := float64(r.k) * r.ratio
		i := int64(pos)

		for !r.eof && i+1 >= r.start+r.buffered() {
			if err := r.fill(i); err != nil {
				return n, err
			}
		}

		end := r.start + r.buffered()
		if i >= end {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		j := i + 1
		if j >= end {
			j = i
		}

		frac := pos - float64(i)
		a := r.win[(i-r.start)*int64(ch):]
		b := r.win[(j-r.start)*int64(ch):]
		for c := 0; c < ch; c++ {
			out[n*ch+c] = a[c]*(1-frac) + b[c]*frac
		}
		n++
		r.k++
	}
	return n, nil
}

// fill drops frames before need and appends one block from the source.
func (r *resampler) fill(need int64) error {
	if drop := min(need-r.start, r.buffered()); drop > 0 {
		r.win = append(r.win[:0], r.win[drop*int64(r.ch):]...)
		r.start += drop
	}
	m, err := r.src.read(r.tmp)
	r.win = append(r.win, r.tmp[:m*r.ch]...)
	if err == io.EOF {
		r.eof = true
		return nil
	}
	return err
}
