package germinal

import (
	"strings"
)

type filterState int

const (
	stateGround filterState = iota
	stateEscape
	stateCSI
	stateString    // OSC, DCS, SOS, PM, APC
	stateStringEsc // ESC seen inside a string
)

// maxPendingCSI bounds how much of an unfinished control sequence is held
// back between reads.
const maxPendingCSI = 256

// OutputFilter scans child output before it reaches the widget. It counts
// bells rung outside of string sequences and, with StripBold set, turns
// SGR bold into normal intensity. Sequences may be split across reads;
// an unfinished CSI sequence is held back until its final byte arrives.
type OutputFilter struct {
	StripBold bool

	state   filterState
	pending []byte
}

// Filter processes one chunk of output and returns the bytes to display
// and the number of bells found.
func (f *OutputFilter) Filter(p []byte) ([]byte, int) {
	out := make([]byte, 0, len(p)+len(f.pending))
	bells := 0

	for _, b := range p {
		// CAN and SUB abort any sequence
		if (b == 0x18 || b == 0x1a) && f.state != stateGround {
			out = append(out, f.pending...)
			out = append(out, b)
			f.reset(stateGround)
			continue
		}

		switch f.state {
		case stateGround:
			switch b {
			case 0x1b:
				f.pending = append(f.pending, b)
				f.state = stateEscape
				continue
			case 0x07:
				bells++
			}
			out = append(out, b)

		case stateEscape, stateStringEsc:
			if b == '[' {
				f.pending = append(f.pending, b)
				f.state = stateCSI
				continue
			}
			out = append(out, f.pending...)
			out = append(out, b)
			switch {
			case b == 0x1b:
				f.pending = append(f.pending[:0], b)
				f.state = stateEscape
				out = out[:len(out)-1]
				continue
			case b == ']' || b == 'P' || b == 'X' || b == '^' || b == '_':
				f.reset(stateString)
			default:
				f.reset(stateGround)
			}

		case stateCSI:
			f.pending = append(f.pending, b)
			if b >= 0x40 && b <= 0x7e {
				out = append(out, f.finishCSI()...)
				f.reset(stateGround)
			} else if len(f.pending) > maxPendingCSI {
				out = append(out, f.pending...)
				f.reset(stateGround)
			}

		case stateString:
			switch b {
			case 0x1b:
				f.pending = append(f.pending, b)
				f.state = stateStringEsc
				continue
			case 0x07:
				f.state = stateGround
			}
			out = append(out, b)
		}
	}
	return out, bells
}

func (f *OutputFilter) reset(state filterState) {
	f.pending = f.pending[:0]
	f.state = state
}

// finishCSI returns the completed sequence in pending, rewritten if needed
func (f *OutputFilter) finishCSI() []byte {
	seq := f.pending
	if !f.StripBold || seq[len(seq)-1] != 'm' {
		return seq
	}

	rewritten, ok := stripBoldParams(string(seq[2 : len(seq)-1]))
	if !ok {
		return seq
	}
	return append([]byte("\x1b["+rewritten), 'm')
}

// stripBoldParams replaces bold (1) with normal intensity (22) in an SGR
// parameter list, skipping the arguments of extended color selections.
func stripBoldParams(params string) (string, bool) {
	if params != "" && strings.ContainsAny(params[:1], "<=>?") {
		return params, false
	}

	parts := strings.Split(params, ";")
	changed := false
	for i := 0; i < len(parts); i++ {
		switch strings.TrimLeft(parts[i], "0") {
		case "1":
			parts[i] = "22"
			changed = true
		case "38", "48", "58":
			if i+1 < len(parts) {
				switch parts[i+1] {
				case "5":
					i += 2
				case "2":
					i += 4
				}
			}
		}
	}
	if !changed {
		return params, false
	}
	return strings.Join(parts, ";"), true
}
