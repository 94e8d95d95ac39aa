package germinal

import (
	"testing"
)

func runFilter(f *OutputFilter, chunks ...string) (string, int) {
	var out []byte
	bells := 0
	for _, c := range chunks {
		o, b := f.Filter([]byte(c))
		out = append(out, o...)
		bells += b
	}
	return string(out), bells
}

func TestFilterBells(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		bells  int
	}{
		{"plain", []string{"ding\a"}, 1},
		{"two", []string{"\a\a"}, 2},
		{"osc title", []string{"\x1b]0;title\a"}, 0},
		{"osc split", []string{"\x1b]0;ti", "tle\a", "\a"}, 1},
		{"osc st", []string{"\x1b]2;x\x1b\\\a"}, 1},
		{"dcs", []string{"\x1bPq\a\x1b\\"}, 0},
		{"esc split", []string{"\x1b", "]0;t\a"}, 0},
		{"cancelled osc", []string{"\x1b]0;t\x18\a"}, 1},
		{"csi", []string{"\x1b[2J\a"}, 1},
	}

	for _, tt := range tests {
		f := &OutputFilter{}
		out, bells := runFilter(f, tt.chunks...)
		if bells != tt.bells {
			t.Errorf("%s: bells = %d, want %d", tt.name, bells, tt.bells)
		}
		in := ""
		for _, c := range tt.chunks {
			in += c
		}
		if out != in {
			t.Errorf("%s: output %q, want it unchanged %q", tt.name, out, in)
		}
	}
}

func TestFilterStripBold(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{"bold", []string{"\x1b[1mhi"}, "\x1b[22mhi"},
		{"bold with color", []string{"\x1b[1;31m"}, "\x1b[22;31m"},
		{"leading zero", []string{"\x1b[01;32m"}, "\x1b[22;32m"},
		{"indexed color", []string{"\x1b[38;5;1m"}, "\x1b[38;5;1m"},
		{"indexed color then bold", []string{"\x1b[38;5;1;1m"}, "\x1b[38;5;1;22m"},
		{"rgb color", []string{"\x1b[48;2;1;1;1m"}, "\x1b[48;2;1;1;1m"},
		{"reset", []string{"\x1b[0m"}, "\x1b[0m"},
		{"not sgr", []string{"\x1b[1A"}, "\x1b[1A"},
		{"private", []string{"\x1b[?1h"}, "\x1b[?1h"},
		{"split", []string{"a\x1b", "[", "1", "mb"}, "a\x1b[22mb"},
		{"esc ends osc", []string{"\x1b]0;\x1b[1m"}, "\x1b]0;\x1b[22m"},
	}

	for _, tt := range tests {
		f := &OutputFilter{StripBold: true}
		if out, _ := runFilter(f, tt.chunks...); out != tt.want {
			t.Errorf("%s: output %q, want %q", tt.name, out, tt.want)
		}
	}
}

func TestFilterHoldsUnfinishedSequence(t *testing.T) {
	f := &OutputFilter{StripBold: true}

	out, _ := f.Filter([]byte("x\x1b[1"))
	if string(out) != "x" {
		t.Fatalf("first chunk = %q, want %q", out, "x")
	}
	out, _ = f.Filter([]byte(";4m"))
	if string(out) != "\x1b[22;4m" {
		t.Errorf("second chunk = %q", out)
	}
}
