package code

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		addr string
		want Path
	}{
		{"", nil},
		{"gdp", Path{{Plain, "gdp"}}},
		{"pce:g:d", Path{{Plain, "pce"}, {Plain, "g"}, {Plain, "d"}}},
		{"gdp:x+x", Path{{Plain, "gdp"}, {Plain, "x"}, {Plus, "x"}}},
		{"gdp:x-m", Path{{Plain, "gdp"}, {Plain, "x"}, {Minus, "m"}}},
		{"pce#core:s", Path{{Plain, "pce"}, {Partition, "core"}, {Plain, "s"}}},
		{"+x", Path{{Plus, "x"}}},
		{"#c", Path{{Partition, "c"}}},
		{":g", Path{{Plain, "g"}}},
		{"a:b-c:d+e", Path{{Plain, "a"}, {Plain, "b"}, {Minus, "c"}, {Plain, "d"}, {Plus, "e"}}},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			got, err := Parse(tt.addr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.addr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.addr, diff)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		addr   string
		offset int
	}{
		{"a::b", 2},
		{"a:", 2},
		{"+", 1},
		{"gdp:x+-m", 6},
		{"#", 1},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			_, err := Parse(tt.addr)
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Fatalf("Parse(%q): expected *SyntaxError, got %v", tt.addr, err)
			}
			if syn.Offset != tt.offset {
				t.Errorf("Parse(%q): expected offset %d, got %d", tt.addr, tt.offset, syn.Offset)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	for _, addr := range []string{"gdp", "gdp:x+x", "pce#core:s", "+x", "#c", "a:b-c:d+e"} {
		if got := MustParse(addr).String(); got != addr {
			t.Errorf("round trip of %q gave %q", addr, got)
		}
	}
	if got := MustParse(":g:d").String(); got != "g:d" {
		t.Errorf("expected leading ':' to be dropped, got %q", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed address")
		}
	}()
	MustParse("a::")
}
