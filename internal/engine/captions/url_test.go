package captions

import (
	"strings"
	"testing"
)

func TestStripExp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"exp param removed",
			"https://y/t?v=abc&exp=xpe&lang=en",
			"https://y/t?v=abc&lang=en",
		},
		{
			"exp removed from sparams list, siblings kept",
			"https://y/t?sparams=ip,ipbits,exp,expire&exp=xpe",
			"https://y/t?sparams=ip,ipbits,expire",
		},
		{
			"exp first in sparams",
			"https://y/t?sparams=exp,ip&exp=xpe",
			"https://y/t?sparams=ip",
		},
		{
			"sparams dropped whole when exp was its only value",
			"https://y/t?v=abc&sparams=exp&exp=xpe",
			"https://y/t?v=abc",
		},
		{
			"no exp untouched",
			"https://y/t?v=abc&lang=en",
			"https://y/t?v=abc&lang=en",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripExp(tt.in); got != tt.want {
				t.Errorf("StripExp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURLVariants(t *testing.T) {
	withExp := "https://y/t?v=abc&exp=xpe"
	variants := URLVariants(withExp)
	if len(variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(variants))
	}
	if variants[0].Tag != "no-exp" || strings.Contains(variants[0].URL, "exp=") {
		t.Errorf("first variant should be stripped: %+v", variants[0])
	}
	if variants[1].Tag != "original" || variants[1].URL != withExp {
		t.Errorf("second variant should be the original: %+v", variants[1])
	}

	plain := "https://y/t?v=abc"
	variants = URLVariants(plain)
	if len(variants) != 1 || variants[0].URL != plain {
		t.Errorf("plain URL should yield one unmodified variant: %+v", variants)
	}
}

func TestFormatOrder(t *testing.T) {
	want := []string{"json3", "srv3", ""}
	if len(Formats) != len(want) {
		t.Fatalf("got %d formats, want %d", len(Formats), len(want))
	}
	for i, f := range want {
		if Formats[i] != f {
			t.Errorf("Formats[%d] = %q, want %q", i, Formats[i], f)
		}
	}
}

func TestWithFormat(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		format string
		want   string
	}{
		{"append", "https://y/t?v=abc", "json3", "https://y/t?v=abc&fmt=json3"},
		{"replace", "https://y/t?v=abc&fmt=srv1", "srv3", "https://y/t?v=abc&fmt=srv3"},
		{"default leaves url alone", "https://y/t?v=abc&fmt=srv1", "", "https://y/t?v=abc&fmt=srv1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithFormat(tt.url, tt.format); got != tt.want {
				t.Errorf("WithFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTag(t *testing.T) {
	if FormatTag("") != "default" || FormatTag("json3") != "json3" {
		t.Error("FormatTag naming wrong")
	}
}
