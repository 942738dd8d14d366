package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintSuccess("Vehicle configured", map[string]string{"Commands": "2"})
	p.PrintError("Decode failed", errors.New("size mismatch"), []string{"Check the byte order"})

	out := buf.String()
	assert.Contains(t, out, "SUCCESS")
	assert.Contains(t, out, "Vehicle configured")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Error: size mismatch")
	assert.Contains(t, out, "Check the byte order")
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).PrintJSON(map[string]int{"version": 1}))
	assert.Equal(t, "{\n  \"version\": 1\n}\n", buf.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"  yes  \n", true},
		{"yes", true},
		{"no\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Remove vehicle", []string{"Nickname is lost"}, "yes")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Remove vehicle") {
			t.Errorf("Confirm(%q) output missing title", tt.input)
		}
	}
}
