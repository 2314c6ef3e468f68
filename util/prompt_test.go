package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withInput(t *testing.T, in string) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}
	oldIn, oldOut := Input, Output
	Input, Output = strings.NewReader(in), out
	t.Cleanup(func() { Input, Output = oldIn, oldOut })
	return out
}

func TestPromptYN(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"y\n", false, true},
		{"Y\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"", true, true},
		{"yes\n", false, false},
	}
	for _, tt := range tests {
		withInput(t, tt.in)
		assert.Equal(t, tt.want, PromptYN("Overwrite?", tt.def), "input %q", tt.in)
	}

	out := withInput(t, "\n")
	PromptYN("Overwrite?", true)
	assert.Equal(t, "Overwrite? (Y/n): ", out.String())
}

func TestPromptString(t *testing.T) {
	out := withInput(t, "  celeste \n")
	assert.Equal(t, "celeste", PromptString("Project name", "NewProject"))
	assert.Equal(t, "Project name (NewProject): ", out.String())

	withInput(t, "\n")
	assert.Equal(t, "NewProject", PromptString("Project name", "NewProject"))

	withInput(t, "last")
	assert.Equal(t, "last", PromptString("Project name", "NewProject"))
}
