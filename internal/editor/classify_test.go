package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgallion1/resumeforge/internal/document"
)

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"PROJECT EXPERIENCE", true},
		{"  EDUCATION  ", true},
		{"SKILLS", true},
		{"AWS1", true},
		{"AWS", false},
		{"Project Experience", false},
		{"2020 - 2024", false},
		{"----", false},
		{"", false},
		{"ÉTUDES", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSectionHeader(tt.text))
		})
	}
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, IsBulletLine("• Built a thing"))
	assert.True(t, IsBulletLine("   - Built a thing"))
	assert.False(t, IsBulletLine("Built - a thing"))
	assert.False(t, IsBulletLine(""))
	assert.False(t, IsBulletLine("* starred"))
}

func TestIsTitleLike(t *testing.T) {
	tests := []struct {
		name string
		runs []document.Run
		want bool
	}{
		{"bold run", []document.Run{{Text: "Resume Editor", Bold: true}}, true},
		{"bold bullet", []document.Run{{Text: "• bold bullet", Bold: true}}, true},
		{"bold whitespace only", []document.Run{{Text: "  ", Bold: true}, {Text: "plain"}}, false},
		{"pipe separator", []document.Run{{Text: "Resume Editor | Go"}}, true},
		{"en dash separator", []document.Run{{Text: "Resume Editor – 2024"}}, true},
		{"hyphen separator", []document.Run{{Text: "Resume Editor - 2024"}}, true},
		{"hyphen bullet", []document.Run{{Text: "- did a thing - fast"}}, false},
		{"plain", []document.Run{{Text: "Summary bullet A"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := document.New()
			p := f.InsertBefore(0)
			for _, r := range tt.runs {
				p.AddRun(r)
			}
			assert.Equal(t, tt.want, IsTitleLike(p))
		})
	}
}
