package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid", username: "alice_99"},
		{name: "minimum length", username: "abc"},
		{name: "maximum length", username: strings.Repeat("a", 32)},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 33), wantErr: true},
		{name: "spaces", username: "ali ce", wantErr: true},
		{name: "cyrillic", username: "алиса", wantErr: true},
		{name: "special chars", username: "alice!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
}

func TestValidatePostContent(t *testing.T) {
	assert.NoError(t, ValidatePostContent("hello mesh"))
	assert.NoError(t, ValidatePostContent(strings.Repeat("x", MaxPostLen)))
	assert.Error(t, ValidatePostContent(""))
	assert.Error(t, ValidatePostContent(strings.Repeat("x", MaxPostLen+1)))
}

func TestValidateCommentText(t *testing.T) {
	assert.NoError(t, ValidateCommentText("nice post"))
	assert.Error(t, ValidateCommentText(""))
	assert.Error(t, ValidateCommentText(strings.Repeat("x", MaxCommentLen+1)))
}
