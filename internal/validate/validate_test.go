package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"latin two words", "Ali Valiyev", true},
		{"cyrillic two words", "Али Валиев", true},
		{"three words", "Ali Vali Aliyev", true},
		{"single word", "Ali", false},
		{"digits", "Ali 123", false},
		{"empty", "", false},
		{"only spaces", "   ", false},
		{"too long", strings.Repeat("a", 30) + " " + strings.Repeat("b", 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FullName(tt.input), "input %q", tt.input)
		})
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"full international", "+998901234567", true},
		{"no plus", "998901234567", true},
		{"local prefix", "8901234567", true},
		{"bare nine digits", "901234567", true},
		{"with spaces", "+998 90 123 45 67", true},
		{"with dashes", "+998-90-123-45-67", true},
		{"too short", "+99890123", false},
		{"letters", "+99890abcdefg", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Phone(tt.input), "input %q", tt.input)
		})
	}
}

func TestTicketText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  TextIssue
	}{
		{"valid", "Yotoqxonada issiq suv yo'q, iltimos hal qiling.", TextOK},
		{"exactly ten chars", "0123456789", TextOK},
		{"cyrillic counted as characters", strings.Repeat("д", 10), TextOK},
		{"too short", "qisqa", TextTooShort},
		{"whitespace only", "          ", TextTooShort},
		{"too long", strings.Repeat("a", 1001), TextTooLong},
		{"cyrillic under byte limit but over char limit", strings.Repeat("д", 1001), TextTooLong},
		{"repeated characters", strings.Repeat("a", 30), TextSpam},
		{"all caps shouting", "THIS IS VERY IMPORTANT!!!!!", TextSpam},
		{"contains url", "iltimos bu saytga qarang https://example.com juda muhim", TextSpam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TicketText(tt.input), "input %q", tt.input)
		})
	}
}
