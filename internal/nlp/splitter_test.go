package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "search and question",
			input: "Show me villas in Dubai and what's the average price?",
			want:  []string{"Show me villas in Dubai", "what's the average price?"},
		},
		{
			name:  "conjunction inside a single request",
			input: "3 bedroom and 2 bathroom villa in Arabian Ranches",
			want:  []string{"3 bedroom and 2 bathroom villa in Arabian Ranches"},
		},
		{
			name:  "question mark boundary",
			input: "How many villas are in JVC? What is the price range?",
			want:  []string{"How many villas are in JVC?", "What is the price range?"},
		},
		{
			name:  "three parts",
			input: "find apartments in Marina and how many are there, and can I afford one",
			want:  []string{"find apartments in Marina", "how many are there", "can I afford one"},
		},
		{
			name:  "single question",
			input: "What is the average price in Business Bay?",
			want:  []string{"What is the average price in Business Bay?"},
		},
		{
			name:  "empty",
			input: "   ",
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input))
		})
	}
}
