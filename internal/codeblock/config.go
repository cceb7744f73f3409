package codeblock

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config describes one code block.
type Config struct {
	Language        string        `yaml:"language" json:"language"`
	Title           string        `yaml:"title,omitempty" json:"title,omitempty"`
	TypingEffect    bool          `yaml:"typing" json:"typingEffect"`
	TypingSpeed     time.Duration `yaml:"typing_speed" json:"typingSpeed"`
	ShowLineNumbers bool          `yaml:"line_numbers" json:"showLineNumbers"`
	HighlightLines  LineSet       `yaml:"highlight_lines,omitempty" json:"highlightLines,omitempty"`
}

// DefaultTypingSpeed is the per-character delay of the typing effect.
const DefaultTypingSpeed = 30 * time.Millisecond

// LineSet is a set of 1-based line numbers.
type LineSet map[int]bool

// ParseLines parses line lists like "2,4-6".
func ParseLines(list string) (LineSet, error) {
	set := LineSet{}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || a < 1 {
			return nil, fmt.Errorf("invalid line %q", part)
		}
		b := a
		if isRange {
			b, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || b < a {
				return nil, fmt.Errorf("invalid line range %q", part)
			}
		}
		for n := a; n <= b; n++ {
			set[n] = true
		}
	}
	return set, nil
}

// String formats the set back into range notation.
func (s LineSet) String() string {
	nums := make([]int, 0, len(s))
	for n, ok := range s {
		if ok {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	var parts []string
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(nums[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", nums[i], nums[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
