package command

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minSecretLength is the shortest secret Mask will replace.
const minSecretLength = 3

// Masker hides secret values in rendered commands.
type Masker struct {
	// MaskChar is the character used for masking
	MaskChar rune
	// MinMaskLength is minimum number of mask characters to show
	MinMaskLength int
	// MaxShowChars is maximum number of original characters to show
	MaxShowChars int
}

// NewMasker returns a Masker that shows at most four characters.
func NewMasker() *Masker {
	return &Masker{
		MaskChar:      '*',
		MinMaskLength: 8,
		MaxShowChars:  4,
	}
}

// MaskValue masks a secret, keeping a short prefix of longer values.
func (m *Masker) MaskValue(value string) string {
	prefix, mask := m.split(value)
	return prefix + mask
}

// split returns the visible prefix of value and the mask that follows it.
// Lengths are counted in characters so the prefix never ends mid-rune.
func (m *Masker) split(value string) (string, string) {
	if value == "" {
		return "", ""
	}

	mask := strings.Repeat(string(m.MaskChar), m.MinMaskLength)
	runes := []rune(value)
	if len(runes) <= 3 {
		return "", mask
	}

	showChars := m.MaxShowChars
	if len(runes) < showChars*2 {
		showChars = 1
	}
	return string(runes[:showChars]), mask
}

// Mask replaces every occurrence of each secret in rendered. The secret is
// also matched in its shell-quoted and percent-encoded forms so values that
// were escaped on the way into the command are still hidden. Replacement is
// a single pass; masked text is never matched again.
func (m *Masker) Mask(rendered string, secrets []string) string {
	sorted := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if utf8.RuneCountInString(s) >= minSecretLength {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return rendered
	}
	// Longest first so a secret that contains another is replaced whole.
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var pairs []string
	for _, secret := range sorted {
		prefix, mask := m.split(secret)
		masked := prefix + mask
		pairs = append(pairs, secret, masked)
		if escaped := escapeSingleQuotes(secret); escaped != secret {
			pairs = append(pairs, escaped, escapeSingleQuotes(masked))
		}
		if encoded := EncodeQueryValue(secret); encoded != secret {
			pairs = append(pairs, encoded, EncodeQueryValue(prefix)+mask)
		}
	}
	return strings.NewReplacer(pairs...).Replace(rendered)
}

// Mask hides secrets in rendered using the default Masker.
func Mask(rendered string, secrets []string) string {
	return NewMasker().Mask(rendered, secrets)
}
