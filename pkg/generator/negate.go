package generator

import (
	"math"
	"strconv"
	"strings"

	"github.com/xhad/textotest/pkg/tagger"
)

// Negate produces a false variant of a sentence. In order of preference it
// drops an existing negation, negates an auxiliary, perturbs the first
// number, or negates the main verb with do-support. It reports false when
// no rewrite changes the sentence.
func (g *Generator) Negate(sentence string) (string, bool) {
	negated, ok := g.negate(sentence)
	if !ok || negated == sentence {
		return "", false
	}
	return negated, true
}

func (g *Generator) negate(sentence string) (string, bool) {
	tokens := g.tagger.Tag(sentence)

	for _, tok := range tokens {
		switch {
		case tok.Lower == "not" || tok.Lower == "never":
			return sentence[:tok.Start] + strings.TrimLeft(sentence[tok.End:], " "), true
		case strings.HasSuffix(tok.Lower, "n't"):
			return sentence[:tok.Start] + positive(tok.Text) + sentence[tok.End:], true
		}
	}

	for i, tok := range tokens {
		if !tok.IsVerb() || !tagger.IsAuxiliary(tok.Text) {
			continue
		}
		if tagger.BaseForm(tok.Text) == "have" {
			// "has" as a main verb takes do-support instead.
			if i+1 >= len(tokens) || !tokens[i+1].IsVerb() {
				continue
			}
		}
		return sentence[:tok.End] + " not" + sentence[tok.End:], true
	}

	for _, tok := range tokens {
		if tok.Tag != "CD" || tok.Text[0] < '0' || tok.Text[0] > '9' {
			continue
		}
		if changed, ok := perturb(tok.Text); ok && changed != tok.Text {
			return sentence[:tok.Start] + changed + sentence[tok.End:], true
		}
	}

	for _, tok := range tokens {
		var aux string
		switch tok.Tag {
		case "VBZ":
			aux = "does not "
		case "VBP":
			aux = "do not "
		case "VBD":
			aux = "did not "
		default:
			continue
		}
		return sentence[:tok.Start] + aux + tagger.BaseForm(tok.Text) + sentence[tok.End:], true
	}

	return "", false
}

func positive(contraction string) string {
	lower := strings.ToLower(contraction)
	switch lower {
	case "can't":
		return contraction[:3]
	case "won't":
		return "will"
	}
	return contraction[:len(contraction)-3]
}

// perturb doubles a number, turns zero into one, and shifts a year by a
// decade. Digit grouping, precision and a trailing percent sign are kept.
func perturb(number string) (string, bool) {
	suffix := ""
	if strings.HasSuffix(number, "%") {
		suffix = "%"
		number = strings.TrimSuffix(number, "%")
	}
	grouped := strings.Contains(number, ",")
	plain := strings.ReplaceAll(number, ",", "")

	if dot := strings.Index(plain, "."); dot >= 0 {
		f, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			return "", false
		}
		if f == 0 {
			f = 1
		} else {
			f *= 2
		}
		if math.IsInf(f, 0) {
			return "", false
		}
		out := strconv.FormatFloat(f, 'f', len(plain)-dot-1, 64)
		if grouped {
			whole, frac, _ := strings.Cut(out, ".")
			out = group(whole) + "." + frac
		}
		return out + suffix, true
	}

	n, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return "", false
	}
	switch {
	case suffix == "" && !grouped && len(plain) == 4 && n >= 1000 && n <= 2099:
		n += 10
	case n == 0:
		n = 1
	case n > math.MaxInt64/2:
		return "", false
	default:
		n *= 2
	}
	out := strconv.FormatInt(n, 10)
	if grouped {
		out = group(out)
	}
	return out + suffix, true
}

// group inserts thousands separators into a run of digits.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
