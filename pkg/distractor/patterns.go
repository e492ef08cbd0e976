package distractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xhad/textotest/internal/models"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
	yearPattern   = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})(s?)\b`)
)

// perturbations rewrites the answer's number, keeping its units and
// surrounding text. Dates perturb the year when there is one.
func perturbations(answer Answer) []string {
	text := answer.Text

	if loc := yearPattern.FindStringSubmatchIndex(text); loc != nil && answer.EntityType != models.EntityQuantity {
		year, _ := strconv.Atoi(text[loc[2]:loc[3]])
		offsets := []int{-10, 10, -5, 5, -1, 1}
		if loc[5] > loc[4] {
			offsets = []int{-10, 10, -20, 20, -30, 30}
		}
		out := make([]string, 0, len(offsets))
		for _, off := range offsets {
			out = append(out, text[:loc[2]]+strconv.Itoa(year+off)+text[loc[3]:])
		}
		return out
	}

	loc := numberPattern.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	number := text[loc[0]:loc[1]]
	var out []string
	for _, v := range scaled(number) {
		out = append(out, text[:loc[0]]+v+text[loc[1]:])
	}
	return out
}

func scaled(number string) []string {
	grouped := strings.Contains(number, ",")
	plain := strings.ReplaceAll(number, ",", "")

	if dot := strings.IndexByte(plain, '.'); dot >= 0 {
		f, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			return nil
		}
		precision := len(plain) - dot - 1
		var out []string
		for _, factor := range []float64{0.9, 1.1, 0.5, 2, 1.5, 10} {
			out = append(out, strconv.FormatFloat(f*factor, 'f', precision, 64))
		}
		return out
	}

	n, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return nil
	}
	step := int64(math.Max(1, float64(n/10)))
	values := []int64{n - step, n + step, n / 2, n * 2, n + 2*step, n * 10}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v < 0 || v == n {
			continue
		}
		s := strconv.FormatInt(v, 10)
		if grouped {
			s = group(s)
		}
		out = append(out, s)
	}
	return out
}

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

// swaps exchanges each pair of adjacent words.
func swaps(text string) []string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return nil
	}
	var out []string
	for i := 0; i+1 < len(words); i++ {
		w := append([]string(nil), words...)
		w[i], w[i+1] = w[i+1], w[i]
		out = append(out, strings.Join(w, " "))
	}
	return out
}

var irregularPlurals = map[string]string{
	"man":           "men",
	"woman":         "women",
	"child":         "children",
	"mouse":         "mice",
	"goose":         "geese",
	"foot":          "feet",
	"tooth":         "teeth",
	"person":        "people",
	"analysis":      "analyses",
	"crisis":        "crises",
	"thesis":        "theses",
	"hypothesis":    "hypotheses",
	"axis":          "axes",
	"nucleus":       "nuclei",
	"fungus":        "fungi",
	"cactus":        "cacti",
	"stimulus":      "stimuli",
	"radius":        "radii",
	"bacterium":     "bacteria",
	"datum":         "data",
	"medium":        "media",
	"criterion":     "criteria",
	"phenomenon":    "phenomena",
	"mitochondrion": "mitochondria",
	"alga":          "algae",
	"larva":         "larvae",
	"index":         "indices",
	"matrix":        "matrices",
	"vertex":        "vertices",
	"appendix":      "appendices",
	"leaf":          "leaves",
	"life":          "lives",
	"knife":         "knives",
	"wolf":          "wolves",
	"half":          "halves",
}

var irregularSingulars = func() map[string]string {
	m := make(map[string]string, len(irregularPlurals))
	for s, p := range irregularPlurals {
		m[p] = s
	}
	return m
}()

// pluralFlips toggles the grammatical number of the final word.
func pluralFlips(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	flipped := flipNumber(strings.ToLower(last))
	if flipped == "" {
		return nil
	}
	words[len(words)-1] = matchCase(last, flipped)
	return []string{strings.Join(words, " ")}
}

func flipNumber(w string) string {
	if len(w) < 3 || !isLetters(w) {
		return ""
	}
	if p, ok := irregularPlurals[w]; ok {
		return p
	}
	if s, ok := irregularSingulars[w]; ok {
		return s
	}
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "y") && !isVowel(w[len(w)-2]):
		return w[:len(w)-1] + "ies"
	case strings.HasSuffix(w, "ses"), strings.HasSuffix(w, "xes"), strings.HasSuffix(w, "zes"),
		strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "x"), strings.HasSuffix(w, "z"),
		strings.HasSuffix(w, "ch"), strings.HasSuffix(w, "sh"):
		return w + "es"
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w + "s"
}

var suffixVariants = [][2]string{
	{"tion", "sion"}, {"sion", "tion"},
	{"ance", "ence"}, {"ence", "ance"},
	{"ant", "ent"}, {"ent", "ant"},
	{"ible", "able"}, {"able", "ible"},
	{"ize", "ise"}, {"ise", "ize"},
}

var phoneticVariants = [][2]string{
	{"ph", "f"}, {"f", "ph"},
	{"ei", "ie"}, {"ie", "ei"},
	{"ou", "ow"}, {"ow", "ou"},
}

var hardC = regexp.MustCompile(`c([aou])`)

// misspellings produces near-miss spellings of the longest word.
func misspellings(text string) []string {
	words := strings.Fields(text)
	target := -1
	for i, w := range words {
		if isLetters(w) && len(w) >= 5 && !isAcronym(w) && (target < 0 || len(w) > len(words[target])) {
			target = i
		}
	}
	if target < 0 {
		return nil
	}

	original := words[target]
	w := strings.ToLower(original)
	var variants []string

	for _, v := range suffixVariants {
		if strings.HasSuffix(w, v[0]) {
			variants = append(variants, w[:len(w)-len(v[0])]+v[1])
			break
		}
	}
	for _, v := range phoneticVariants {
		if strings.Contains(w, v[0]) {
			variants = append(variants, strings.Replace(w, v[0], v[1], 1))
		}
	}
	if loc := hardC.FindStringIndex(w); loc != nil {
		variants = append(variants, w[:loc[0]]+"k"+w[loc[0]+1:])
	}
	if t := transpose(w); t != w {
		variants = append(variants, t)
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		replaced := append([]string(nil), words...)
		replaced[target] = matchCase(original, v)
		out = append(out, strings.Join(replaced, " "))
	}
	return out
}

// transpose swaps the two middle letters.
func transpose(w string) string {
	r := []rune(w)
	mid := len(r) / 2
	if mid < 1 || r[mid-1] == r[mid] {
		return w
	}
	r[mid-1], r[mid] = r[mid], r[mid-1]
	return string(r)
}

func isLetters(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isAcronym(w string) bool {
	return utf8.RuneCountInString(w) > 1 && strings.ToUpper(w) == w
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}
