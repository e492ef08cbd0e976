package tagger

import "strings"

var irregularBase = map[string]string{
	"is": "be", "are": "be", "am": "be", "was": "be", "were": "be", "has": "have", "had": "have",
	"does": "do", "did": "do", "became": "become", "began": "begin", "brought": "bring",
	"built": "build", "came": "come", "found": "find", "gave": "give", "grew": "grow", "held": "hold",
	"kept": "keep", "knew": "know", "led": "lead", "made": "make", "meant": "mean", "met": "meet",
	"paid": "pay", "ran": "run", "said": "say", "saw": "see", "sent": "send", "stood": "stand",
	"took": "take", "told": "tell", "thought": "think", "wrote": "write", "won": "win", "fell": "fall",
	"fought": "fight", "froze": "freeze", "rose": "rise", "spoke": "speak", "drove": "drive",
	"ate": "eat", "bought": "buy", "caught": "catch", "taught": "teach", "sold": "sell",
	"spent": "spend", "chose": "choose", "went": "go", "got": "get", "lost": "lose", "felt": "feel",
	"left": "leave", "lay": "lie", "lies": "lie", "flew": "fly", "drew": "draw", "blew": "blow",
	"threw": "throw", "struck": "strike", "sank": "sink", "shook": "shake", "split": "split",
	"spread": "spread",
}

// BaseForm returns the uninflected form of a verb token, e.g. "boils" ->
// "boil", "produced" -> "produce". Unknown words lose a regular suffix.
func BaseForm(word string) string {
	w := strings.ToLower(word)
	if base, ok := irregularBase[w]; ok {
		return base
	}
	if verbs[w] {
		return w
	}

	switch {
	case strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case strings.HasSuffix(w, "ied"):
		return strings.TrimSuffix(w, "ied") + "y"
	case strings.HasSuffix(w, "es") && verbs[strings.TrimSuffix(w, "es")]:
		return strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return strings.TrimSuffix(w, "s")
	case strings.HasSuffix(w, "ed"):
		if stem := strings.TrimSuffix(w, "d"); verbs[stem] {
			return stem
		}
		stem := strings.TrimSuffix(w, "ed")
		if verbs[stem] {
			return stem
		}
		if n := len(stem); n > 2 && stem[n-1] == stem[n-2] && verbs[stem[:n-1]] {
			return stem[:n-1]
		}
		return stem
	case strings.HasSuffix(w, "ing"):
		stem := strings.TrimSuffix(w, "ing")
		if verbs[stem+"e"] {
			return stem + "e"
		}
		if n := len(stem); n > 2 && stem[n-1] == stem[n-2] && verbs[stem[:n-1]] {
			return stem[:n-1]
		}
		return stem
	}
	return w
}

// IsAuxiliary reports whether word is a form of be, have, do or a modal.
func IsAuxiliary(word string) bool {
	w := strings.ToLower(word)
	if _, ok := auxiliaries[w]; ok {
		return true
	}
	return closedClass[w] == "MD"
}

func IsUnit(word string) bool {
	return units[strings.ToLower(word)]
}

func IsDeterminer(word string) bool {
	return closedClass[strings.ToLower(word)] == "DT"
}

func IsPreposition(word string) bool {
	tag := closedClass[strings.ToLower(word)]
	return tag == "IN" || tag == "TO"
}

func IsMonth(word string) bool {
	return months[strings.ToLower(word)]
}
