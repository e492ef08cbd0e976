package tagger

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var closedClass = map[string]string{}

func init() {
	for w := range set("a", "an", "the", "this", "that", "these", "those", "each", "every", "some",
		"any", "no", "all", "both", "either", "neither", "another", "such") {
		closedClass[w] = "DT"
	}
	for w := range set("at", "in", "on", "of", "for", "from", "by", "with", "about", "above", "below",
		"under", "over", "between", "among", "through", "during", "before", "after", "into", "onto",
		"upon", "within", "without", "across", "against", "along", "around", "behind", "beyond",
		"near", "since", "until", "via", "per", "than", "like", "as", "because", "although", "while",
		"if", "whether", "though", "unless", "toward", "towards", "throughout", "despite", "inside", "outside") {
		closedClass[w] = "IN"
	}
	for w := range set("and", "or", "but", "nor", "yet", "so") {
		closedClass[w] = "CC"
	}
	for w := range set("i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them", "itself",
		"themselves", "himself", "herself") {
		closedClass[w] = "PRP"
	}
	for w := range set("my", "your", "his", "her", "its", "our", "their") {
		closedClass[w] = "PRP$"
	}
	for w := range set("can", "could", "may", "might", "must", "shall", "should", "will", "would") {
		closedClass[w] = "MD"
	}
	for w := range set("what", "which", "who", "whom", "whose", "when", "where", "why", "how") {
		closedClass[w] = "WP"
	}
	for w := range set("not", "never", "also", "very", "often", "always", "usually", "only", "just",
		"still", "already", "then", "there", "here", "however", "thus", "therefore", "quite", "rather",
		"too", "again", "almost", "mostly", "generally", "approximately", "nearly", "roughly", "mainly",
		"largely", "typically", "directly", "eventually", "finally", "later", "once", "soon", "now",
		"even", "sometimes", "rarely", "primarily", "especially", "frequently", "relatively") {
		closedClass[w] = "RB"
	}
	closedClass["to"] = "TO"
	for w, tag := range auxiliaries {
		closedClass[w] = tag
	}
	for w, tag := range irregularVerbs {
		closedClass[w] = tag
	}
}

var auxiliaries = map[string]string{
	"is": "VBZ", "are": "VBP", "am": "VBP", "was": "VBD", "were": "VBD", "be": "VB",
	"been": "VBN", "being": "VBG", "has": "VBZ", "have": "VBP", "had": "VBD",
	"do": "VBP", "does": "VBZ", "did": "VBD",
}

var irregularVerbs = map[string]string{
	"became": "VBD", "began": "VBD", "begun": "VBN", "brought": "VBD", "built": "VBD", "came": "VBD",
	"found": "VBD", "gave": "VBD", "given": "VBN", "grew": "VBD", "grown": "VBN", "held": "VBD",
	"kept": "VBD", "knew": "VBD", "known": "VBN", "led": "VBD", "made": "VBD", "meant": "VBD",
	"met": "VBD", "paid": "VBD", "ran": "VBD", "said": "VBD", "saw": "VBD", "seen": "VBN",
	"sent": "VBD", "stood": "VBD", "took": "VBD", "taken": "VBN", "told": "VBD", "thought": "VBD",
	"wrote": "VBD", "written": "VBN", "won": "VBD", "fell": "VBD", "fallen": "VBN", "fought": "VBD",
	"froze": "VBD", "frozen": "VBN", "rose": "VBD", "risen": "VBN", "spoke": "VBD", "spoken": "VBN",
	"drove": "VBD", "driven": "VBN", "ate": "VBD", "eaten": "VBN", "bought": "VBD", "caught": "VBD",
	"taught": "VBD", "sold": "VBD", "spent": "VBD", "chose": "VBD", "chosen": "VBN", "shown": "VBN",
	"done": "VBN", "went": "VBD", "gone": "VBN", "got": "VBD", "lost": "VBD", "felt": "VBD",
	"left": "VBD", "lay": "VBD", "lies": "VBZ", "flew": "VBD", "drew": "VBD", "drawn": "VBN",
	"blew": "VBD", "threw": "VBD", "thrown": "VBN", "struck": "VBD", "sank": "VBD", "shook": "VBD",
	"split": "VBD", "spread": "VBD",
}

// verbs are base forms recognised in -s, -ed and -ing inflections.
var verbs = set(
	"absorb", "accept", "achieve", "act", "add", "affect", "allow", "appear", "apply", "argue",
	"arrive", "assume", "attack", "attempt", "avoid", "become", "begin", "believe", "belong", "bind",
	"boil", "break", "breathe", "bring", "build", "burn", "call", "carry", "cause", "change",
	"claim", "collect", "combine", "compare", "complete", "compose", "conduct", "connect", "consider",
	"consist", "contain", "continue", "cover", "contribute", "control", "convert", "create", "decide",
	"declare", "decrease", "define", "defeat", "deliver", "depend", "describe", "destroy",
	"determine", "develop", "die", "differ", "digest", "discover", "dissolve", "divide", "drive",
	"eat", "eliminate", "emerge", "emit", "enable", "encode", "end", "enter", "establish", "evaluate",
	"evaporate", "evolve", "exist", "expand", "explain", "explore", "express", "extend", "fail",
	"fall", "feed", "fight", "fill", "find", "flow", "follow", "found", "freeze", "function",
	"gain", "generate", "give", "govern", "grow", "happen", "help", "hold", "identify", "improve",
	"include", "increase", "indicate", "influence", "inherit", "introduce", "invade", "invent",
	"involve", "join", "keep", "kill", "know", "lead", "learn", "leave", "link", "live", "locate",
	"lose", "maintain", "make", "manage", "measure", "melt", "merge", "migrate", "move", "need",
	"observe", "obtain", "occupy", "occur", "offer", "open", "orbit", "organize", "originate",
	"own", "pass", "perform", "permit", "play", "prevent", "process", "produce", "promote",
	"protect", "prove", "provide", "publish", "pump", "reach", "react", "receive", "reduce",
	"reflect", "refer", "regulate", "reject", "release", "rely", "remain", "remove", "replace",
	"report", "represent", "reproduce", "require", "resist", "respond", "result", "return",
	"reveal", "rise", "rotate", "rule", "run", "say", "see", "seem", "sell", "send", "separate",
	"serve", "settle", "share", "show", "sign", "solve", "speak", "spend", "split", "spread",
	"start", "stimulate", "stop", "store", "strengthen", "study", "succeed", "suggest", "supply",
	"support", "surround", "survive", "take", "tend", "transfer", "transform", "transmit",
	"transport", "travel", "trigger", "turn", "understand", "unite", "use", "vary", "vote",
	"win", "work", "write",
)

// inflectedNouns end in -ed, -s or -ing but are not verbs.
var inflectedNouns = set(
	"hundred", "speed", "seed", "need", "feed", "breed", "greed", "deed", "creed", "indeed",
	"sacred", "naked", "wicked", "kindred", "shed", "bed", "red", "bred", "species", "series",
	"news", "physics", "mathematics", "economics", "politics", "genetics", "process", "gas", "bus",
	"thing", "king", "ring", "spring", "string", "wing", "morning", "evening", "nothing", "something",
	"everything", "anything", "building", "ceiling", "during", "bring", "sing", "swing",
	"family", "assembly", "anomaly", "monopoly", "butterfly", "belly", "rally", "ally", "jelly",
	"italy", "july", "reply", "supply", "melody", "homily",
)

var adjectives = set(
	"large", "small", "high", "low", "new", "old", "important", "major", "main", "common",
	"different", "great", "good", "best", "first", "last", "long", "short", "hot", "cold", "warm",
	"red", "green", "blue", "white", "black", "big", "little", "early", "late", "natural",
	"chemical", "physical", "central", "national", "global", "social", "political", "general",
	"total", "special", "final", "essential", "crucial", "critical", "digital", "local", "normal",
	"original", "potential", "typical", "tropical", "nuclear", "solar", "human", "modern",
	"ancient", "primary", "secondary", "simple", "complex", "basic", "free", "full", "whole",
	"single", "second", "third", "lower", "higher", "larger", "smaller", "greater", "key", "dry",
	"wet", "dense", "deep", "strong", "weak", "heavy", "rapid", "slow", "fast", "rich",
	"poor", "public", "private", "federal", "civil", "royal", "western", "eastern", "northern",
	"southern", "genetic", "cellular", "molecular", "atomic", "electric", "magnetic", "organic",
	"inorganic", "renewable", "aerobic", "anaerobic",
)

var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "ic", "ical", "less", "ish"}

// stopwords never form a concept on their own.
var stopwords = set(
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "he", "in", "is", "it",
	"its", "of", "on", "that", "the", "to", "was", "were", "will", "with", "this", "these", "those",
	"many", "several", "other", "same", "various", "few", "more", "most", "much", "own", "such",
	"part", "kind", "type", "way", "lot", "number", "example", "thing", "things", "one", "ones",
	"first", "last", "new", "good", "great", "main", "different", "which", "who", "what",
)

var numberWords = set(
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "eleven",
	"twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	"twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety", "hundred",
	"thousand", "million", "billion", "trillion", "dozen",
)

var units = set(
	"degree", "degrees", "celsius", "fahrenheit", "kelvin", "percent", "%", "meter", "meters",
	"metre", "metres", "kilometer", "kilometers", "kilometres", "km", "mile", "miles", "kg",
	"kilogram", "kilograms", "gram", "grams", "pound", "pounds", "ton", "tons", "tonnes", "liter",
	"liters", "litre", "litres", "second", "seconds", "minute", "minutes", "hour", "hours", "day",
	"days", "week", "weeks", "month", "months", "year", "years", "decade", "decades", "century",
	"centuries", "foot", "feet", "inch", "inches", "volt", "volts", "watt", "watts", "joule",
	"joules", "newton", "newtons", "calorie", "calories", "mph", "people", "species", "times",
	"atoms", "electrons", "protons", "chromosomes", "bones", "planets", "states", "members",
	"dollars", "cm", "mm", "ml", "mg", "hz", "hertz", "bytes", "bits", "kb", "mb", "gb",
	"million", "billion", "thousand", "hundred", "trillion",
)

var months = set(
	"january", "february", "march", "april", "may", "june", "july", "august", "september",
	"october", "november", "december",
)

var titles = set(
	"dr", "mr", "mrs", "ms", "prof", "professor", "president", "king", "queen", "sir", "saint",
	"emperor", "general", "pope", "prince", "princess", "lord", "lady", "captain", "senator",
)

var firstNames = set(
	"albert", "isaac", "charles", "marie", "george", "thomas", "john", "james", "william", "mary",
	"elizabeth", "william", "abraham", "alexander", "galileo", "leonardo", "nikola", "louis",
	"martin", "winston", "napoleon", "julius", "ada", "alan", "rosalind", "gregor", "dmitri",
	"niels", "max", "ernest", "jane", "emily", "mark", "robert", "richard", "henry", "edward",
	"franklin", "benjamin", "theodore", "joseph", "karl", "adam", "sigmund", "johannes", "wolfgang",
	"ludwig", "michael", "david", "peter", "paul", "anne", "catherine", "victoria", "florence",
)

var orgCues = set(
	"university", "institute", "company", "corporation", "corp", "inc", "ltd", "association",
	"society", "organization", "organisation", "agency", "council", "committee", "party", "bank",
	"college", "school", "museum", "foundation", "union", "league", "church", "army", "navy",
	"department", "ministry", "commission", "federation", "nations",
)

var locationCues = set(
	"river", "mountain", "mountains", "mount", "lake", "ocean", "sea", "city", "island", "islands",
	"valley", "desert", "bay", "gulf", "strait", "republic", "kingdom", "empire", "province",
	"county", "peninsula", "canyon", "forest", "plains", "coast",
)

var places = set(
	"africa", "asia", "europe", "america", "antarctica", "australia", "england", "france",
	"germany", "italy", "spain", "china", "japan", "india", "russia", "egypt", "greece", "rome",
	"london", "paris", "berlin", "tokyo", "canada", "mexico", "brazil", "britain", "ireland",
	"scotland", "portugal", "poland", "austria", "sweden", "norway", "persia", "mesopotamia",
	"athens", "sparta", "israel", "turkey", "iran", "iraq", "korea", "vietnam", "argentina",
	"chile", "peru", "kenya", "nigeria", "washington", "york", "boston", "chicago", "moscow",
	"mars", "venus", "jupiter", "saturn", "mercury", "neptune", "uranus", "earth",
)

var connectors = set("of", "the", "de", "von", "van", "for")
