package classifier

import "github.com/xhad/textotest/internal/models"

func DefaultTypeWeights() map[models.QuestionType]float64 {
	return map[models.QuestionType]float64{
		models.TrueFalse:      0.5,
		models.MultipleChoice: 1.0,
		models.FillBlank:      1.5,
		models.ShortAnswer:    2.0,
		models.Matching:       2.5,
	}
}

func DefaultHardKeywords() []string {
	return []string{
		"analyze", "analyse", "evaluate", "compare", "contrast", "justify", "assess", "critique",
		"synthesize", "interpret", "differentiate", "examine", "infer", "predict", "argue", "why",
	}
}

func DefaultEasyKeywords() []string {
	return []string{"define", "list", "identify", "name", "recall", "state", "recognize", "label"}
}

func DefaultCategories() map[models.Category][]string {
	return map[models.Category][]string{
		models.Science: {
			"cell", "atom", "molecule", "energy", "photosynthesis", "biology", "chemistry", "physics",
			"organism", "species", "evolution", "gene", "dna", "protein", "element", "compound",
			"reaction", "force", "gravity", "mass", "temperature", "planet", "water", "oxygen",
			"carbon", "plant", "animal", "electron", "boil", "celsius", "experiment", "hypothesis",
			"ecosystem", "virus", "bacteria", "heart", "blood", "mitochondria", "chlorophyll", "light",
		},
		models.History: {
			"war", "empire", "king", "queen", "revolution", "treaty", "century", "ancient", "dynasty",
			"civilization", "battle", "president", "colony", "independence", "medieval", "kingdom",
			"emperor", "army", "historical", "reign", "republic", "constitution", "parliament",
			"pharaoh", "rome", "greek", "egypt",
		},
		models.Mathematics: {
			"equation", "algebra", "geometry", "theorem", "calculus", "fraction", "integer", "variable",
			"angle", "triangle", "probability", "statistics", "sum", "multiply", "divide", "square",
			"root", "derivative", "matrix", "prime", "proof", "formula", "polygon", "circle",
		},
		models.Literature: {
			"novel", "poem", "poetry", "author", "character", "plot", "theme", "metaphor", "narrative",
			"story", "writer", "shakespeare", "verse", "fiction", "literary", "protagonist", "genre",
			"sonnet", "tragedy", "comedy", "prose", "stanza",
		},
		models.Technology: {
			"computer", "software", "hardware", "internet", "network", "algorithm", "data", "program",
			"programming", "code", "digital", "device", "database", "server", "machine", "robot",
			"artificial", "intelligence", "electronic", "web", "cloud", "processor", "memory", "encryption",
		},
		models.Business: {
			"market", "company", "profit", "revenue", "customer", "price", "sales", "economy",
			"economic", "finance", "investment", "management", "marketing", "trade", "cost", "business",
			"stock", "capital", "bank", "money", "tax", "employee", "budget", "demand",
		},
	}
}
