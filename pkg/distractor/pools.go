package distractor

import "github.com/xhad/textotest/internal/models"

// DefaultDomainPools returns the static candidate pools keyed by category.
// General entries back every other category.
func DefaultDomainPools() map[models.Category][]string {
	return map[models.Category][]string{
		models.Science: {
			"hypothesis", "theory", "experiment", "observation", "analysis",
			"synthesis", "catalyst", "reaction", "element", "compound",
			"molecule", "atom", "electron", "proton", "neutron",
		},
		models.History: {
			"revolution", "empire", "dynasty", "civilization", "monarchy",
			"democracy", "republic", "conquest", "treaty", "alliance",
			"war", "peace", "culture", "society", "economy",
		},
		models.Literature: {
			"metaphor", "symbolism", "allegory", "irony", "theme",
			"plot", "character", "setting", "narrative", "conflict",
			"climax", "resolution", "protagonist", "antagonist", "dialogue",
		},
		models.Mathematics: {
			"equation", "function", "variable", "constant", "coefficient",
			"polynomial", "derivative", "integral", "limit", "theorem",
			"proof", "axiom", "formula", "algorithm", "matrix",
		},
		models.Technology: {
			"protocol", "router", "firewall", "bandwidth", "latency",
			"database", "server", "client", "compiler", "kernel",
			"framework", "middleware", "firmware", "cache", "encryption",
		},
		models.Business: {
			"revenue", "profit", "margin", "asset", "liability",
			"equity", "dividend", "inflation", "supply", "demand",
			"merger", "budget", "invoice", "shareholder", "competitor",
		},
		models.General: {
			"process", "structure", "system", "function", "principle",
			"method", "pattern", "factor", "resource", "property",
		},
	}
}
