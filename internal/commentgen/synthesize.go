package commentgen

import (
	"math/rand/v2"
	"strings"
)

// summaryVerbs is the fixed vocabulary for the summary line.
var summaryVerbs = []string{"Handles", "Processes", "Performs", "Executes", "Calculates", "Runs"}

// VerbSource picks the summary verb. *rand.Rand satisfies it.
type VerbSource interface {
	IntN(n int) int
}

// NewVerbSource returns a seeded source; seed 0 draws a random seed.
func NewVerbSource(seed uint64) VerbSource {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Synthesize renders the doc comment block for one unit:
//
//	/**
//	 * Runs the function "name".
//	 * @param p - parameter
//	 * @returns T
//	 */
func Synthesize(name string, params []string, returnType string, verbs VerbSource) string {
	if verbs == nil {
		verbs = NewVerbSource(0)
	}
	verb := summaryVerbs[verbs.IntN(len(summaryVerbs))]

	var b strings.Builder
	b.WriteString("/**\n")
	b.WriteString(" * " + verb + " the function \"" + name + "\".\n")
	for _, p := range params {
		b.WriteString(" * @param " + p + " - parameter\n")
	}
	b.WriteString(" * @returns " + returnType + "\n")
	b.WriteString(" */")
	return b.String()
}
