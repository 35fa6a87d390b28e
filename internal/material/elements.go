package material

import "regexp"

var symbolPattern = regexp.MustCompile(`^[A-Z][a-z]{0,2}$`)

// ValidSymbol reports whether s is shaped like an element symbol
// ("O", "Fe", "Uue"). It does not check the periodic table.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// Elements tokenises a formula into its distinct element symbols, in order
// of first appearance.
//
//	Elements("Fe2O3")       // [Fe O]
//	Elements("Ca(OH)2")     // [Ca O H]
//	Elements("")            // []
func Elements(formula string) []string {
	out := []string{}
	seen := make(map[string]bool)

	for i := 0; i < len(formula); {
		c := formula[i]
		if c < 'A' || c > 'Z' {
			i++
			continue
		}
		j := i + 1
		for j < len(formula) && formula[j] >= 'a' && formula[j] <= 'z' {
			j++
		}
		sym := formula[i:j]
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
		i = j
	}

	return out
}
