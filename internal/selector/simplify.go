package selector

import "strings"

// maxSimplifiedLevels caps how many descendant levels a simplified
// selector keeps. Deeper paths rarely add discriminating power and
// break as soon as a wrapper changes.
const maxSimplifiedLevels = 3

// Simplify generalizes a synthesized selector: positional pseudo-classes
// and year-like tokens are stripped, purely structural wrapper divs are
// dropped, and the path is collapsed to its last few meaningful levels.
// Simplify is idempotent.
func Simplify(sel string) string {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return ""
	}

	// Child combinators are hard boundaries; simplify each segment alone.
	segments := strings.Split(sel, ">")
	for i, seg := range segments {
		segments[i] = simplifySegment(seg)
	}

	var kept []string
	for _, seg := range segments {
		if seg != "" {
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, " > ")
}

// simplifySegment simplifies one descendant-combinator chain.
func simplifySegment(seg string) string {
	levels := strings.Fields(seg)
	var out []string
	for i, level := range levels {
		cleaned := cleanLevel(level)
		if cleaned == "" {
			continue
		}
		// Structural wrapper divs add nothing; the final level is always
		// kept since it names the target itself.
		if cleaned == "div" && i != len(levels)-1 {
			continue
		}
		out = append(out, cleaned)
	}
	if len(out) > maxSimplifiedLevels {
		out = out[len(out)-maxSimplifiedLevels:]
	}
	return strings.Join(out, " ")
}

// cleanLevel strips :nth-of-type and year-bearing class/id tokens from a
// single compound selector level.
func cleanLevel(level string) string {
	level = nthOfTypeRE.ReplaceAllString(level, "")
	if level == "" {
		return ""
	}

	// Split the compound into its tag and .class/#id tokens.
	var tag string
	var tokens []string
	rest := level
	for rest != "" {
		idx := strings.IndexAny(rest[1:], ".#")
		var tok string
		if idx < 0 {
			tok = rest
			rest = ""
		} else {
			tok = rest[:idx+1]
			rest = rest[idx+1:]
		}
		if strings.HasPrefix(tok, ".") || strings.HasPrefix(tok, "#") {
			if !yearTokenRE.MatchString(tok) {
				tokens = append(tokens, tok)
			}
		} else {
			tag = tok
		}
	}
	return tag + strings.Join(tokens, "")
}
