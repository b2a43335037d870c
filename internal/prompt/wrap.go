package prompt

import (
	"fmt"
	"strings"
)

// translationSeparator delimits the generated answer from the appended
// translation directive.
const translationSeparator = "\n\n---\n\n"

// Wrap appends a translation directive for the target language. The
// directive is advisory text carried in the response; translation is never
// performed here. An empty target or the sentinel "none" (any case) returns
// the answer unchanged.
func Wrap(answer, target string) string {
	target = strings.TrimSpace(target)
	if target == "" || strings.EqualFold(target, "none") {
		return answer
	}
	directive := fmt.Sprintf(
		"Translate the entire answer above into %s. Preserve all headings, lists and structure, and keep the original tone.",
		target)
	return answer + translationSeparator + directive
}
