package prompt

import (
	"fmt"
	"strings"
	"time"
)

// Mode identifies one of the supported study features. The set is closed:
// every handler holds a concrete Mode and Build switches exhaustively, so an
// unrecognized feature cannot fall through to raw-text passthrough.
type Mode int

const (
	ModeSummary Mode = iota
	ModeQuiz
	ModeFlashcards
	ModeMindmap
	ModeStudyPlan
	ModeMotivation
)

func (m Mode) String() string {
	switch m {
	case ModeSummary:
		return "summary"
	case ModeQuiz:
		return "quiz"
	case ModeFlashcards:
		return "flashcards"
	case ModeMindmap:
		return "mindmap"
	case ModeStudyPlan:
		return "plan"
	case ModeMotivation:
		return "motivation"
	}
	return "unknown"
}

// Temperature returns the fixed sampling temperature for the mode: low for
// extraction-style tasks, higher for creative ones. Not user-configurable.
func (m Mode) Temperature() float32 {
	switch m {
	case ModeSummary, ModeMindmap:
		return 0.4
	case ModeQuiz, ModeFlashcards:
		return 0.5
	case ModeStudyPlan:
		return 0.6
	case ModeMotivation:
		return 0.8
	}
	return 0.5
}

// Item-count and schedule bounds. Caller-supplied values are clamped before
// interpolation so adversarial counts cannot blow up the prompt.
const (
	DefaultQuizCount      = 10
	MaxQuizCount          = 50
	DefaultFlashcardCount = 20
	MaxFlashcardCount     = 100
	DefaultHoursPerDay    = 2
	MaxHoursPerDay        = 12
)

// Options carries the per-mode parameters consumed by Build.
type Options struct {
	Language    string    // generation language for summaries; empty means English
	Count       int       // quiz/flashcard item count, already resolved by the caller
	Subjects    []string  // study-plan subjects
	ExamDate    time.Time // study-plan exam date
	HoursPerDay int       // study-plan hours budget
	Context     string    // motivation free-text context
}

// Build maps a feature mode to its instruction text. Pure string assembly;
// no I/O.
func Build(mode Mode, content string, opts Options) (string, error) {
	switch mode {
	case ModeSummary:
		return Summary(content, opts.Language), nil
	case ModeQuiz:
		return Quiz(content, opts.Count), nil
	case ModeFlashcards:
		return Flashcards(content, opts.Count), nil
	case ModeMindmap:
		return Mindmap(content), nil
	case ModeStudyPlan:
		return StudyPlan(opts.Subjects, opts.ExamDate, opts.HoursPerDay, time.Now()), nil
	case ModeMotivation:
		return Motivation(opts.Context), nil
	}
	return "", fmt.Errorf("unknown feature mode %d", mode)
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Summary builds a fixed-section outline request. The language parameter is
// the generation language (default English), independent of the translation
// wrapper applied later.
func Summary(content, language string) string {
	if strings.TrimSpace(language) == "" {
		language = "English"
	}
	var b strings.Builder
	b.WriteString("You are an expert study assistant. Summarize the study material below.\n\n")
	fmt.Fprintf(&b, "Write in %s, using exactly these sections:\n", language)
	b.WriteString(`1. Executive Summary
2. Key Concepts
3. Step-by-Step Explanation
4. Examples
5. Important Data & Formulae
6. Assumptions & Limitations
7. Implications
8. Common Pitfalls
9. Top Takeaways (exactly ten bullet points)

Study material:
`)
	b.WriteString(content)
	return b.String()
}

// Quiz requests exactly n multiple-choice items, n clamped to [1, 50].
func Quiz(content string, n int) string {
	n = clamp(n, 1, MaxQuizCount)
	return fmt.Sprintf(`You are a quiz generator. Create exactly %d multiple-choice questions from the study material below.

Format every question exactly like this:
1) Question stem?
A. first option
B. second option
C. third option
D. fourth option
Answer: B — one-line justification

Number the questions 1 through %d and output nothing outside this format.

Study material:
%s`, n, n, content)
}

// Flashcards requests exactly n active-recall Q/A pairs, n clamped to [1, 100].
func Flashcards(content string, n int) string {
	n = clamp(n, 1, MaxFlashcardCount)
	return fmt.Sprintf(`Create exactly %d active-recall flashcards from the study material below.

Each flashcard is two lines and nothing else:
Q: the question
A: the answer

Do not number the cards and do not add commentary.

Study material:
%s`, n, content)
}

// Mindmap requests a Mermaid mind map, markup only.
func Mindmap(content string) string {
	return fmt.Sprintf(`Convert the study material below into a Mermaid mind map.

Rules:
- The output must start with the literal token "mindmap".
- Use Mermaid mindmap indentation syntax, 3 to 4 levels deep.
- Output only the Mermaid markup: no prose, no code fences.

Study material:
%s`, content)
}

// StudyPlan requests a day-by-day schedule through the exam date. The day
// count is computed here, not by the model, so the schedule length is
// deterministic.
func StudyPlan(subjects []string, examDate time.Time, hoursPerDay int, now time.Time) string {
	hoursPerDay = clamp(hoursPerDay, 1, MaxHoursPerDay)
	days := DaysUntil(now, examDate)
	return fmt.Sprintf(`Create a day-by-day study plan.

Parameters:
- Subjects: %s
- Exam date: %s
- Days remaining until the exam: %d (already computed — do not recalculate)
- Study hours per day: %d

Requirements:
- Cover every day from Day 1 (today) through Day %d (exam day).
- End every week with a review checkpoint.
- Add spaced-repetition reminders for previously covered topics.
- Finish with exactly three exam-week tips.`,
		strings.Join(subjects, ", "), examDate.Format("2006-01-02"), days, hoursPerDay, days)
}

// DaysUntil counts whole days from now's date to the exam date, minimum 1.
func DaysUntil(now, examDate time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exam := time.Date(examDate.Year(), examDate.Month(), examDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(exam.Sub(today).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Motivation requests one short note within a fixed word band.
func Motivation(context string) string {
	if strings.TrimSpace(context) == "" {
		context = "N/A"
	}
	return fmt.Sprintf(`Write one short motivational note for a student.

Constraints:
- Between 120 and 180 words.
- Warm, direct, encouraging tone. No clichés, no lecturing.
- Include exactly one concrete, actionable tip.

Student context: %s`, context)
}
