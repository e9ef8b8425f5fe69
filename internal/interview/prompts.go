package interview

import (
	"fmt"
	"strings"

	"github.com/interviewxp/backend/internal/models"
)

// GenerationContext carries everything the question prompt embeds about the
// running interview.
type GenerationContext struct {
	Language          string
	SkillLevel        int
	PreviousQuestions []models.InterviewQuestion
	AverageScore      float64
	Strengths         []string
	Weaknesses        []string
	SessionDuration   int64
}

var skillLevelDescriptions = map[int]string{
	1: "Beginner (Basic syntax and concepts)",
	2: "Novice (Simple problem solving)",
	3: "Intermediate (Complex algorithms and patterns)",
	4: "Advanced (System design and optimization)",
	5: "Expert (Architecture and best practices)",
}

// LanguageSelectionPrompt is the welcome message enumerating every topic.
func LanguageSelectionPrompt() string {
	var b strings.Builder
	b.WriteString("Welcome to your technical interview! I'm your AI interviewer, and I'll be conducting a comprehensive assessment across various technical domains.\n\n")
	b.WriteString("Which topic would you like to focus on for this interview?\n")

	category := ""
	for _, t := range topics {
		if t.Category != category {
			category = t.Category
			b.WriteString("\n**" + category + ":**\n")
		}
		b.WriteString("- **" + t.Display + "**\n")
	}

	b.WriteString("\nPlease select your preferred topic, and I'll tailor the interview accordingly with questions specific to that domain.")
	return b.String()
}

// SkillAssessmentPrompt asks for a 1-5 self rating in the chosen topic.
func SkillAssessmentPrompt(topic string) string {
	return fmt.Sprintf(`Great choice! Let's focus on %s.

On a scale from 1 (beginner) to 5 (expert), how would you rate your proficiency in %s?

**Skill Level Guide:**
- **1 (Beginner)**: Just starting, learning basic syntax
- **2 (Novice)**: Can write simple programs, understand basic concepts
- **3 (Intermediate)**: Comfortable with language features, can solve moderate problems
- **4 (Advanced)**: Deep understanding, can handle complex scenarios and optimization
- **5 (Expert)**: Mastery level, understands internals and advanced patterns

Once you respond with your skill level, I'll ask your first technical question at that level.`, topic, topic)
}

// SkillLegendPrompt is the re-prompt when no digit 1-5 was found.
func SkillLegendPrompt() string {
	return `Please provide your skill level as a number from 1 to 5:
- 1: Beginner
- 2: Novice
- 3: Intermediate
- 4: Advanced
- 5: Expert`
}

// UnrecognizedTopicPrompt lists valid topics when no keyword matched.
func UnrecognizedTopicPrompt() string {
	var byCategory []string
	category := ""
	var names []string
	flush := func() {
		if category != "" {
			byCategory = append(byCategory, "**"+category+":** "+strings.Join(names, ", "))
		}
	}
	for _, t := range topics {
		if t.Category != category {
			flush()
			category = t.Category
			names = names[:0]
		}
		names = append(names, t.Display)
	}
	flush()

	return "I didn't catch which topic you'd like to use. Please choose from the available options including:\n\n" +
		strings.Join(byCategory, "\n") +
		"\n\nJust mention the topic you're interested in!"
}

// QuestionPrompt builds the full instruction string handed to the LLM to
// generate the next question. It mandates the four output templates; the
// generator itself never calls the LLM.
func QuestionPrompt(ctx GenerationContext) string {
	trending := TrendingTopics(ctx.Language)
	if len(trending) > 5 {
		trending = trending[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s technical interviewer conducting a dynamic, adaptive interview.\n\n", ctx.Language)
	b.WriteString("**CONTEXT:**\n")
	fmt.Fprintf(&b, "- Language: %s\n", ctx.Language)
	fmt.Fprintf(&b, "- Skill Level: %d/5 (%s)\n", ctx.SkillLevel, skillLevelDescriptions[ctx.SkillLevel])
	fmt.Fprintf(&b, "- Questions Asked: %d\n", len(ctx.PreviousQuestions))
	fmt.Fprintf(&b, "- Current Performance: %.1f/10\n", ctx.AverageScore)
	fmt.Fprintf(&b, "- Trending Topics: %s\n\n", strings.Join(trending, ", "))

	b.WriteString("**INSTRUCTIONS:**\n")
	fmt.Fprintf(&b, "1. Generate ONE question that is:\n")
	fmt.Fprintf(&b, "   - Appropriate for skill level %d/5\n", ctx.SkillLevel)
	fmt.Fprintf(&b, "   - Different from the previous %d questions\n", len(ctx.PreviousQuestions))
	fmt.Fprintf(&b, "   - Incorporates modern %s practices or trending topics when relevant\n", ctx.Language)
	b.WriteString("   - Follows the EXACT format specified below\n\n")

	lang := strings.ToLower(ctx.Language)
	b.WriteString("2. **MANDATORY QUESTION FORMATS** (choose ONE):\n\n")

	fmt.Fprintf(&b, "**MCQ Format:**\n**%s Interview Question #%d**\n\n[Clear, concise question with relevant context]\n\n```%s\n[Complete, correct code snippet if needed]\n```\n\n**Choose the best answer:**\nA) [Realistic option]\nB) [Realistic option]\nC) [Realistic option]\nD) [Realistic option]\n\n*Hint: [Helpful hint without giving away answer]*\n\n",
		ctx.Language, len(ctx.PreviousQuestions)+1, lang)

	fmt.Fprintf(&b, "**Code Analysis Format:**\n**Code Analysis Challenge**\n\n```%s\n[Complete, runnable code snippet with potential issues]\n```\n\n**Question:** [Specific question about the code - output, bugs, optimization, complexity]\n\n", lang)

	fmt.Fprintf(&b, "**Code Completion Format:**\n**Complete the Code**\n\n```%s\n[Partial code with clear TODO or placeholder]\n```\n\n**Requirements:** [Clear requirements for completion]\n\n", lang)

	b.WriteString("**DSA Challenge Format:**\n**Algorithm Challenge**\n\n**Problem:** [Clear problem statement]\n**Input:** [Input format and constraints]\n**Output:** [Expected output format]\n**Example:** [Sample input/output]\n\n")

	b.WriteString("**DIFFICULTY ADJUSTMENT:**\n")
	switch {
	case ctx.SkillLevel <= 2:
		b.WriteString("- Focus on fundamentals and basic syntax\n")
	case ctx.SkillLevel == 3:
		b.WriteString("- Include intermediate concepts and problem-solving\n")
	default:
		b.WriteString("- Emphasize advanced patterns, optimization, and best practices\n")
	}

	b.WriteString("\n**PERFORMANCE ADAPTATION:**\n")
	switch {
	case ctx.AverageScore < 6:
		b.WriteString("- Provide more guidance and simpler concepts\n")
	case ctx.AverageScore >= 8:
		b.WriteString("- Increase complexity and depth\n")
	}

	b.WriteString("\nGenerate exactly ONE question following the specified format.")
	return b.String()
}

// sampleQuestions is the canned fallback bank used when no LLM provider is
// wired in, keyed by topic then coarse level bucket (1, 3, 5).
var sampleQuestions = map[string]map[int]string{
	"JavaScript": {
		1: "**JavaScript Interview Question #1**\n\nWhat is the difference between `let`, `const`, and `var` in JavaScript?\n\n**Choose the best answer:**\nA) They are all the same, just different syntax\nB) `let` and `const` have block scope, `var` has function scope\nC) `const` cannot be reassigned, `let` and `var` can be\nD) Both B and C are correct\n\n*Hint: Think about scope and mutability*",
		3: "**Code Analysis Challenge**\n\n```javascript\nconst arr = [1, 2, 3, 4, 5];\nconst result = arr.map(x => x * 2).filter(x => x > 5);\nconsole.log(result);\n```\n\n**Question:** What will be the output and explain the execution flow?",
		5: "**Algorithm Challenge**\n\n**Problem:** Implement a debounce function that delays the execution of a function until after a specified delay has elapsed since its last invocation.\n\n**Requirements:**\n- Should work with any function\n- Should handle arguments correctly\n- Should be cancellable\n\n**Example Usage:**\n```javascript\nconst debouncedFn = debounce(() => console.log('Called!'), 300);\ndebouncedFn(); // Will execute after 300ms if not called again\n```",
	},
	"Python": {
		1: "**Python Interview Question #1**\n\nWhat is the difference between a list and a tuple in Python?\n\n**Choose the best answer:**\nA) Lists are ordered, tuples are not\nB) Lists are mutable, tuples are immutable\nC) Tuples can hold mixed types, lists cannot\nD) There is no difference\n\n*Hint: Think about what happens after creation*",
		3: "**Code Analysis Challenge**\n\n```python\ndef f(items, acc=[]):\n    acc.append(items)\n    return acc\n\nprint(f(1))\nprint(f(2))\n```\n\n**Question:** What will be the output and why does it behave this way?",
		5: "**Algorithm Challenge**\n\n**Problem:** Implement an LRU cache with O(1) get and put operations.\n\n**Input:** Capacity n, then a sequence of get/put calls\n**Output:** Values returned by each get, -1 for misses\n**Example:** capacity=2; put(1,1), put(2,2), get(1)=1, put(3,3), get(2)=-1",
	},
	"Go": {
		1: "**Go Interview Question #1**\n\nWhat does the `:=` operator do in Go?\n\n**Choose the best answer:**\nA) Compares two values\nB) Declares and initializes a variable with an inferred type\nC) Assigns a value to an existing variable\nD) Declares a constant\n\n*Hint: It only works inside functions*",
		3: "**Code Analysis Challenge**\n\n```go\nfunc main() {\n    ch := make(chan int)\n    ch <- 1\n    fmt.Println(<-ch)\n}\n```\n\n**Question:** What happens when this program runs, and how would you fix it?",
		5: "**Algorithm Challenge**\n\n**Problem:** Implement a worker pool that processes jobs from a channel with bounded concurrency and graceful shutdown on context cancellation.\n\n**Requirements:**\n- Respect the concurrency limit\n- Drain in-flight jobs on shutdown\n- Propagate the first error",
	},
}

// SampleQuestion returns a canned question for the topic and skill level, or
// a generic templated placeholder when the topic has no bank entry.
func SampleQuestion(topic string, skillLevel int) string {
	bucket := 1
	switch {
	case skillLevel >= 5:
		bucket = 5
	case skillLevel >= 3:
		bucket = 3
	}

	if bank, ok := sampleQuestions[topic]; ok {
		if q, ok := bank[bucket]; ok {
			return q
		}
		return bank[1]
	}

	return fmt.Sprintf("**%s Interview Question**\n\nExplain the key features and use cases of %s.", topic, topic)
}
