package interview

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/interviewxp/backend/internal/models"
)

// FeedbackResult is the structured form of one scored answer.
type FeedbackResult struct {
	Score        int      `json:"score"` // 0..10
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// FeedbackPrompt builds the scoring request for the LLM. The heading
// vocabulary here must stay in sync with ParseFeedback.
func FeedbackPrompt(q models.InterviewQuestion, userAnswer, topic string, skillLevel int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s technical interviewer. Analyze this interview response and provide detailed feedback.\n\n", topic)

	b.WriteString("**QUESTION:**\n")
	b.WriteString(q.Question)
	if q.CodeSnippet != "" {
		fmt.Fprintf(&b, "\n```%s\n%s\n```", strings.ToLower(topic), q.CodeSnippet)
	}
	b.WriteString("\n\n**USER'S ANSWER:**\n")
	b.WriteString(userAnswer)

	fmt.Fprintf(&b, "\n\n**CONTEXT:**\n- Language: %s\n- Question Type: %s\n- Difficulty: %s\n- User Skill Level: %d/5\n\n",
		topic, q.Type, q.Difficulty, skillLevel)

	b.WriteString(`**PROVIDE STRUCTURED FEEDBACK:**

**Score: [X]/10**

**Overall Assessment:**
[2-3 sentences summarizing the response quality]

**Strengths:**
- [Specific positive aspects of the answer]
- [Technical accuracy points]
- [Good practices demonstrated]

**Areas for Improvement:**
- [Specific areas that need work]
- [Missing concepts or details]
- [Better approaches or optimizations]

**Detailed Analysis:**
[Deeper technical analysis of the response, including:]
- Correctness of the solution/explanation
- Code quality and best practices (if applicable)
- Understanding of underlying concepts
- Consideration of edge cases
- Performance implications

**Next Steps:**
[Suggestions for what to study or practice next]

**Scoring Criteria:**
- 9-10: Exceptional understanding, comprehensive answer
- 7-8: Good understanding with minor gaps
- 5-6: Basic understanding, needs improvement
- 3-4: Limited understanding, significant gaps
- 1-2: Minimal understanding, requires fundamental review

Be constructive, specific, and encouraging while maintaining technical accuracy.`)
	return b.String()
}

const defaultScore = 5

var (
	scoreRe        = regexp.MustCompile(`(?i)Score:\s*(\d+)\s*/\s*10`)
	strengthsRe    = regexp.MustCompile(`(?s)\*\*Strengths:\*\*(.*?)(?:\*\*|$)`)
	improvementsRe = regexp.MustCompile(`(?s)\*\*Areas for Improvement:\*\*(.*?)(?:\*\*|$)`)
	assessmentRe   = regexp.MustCompile(`(?s)\*\*Overall Assessment:\*\*(.*?)(?:\*\*|$)`)
	jsonFenceRe    = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")
)

// ParseFeedback extracts a FeedbackResult from an LLM reply. A structured
// JSON reply is preferred when the model produces one; otherwise this is a
// best-effort parse of the markdown contract: a missing score degrades to 5,
// a missing assessment section degrades to the full text, and missing bullet
// sections degrade to empty lists. It never fails.
func ParseFeedback(response string) FeedbackResult {
	if r, ok := parseStructuredFeedback(response); ok {
		return r
	}
	return parseMarkdownFeedback(response)
}

// parseStructuredFeedback accepts a bare or ```json-fenced object with the
// FeedbackResult fields. The score must be in [0,10] and the feedback text
// non-empty, anything else falls through to the markdown parser.
func parseStructuredFeedback(response string) (FeedbackResult, bool) {
	s := strings.TrimSpace(response)
	if fenced := jsonFenceRe.FindStringSubmatch(s); fenced != nil {
		s = strings.TrimSpace(fenced[1])
	}
	if !strings.HasPrefix(s, "{") {
		return FeedbackResult{}, false
	}

	var r FeedbackResult
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return FeedbackResult{}, false
	}
	if r.Score < 0 || r.Score > 10 || strings.TrimSpace(r.Feedback) == "" {
		return FeedbackResult{}, false
	}
	return r, true
}

func parseMarkdownFeedback(response string) FeedbackResult {
	score := defaultScore
	if m := scoreRe.FindStringSubmatch(response); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}

	feedback := response
	if m := assessmentRe.FindStringSubmatch(response); m != nil {
		feedback = strings.TrimSpace(m[1])
	}

	return FeedbackResult{
		Score:        score,
		Feedback:     feedback,
		Strengths:    bulletLines(strengthsRe, response),
		Improvements: bulletLines(improvementsRe, response),
	}
}

func bulletLines(re *regexp.Regexp, s string) []string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") {
			out = append(out, strings.TrimSpace(strings.TrimPrefix(line, "-")))
		}
	}
	return out
}

// ScoreDistribution is the 4-bucket histogram of answer scores.
type ScoreDistribution struct {
	Excellent int `json:"excellent"` // >= 9
	Good      int `json:"good"`      // 7-8
	Fair      int `json:"fair"`      // 5-6
	Poor      int `json:"poor"`      // < 5
}

// Metrics aggregates one session's scored answers.
type Metrics struct {
	AverageScore       float64           `json:"average_score"`
	TotalQuestions     int               `json:"total_questions"`
	CompletedQuestions int               `json:"completed_questions"`
	ScoreDistribution  ScoreDistribution `json:"score_distribution"`
	Strengths          []string          `json:"strengths"`  // question types averaging >= 7
	Weaknesses         []string          `json:"weaknesses"` // question types averaging < 6
	AverageTimeSeconds float64           `json:"average_time_seconds"`
	TotalTimeSeconds   int64             `json:"total_time_seconds"`
}

// SessionMetrics aggregates only over questions that were actually scored;
// with no scored questions every field is zero.
func SessionMetrics(questions []models.InterviewQuestion) Metrics {
	var scored []models.InterviewQuestion
	for _, q := range questions {
		if q.Score != nil {
			scored = append(scored, q)
		}
	}

	var m Metrics
	if len(scored) == 0 {
		return m
	}
	m.TotalQuestions = len(questions)
	m.CompletedQuestions = len(scored)

	sum := 0
	byType := map[models.QuestionType][]int{}
	for _, q := range scored {
		s := *q.Score
		sum += s
		byType[q.Type] = append(byType[q.Type], s)

		switch {
		case s >= 9:
			m.ScoreDistribution.Excellent++
		case s >= 7:
			m.ScoreDistribution.Good++
		case s >= 5:
			m.ScoreDistribution.Fair++
		default:
			m.ScoreDistribution.Poor++
		}

		if q.TimeSpentSeconds > 0 {
			m.TotalTimeSeconds += q.TimeSpentSeconds
		}
	}
	m.AverageScore = float64(sum) / float64(len(scored))
	if m.TotalTimeSeconds > 0 {
		m.AverageTimeSeconds = float64(m.TotalTimeSeconds) / float64(len(scored))
	}

	for typ, scores := range byType {
		total := 0
		for _, s := range scores {
			total += s
		}
		avg := float64(total) / float64(len(scores))
		if avg >= 7 {
			m.Strengths = append(m.Strengths, string(typ))
		} else if avg < 6 {
			m.Weaknesses = append(m.Weaknesses, string(typ))
		}
	}

	return m
}

// PerformanceInsights renders a markdown summary of session metrics for the
// dashboard and the end-of-session feedback field.
func PerformanceInsights(m Metrics, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Performance Analysis for %s\n\n", topic)

	switch {
	case m.AverageScore >= 8:
		b.WriteString("**Excellent Performance!** You're demonstrating strong mastery of the concepts.\n\n")
	case m.AverageScore >= 6:
		b.WriteString("**Good Performance!** You have a solid foundation with room for growth.\n\n")
	default:
		b.WriteString("**Keep Learning!** Focus on strengthening your fundamentals.\n\n")
	}

	b.WriteString("### Score Distribution:\n")
	fmt.Fprintf(&b, "- Excellent (9-10): %d questions\n", m.ScoreDistribution.Excellent)
	fmt.Fprintf(&b, "- Good (7-8): %d questions\n", m.ScoreDistribution.Good)
	fmt.Fprintf(&b, "- Fair (5-6): %d questions\n", m.ScoreDistribution.Fair)
	fmt.Fprintf(&b, "- Needs Work (<5): %d questions\n\n", m.ScoreDistribution.Poor)

	if len(m.Strengths) > 0 {
		b.WriteString("### Your Strengths:\n")
		for _, s := range m.Strengths {
			b.WriteString("- " + s + "\n")
		}
		b.WriteString("\n")
	}
	if len(m.Weaknesses) > 0 {
		b.WriteString("### Areas to Focus On:\n")
		for _, w := range m.Weaknesses {
			b.WriteString("- " + w + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
