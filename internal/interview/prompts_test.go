package interview

import (
	"strings"
	"testing"

	"github.com/interviewxp/backend/internal/models"
)

func TestLanguageSelectionPrompt(t *testing.T) {
	out := LanguageSelectionPrompt()
	for _, topic := range Topics() {
		if !strings.Contains(out, "**"+topic.Display+"**") {
			t.Errorf("welcome prompt missing topic %q", topic.Display)
		}
	}
	for _, category := range []string{
		"Programming Languages",
		"Frameworks & Technologies",
		"Specialized Domains",
		"Computer Science Fundamentals",
	} {
		if !strings.Contains(out, "**"+category+":**") {
			t.Errorf("welcome prompt missing category %q", category)
		}
	}
}

func TestSkillAssessmentPrompt(t *testing.T) {
	out := SkillAssessmentPrompt("Rust")
	if strings.Count(out, "Rust") < 2 {
		t.Errorf("prompt should name the topic in both greeting and question:\n%s", out)
	}
	if !strings.Contains(out, "**Skill Level Guide:**") {
		t.Error("prompt missing skill level guide")
	}
}

func TestUnrecognizedTopicPrompt(t *testing.T) {
	out := UnrecognizedTopicPrompt()
	if !strings.Contains(out, "JavaScript") || !strings.Contains(out, "Operating Systems") {
		t.Errorf("re-prompt should enumerate topics:\n%s", out)
	}
}

func TestQuestionPrompt(t *testing.T) {
	ctx := GenerationContext{
		Language:     "Go",
		SkillLevel:   4,
		AverageScore: 8.2,
		PreviousQuestions: []models.InterviewQuestion{
			{Question: "q1"}, {Question: "q2"},
		},
	}
	out := QuestionPrompt(ctx)

	for _, want := range []string{
		"expert Go technical interviewer",
		"Skill Level: 4/5",
		"Questions Asked: 2",
		"Current Performance: 8.2/10",
		"**MCQ Format:**",
		"**Code Analysis Format:**",
		"**Code Completion Format:**",
		"**DSA Challenge Format:**",
		"Go Interview Question #3",
		"Emphasize advanced patterns, optimization, and best practices",
		"Increase complexity and depth",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("question prompt missing %q", want)
		}
	}

	// Trending list is capped at five entries.
	trendLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "- Trending Topics: ") {
			trendLine = line
		}
	}
	if trendLine == "" {
		t.Fatal("question prompt missing trending topics line")
	}
	if n := strings.Count(trendLine, ","); n != 4 {
		t.Errorf("expected 5 trending entries, got %d commas in %q", n, trendLine)
	}
}

func TestQuestionPromptLowPerformance(t *testing.T) {
	out := QuestionPrompt(GenerationContext{Language: "Python", SkillLevel: 1, AverageScore: 4})
	if !strings.Contains(out, "Focus on fundamentals and basic syntax") {
		t.Error("expected beginner difficulty guidance")
	}
	if !strings.Contains(out, "Provide more guidance and simpler concepts") {
		t.Error("expected low-score adaptation guidance")
	}
}

func TestSampleQuestion(t *testing.T) {
	tests := []struct {
		topic string
		level int
		want  string
	}{
		{"JavaScript", 1, "**JavaScript Interview Question #1**"},
		{"JavaScript", 2, "**JavaScript Interview Question #1**"},
		{"JavaScript", 3, "**Code Analysis Challenge**"},
		{"JavaScript", 4, "**Code Analysis Challenge**"},
		{"JavaScript", 5, "**Algorithm Challenge**"},
		{"Go", 3, "**Code Analysis Challenge**"},
		{"Rust", 3, "**Rust Interview Question**"},
	}
	for _, tt := range tests {
		got := SampleQuestion(tt.topic, tt.level)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("SampleQuestion(%q, %d) = %q..., want prefix %q", tt.topic, tt.level, got[:40], tt.want)
		}
	}
}
