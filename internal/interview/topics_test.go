package interview

import "testing"

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"javascript", "JavaScript", true},
		{"JavaScript", "JavaScript", true},
		{"I'd like to practice JavaScript today", "JavaScript", true},
		{"java", "Java", true},
		{"python please", "Python", true},
		{"c++", "C++", true},
		{"C++", "C++", true},
		{"cplusplus", "C++", true},
		{"typescript", "TypeScript", true},
		{"let's do go", "Go", true},
		{"rust", "Rust", true},
		{"sql", "SQL", true},
		{"react", "React", true},
		{"next.js", "Next.js", true},
		{"nextjs", "Next.js", true},
		{"node.js", "Node.js", true},
		{"nodejs", "Node.js", true},
		{"data science", "Data Science", true},
		{"machine learning", "Machine Learning", true},
		{"nlp", "NLP", true},
		{"app development", "App Development", true},
		{"data structures & algorithms", "Data Structures & Algorithms", true},
		{"object-oriented programming", "Object-Oriented Programming", true},
		{"computer networks", "Computer Networks", true},
		{"database management", "Database Management", true},
		{"software engineering", "Software Engineering", true},
		{"operating systems", "Operating Systems", true},

		{"cobol", "", false},
		{"hello there", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := MatchTopic(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("MatchTopic(%q) = %q, %v; want %q, %v", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchTopicWholeWordOnly(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		// substrings inside longer words must not count
		{"i enjoy algorithms", "", false},
		{"postgresql", "", false},
		{"mongodb", "", false},
		{"categories", "", false},
		{"rustling leaves", "", false},

		// whole-word mentions still match, punctuation-adjacent included
		{"the go language", "Go", true},
		{"go, please", "Go", true},
		{"sql.", "SQL", true},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := MatchTopic(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("MatchTopic(%q) = %q, %v; want %q, %v", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchTopicFirstMatchWins(t *testing.T) {
	// JavaScript is listed before Java, so a message naming both resolves
	// to the earlier entry.
	got, ok := MatchTopic("javascript or java, not sure")
	if !ok || got != "JavaScript" {
		t.Fatalf("got %q, %v; want JavaScript", got, ok)
	}
}

func TestTopicsIsCopy(t *testing.T) {
	a := Topics()
	a[0].Display = "mutated"
	if b := Topics(); b[0].Display != "JavaScript" {
		t.Fatalf("Topics() leaked internal slice: %q", b[0].Display)
	}
}

func TestTrendingTopics(t *testing.T) {
	if got := TrendingTopics("Go"); len(got) == 0 {
		t.Fatal("expected trending subtopics for Go")
	}
	if got := TrendingTopics("Fortran"); got != nil {
		t.Fatalf("expected nil for unknown topic, got %v", got)
	}
}
