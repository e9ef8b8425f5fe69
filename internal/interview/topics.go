package interview

import "strings"

// Topic is an interview subject the user can pick.
type Topic struct {
	Display  string
	Category string
}

// topics is the fixed enumerated list. Order matters: topic matching is
// first-match-wins, so JavaScript is listed before Java on purpose.
var topics = []Topic{
	{"JavaScript", "Programming Languages"},
	{"Python", "Programming Languages"},
	{"Java", "Programming Languages"},
	{"C++", "Programming Languages"},
	{"TypeScript", "Programming Languages"},
	{"Go", "Programming Languages"},
	{"Rust", "Programming Languages"},
	{"SQL", "Programming Languages"},
	{"React", "Frameworks & Technologies"},
	{"Next.js", "Frameworks & Technologies"},
	{"Node.js", "Frameworks & Technologies"},
	{"Data Science", "Specialized Domains"},
	{"Machine Learning", "Specialized Domains"},
	{"NLP", "Specialized Domains"},
	{"App Development", "Specialized Domains"},
	{"Data Structures & Algorithms", "Computer Science Fundamentals"},
	{"Object-Oriented Programming", "Computer Science Fundamentals"},
	{"Computer Networks", "Computer Science Fundamentals"},
	{"Database Management", "Computer Science Fundamentals"},
	{"Software Engineering", "Computer Science Fundamentals"},
	{"Operating Systems", "Computer Science Fundamentals"},
}

// Topics returns the fixed topic list in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchTopic finds the first topic mentioned in the message. The test is
// case-insensitive, and a topic counts as mentioned only when its name
// appears as a whole word, with no letter or digit touching either side, so
// "algorithms" never triggers Go and "postgresql" never triggers SQL. A
// second pass accepts symbol-bearing names with the punctuation stripped
// ("nextjs" matches Next.js) and a "plusplus" spelling for C++. When a
// message names several topics, the earliest list entry wins.
func MatchTopic(message string) (string, bool) {
	msg := strings.ToLower(message)

	for _, t := range topics {
		name := strings.ToLower(t.Display)
		if containsWord(msg, name) {
			return t.Display, true
		}
		if strings.Contains(name, "++") && containsWord(msg, strings.ReplaceAll(name, "++", "plusplus")) {
			return t.Display, true
		}
		if stripped := stripNonAlnum(name); len(stripped) > 1 && stripped != name && containsWord(msg, stripped) {
			return t.Display, true
		}
	}
	return "", false
}

func isWordByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// containsWord reports whether needle occurs in msg with no letter or digit
// immediately before or after the occurrence.
func containsWord(msg, needle string) bool {
	if needle == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(msg[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if (start == 0 || !isWordByte(msg[start-1])) && (end == len(msg) || !isWordByte(msg[end])) {
			return true
		}
		from = start + 1
	}
}

// trendingTopics holds the per-topic subtopic table embedded in question
// prompts so generated questions skew toward current practice.
var trendingTopics = map[string][]string{
	"JavaScript": {
		"React Server Components", "Next.js 14", "TypeScript 5.0", "Vite", "Web Components",
		"WebAssembly", "Edge Computing", "Micro-frontends", "GraphQL", "Deno 2.0",
	},
	"Python": {
		"FastAPI", "Pydantic v2", "AsyncIO", "Type Hints", "Poetry",
		"Polars", "Streamlit", "LangChain", "MLOps", "Python 3.12",
	},
	"Java": {
		"Spring Boot 3", "Virtual Threads", "GraalVM", "Project Loom", "Reactive Streams",
		"Microservices", "Kubernetes", "JUnit 5", "Maven vs Gradle", "Java 21 LTS",
	},
	"TypeScript": {
		"Strict Mode", "Template Literal Types", "Conditional Types", "Utility Types",
		"Declaration Merging", "Module Resolution", "TSConfig", "Type Guards", "Generics",
	},
	"Go": {
		"Generics", "Goroutines", "Channels", "Context", "Error Wrapping",
		"Modules", "Profiling", "gRPC", "Testing", "Garbage Collector",
	},
	"React": {
		"React 18", "Concurrent Features", "Suspense", "Server Components", "Hooks",
		"Context API", "State Management", "Performance Optimization", "Testing", "Next.js Integration",
	},
	"Next.js": {
		"App Router", "Server Actions", "Streaming", "Edge Runtime", "Middleware",
		"API Routes", "Static Generation", "Dynamic Routing", "Image Optimization", "Deployment",
	},
	"Node.js": {
		"Express.js", "Fastify", "Event Loop", "Streams", "Clustering",
		"Worker Threads", "Performance Monitoring", "Security", "Testing", "Deployment",
	},
	"Data Science": {
		"Pandas", "NumPy", "Matplotlib", "Seaborn", "Scikit-learn",
		"Statistical Analysis", "Data Visualization", "Feature Engineering", "A/B Testing", "Big Data",
	},
	"Machine Learning": {
		"Supervised Learning", "Unsupervised Learning", "Deep Learning", "Neural Networks", "TensorFlow",
		"PyTorch", "Model Evaluation", "Feature Selection", "Hyperparameter Tuning", "MLOps",
	},
	"NLP": {
		"Transformers", "BERT", "GPT", "Text Preprocessing", "Tokenization",
		"Named Entity Recognition", "Sentiment Analysis", "Language Models", "Embeddings", "NLTK",
	},
	"App Development": {
		"React Native", "Flutter", "Swift", "Kotlin", "Cross-platform",
		"Native Development", "State Management", "Navigation", "Performance", "App Store",
	},
	"Data Structures & Algorithms": {
		"Arrays", "Linked Lists", "Trees", "Graphs", "Hash Tables",
		"Sorting Algorithms", "Search Algorithms", "Dynamic Programming", "Greedy Algorithms", "Complexity Analysis",
	},
	"Object-Oriented Programming": {
		"Encapsulation", "Inheritance", "Polymorphism", "Abstraction", "Design Patterns",
		"SOLID Principles", "Composition vs Inheritance", "Interface Design", "Code Reusability", "Best Practices",
	},
	"Computer Networks": {
		"TCP/IP", "HTTP/HTTPS", "DNS", "Load Balancing", "CDN",
		"Network Security", "Protocols", "OSI Model", "Routing", "Network Troubleshooting",
	},
	"Database Management": {
		"SQL Queries", "Database Design", "Normalization", "Indexing", "Transactions",
		"ACID Properties", "NoSQL", "Database Performance", "Backup & Recovery", "Data Modeling",
	},
	"Software Engineering": {
		"SDLC", "Agile Methodology", "Version Control", "Testing Strategies", "Code Review",
		"CI/CD", "Documentation", "Requirements Analysis", "System Design", "Project Management",
	},
	"Operating Systems": {
		"Process Management", "Memory Management", "File Systems", "Concurrency", "Synchronization",
		"Deadlocks", "Scheduling Algorithms", "Virtual Memory", "System Calls", "Security",
	},
}

// TrendingTopics returns the subtopic list for a topic, or nil if none is known.
func TrendingTopics(topic string) []string {
	return trendingTopics[topic]
}
