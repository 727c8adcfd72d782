package classify

import (
	"regexp"
	"strings"
)

// Sentinels returned when no state or topic can be determined.
const (
	UnknownState = "Unknown"
	GeneralTopic = "General"
)

// States lists the 50 U.S. state names scanned when tagging an article.
// Order matters: the first name found in the article text wins, so e.g.
// "West Virginia" in a title resolves to "Virginia".
var States = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware",
	"Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
	"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// TopicEntry binds a topic name to the keywords that score for it.
type TopicEntry struct {
	Name     string
	Keywords []string
}

// Topics is the fixed topic vocabulary. Kept as a slice rather than a map
// so that equal scores always resolve to the earlier entry.
var Topics = []TopicEntry{
	{"education", []string{"school", "teacher", "education", "students", "university", "curriculum", "classroom"}},
	{"health", []string{"health", "hospital", "medicine", "doctor", "nurse", "COVID", "pandemic", "mental health"}},
	{"economy", []string{"economy", "jobs", "tax", "finance", "budget", "revenue", "unemployment"}},
	{"environment", []string{"climate", "environment", "pollution", "wildlife", "sustainability", "renewable"}},
	{"politics", []string{"election", "vote", "legislation", "senate", "governor", "policy", "lawmakers"}},
}

// topicPatterns holds a word-boundary regexp per keyword, parallel to Topics.
var topicPatterns = compileTopicPatterns()

func compileTopicPatterns() [][]*regexp.Regexp {
	patterns := make([][]*regexp.Regexp, len(Topics))
	for i, entry := range Topics {
		patterns[i] = make([]*regexp.Regexp, len(entry.Keywords))
		for j, kw := range entry.Keywords {
			patterns[i][j] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		}
	}
	return patterns
}

// State returns the first state name appearing as a substring in the title
// or description, or UnknownState. The match is case-sensitive and not
// word-boundary aware.
func State(title, description string) string {
	for _, state := range States {
		if strings.Contains(title, state) || strings.Contains(description, state) {
			return state
		}
	}
	return UnknownState
}

// Topic scores each topic by counting whole-word keyword occurrences in the
// lower-cased title and description, and returns the highest-scoring topic.
// Ties keep the earlier entry in Topics. GeneralTopic is returned when
// nothing scores.
func Topic(title, description string) string {
	content := strings.ToLower(title + " " + description)

	best := 0
	bestScore := 0
	for i := range Topics {
		score := 0
		for _, re := range topicPatterns[i] {
			score += len(re.FindAllStringIndex(content, -1))
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if bestScore == 0 {
		return GeneralTopic
	}
	return Topics[best].Name
}
