package feed

import (
	"strings"
)

const maxTopics = 3

var topicVocabulary = []string{
	"Technology", "Business", "Creativity", "Leadership", "Innovation",
	"Design", "Marketing", "Startups", "AI", "Productivity", "Growth",
	"Culture", "Education", "Health", "Science", "Arts", "Music",
	"Entrepreneurship", "Finance", "Career", "Mindset", "Interview",
}

var defaultTopics = []string{"Podcast", "Interview"}

// ExtractTopics tags an episode with up to three vocabulary terms found
// in its title or description, in vocabulary order.
func ExtractTopics(title, description string) []string {
	text := title + " " + description

	found := make([]string, 0, maxTopics)
	for _, topic := range topicVocabulary {
		if matchesTopic(text, topic) {
			found = append(found, topic)
			if len(found) == maxTopics {
				break
			}
		}
	}

	if len(found) == 0 {
		return append([]string(nil), defaultTopics...)
	}

	return found
}

func matchesTopic(value, topic string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(topic))
}
