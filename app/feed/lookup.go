package feed

// EpisodeByID returns the first episode with the given slug.
func EpisodeByID(episodes []Episode, id string) (*Episode, bool) {
	for i := range episodes {
		if episodes[i].ID == id {
			return &episodes[i], true
		}
	}
	return nil, false
}

// EpisodeByNumber returns the first episode carrying the given number.
func EpisodeByNumber(episodes []Episode, number int) (*Episode, bool) {
	for i := range episodes {
		if episodes[i].Number == number {
			return &episodes[i], true
		}
	}
	return nil, false
}

// SlugCollisions maps every slug shared by more than one episode to the
// number of episodes using it. Lookups by slug resolve to the first match.
func SlugCollisions(episodes []Episode) map[string]int {
	counts := make(map[string]int, len(episodes))
	for _, episode := range episodes {
		counts[episode.ID]++
	}

	collisions := make(map[string]int)
	for slug, count := range counts {
		if count > 1 {
			collisions[slug] = count
		}
	}
	return collisions
}

// Related returns up to limit episodes other than the one with the given
// slug, in list order.
func Related(episodes []Episode, id string, limit int) []Episode {
	related := make([]Episode, 0, limit)
	for _, episode := range episodes {
		if len(related) == limit {
			break
		}
		if episode.ID != id {
			related = append(related, episode)
		}
	}
	return related
}
