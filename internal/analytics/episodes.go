// Package analytics derives summary views from episode and article datasets:
// type conversion sweeps, viewership rankings, per-director credit counts,
// and news desk groupings.
package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/steven-jacovitch/506-Final/internal/coerce"
	"github.com/steven-jacovitch/506-Final/internal/record"
)

// ConvertEpisodeValues coerces the numeric and list-valued episode fields in
// place and returns the same slice. Sentinel strings in any field become nil.
func ConvertEpisodeValues(episodes []*record.Record) []*record.Record {
	for _, episode := range episodes {
		if episode == nil {
			continue
		}

		for _, key := range episode.Keys() {
			value, _ := episode.Get(key)
			value = coerce.ToNone(value)

			if value != nil {
				switch key {
				case "series_season_num", "series_episode_num", "season_episode_num":
					value = coerce.ToInt(value)
				case "episode_prod_code", "episode_us_viewers_mm":
					value = coerce.ToFloat(value)
				case "episode_writers":
					value = coerce.ToList(value, ", ")
				}
			}

			episode.Set(key, value)
		}
	}

	return episodes
}

// HasViewerData reports whether an episode carries a usable viewership value.
func HasViewerData(episode *record.Record) bool {
	if episode == nil {
		return false
	}

	value, _ := episode.Get("episode_us_viewers_mm")

	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case int64:
		return v != 0
	case bool:
		return v
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// MostViewedEpisode returns the episode(s) with the highest recorded
// viewership, keeping every episode that ties for the top value. Episodes
// without viewership data are ignored.
func MostViewedEpisode(episodes []*record.Record) []*record.Record {
	var top []*record.Record

	viewerCount := 0.0

	for _, episode := range episodes {
		if !HasViewerData(episode) {
			continue
		}

		value, _ := episode.Get("episode_us_viewers_mm")

		views, ok := value.(float64)
		if !ok {
			continue
		}

		switch {
		case views > viewerCount:
			viewerCount = views
			top = []*record.Record{episode}
		case views == viewerCount:
			top = append(top, episode)
		}
	}

	return top
}

// CountEpisodesByDirector tallies episode credits per director. A solo
// director earns 1.0 per episode; co-directors split the credit evenly.
func CountEpisodesByDirector(episodes []*record.Record) map[string]float64 {
	counts := map[string]float64{}

	for _, episode := range episodes {
		if episode == nil {
			continue
		}

		value, _ := episode.Get("episode_director")

		director, ok := value.(string)
		if !ok || director == "" {
			continue
		}

		credited := strings.Split(director, ", ")
		share := 1.0 / float64(len(credited))

		for _, name := range credited {
			counts[name] += share
		}
	}

	return counts
}

// SortDirectorCounts orders the credit table by episode count descending,
// breaking ties by the final token of each director's name.
func SortDirectorCounts(counts map[string]float64) *record.Record {
	directors := make([]string, 0, len(counts))
	for director := range counts {
		directors = append(directors, director)
	}

	slices.SortFunc(directors, func(a, b string) int {
		if counts[a] != counts[b] {
			return cmp.Compare(counts[b], counts[a])
		}

		if c := cmp.Compare(lastNameToken(a), lastNameToken(b)); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	sorted := record.New()
	for _, director := range directors {
		sorted.Set(director, counts[director])
	}

	return sorted
}

func lastNameToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}

	return fields[len(fields)-1]
}
