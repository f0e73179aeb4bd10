package mood

// DefaultGenre is TMDB's Drama genre.
const DefaultGenre = "18"

// TMDB genre ids per mood. A value may hold several comma separated ids.
var genres = map[string]string{
	"happy":       "35",
	"sad":         "18",
	"excited":     "28",
	"relaxed":     "10749",
	"scared":      "27",
	"romantic":    "10749",
	"adventurous": "12",
	"thoughtful":  "18",
	"chill":       "35,10749",
	"angry":       "28",
	"peaceful":    "36",
	"inspired":    "18",
	"energetic":   "28",
}

/*
Genre maps a mood to the TMDB with_genres value. Matching is case insensitive
and unknown moods map to DefaultGenre.
*/
func Genre(mood string) string {
	if genre, ok := genres[Normalize(mood)]; ok {
		return genre
	}

	return DefaultGenre
}

// ClassifierMoods is the vocabulary a classifier is asked to choose from.
func ClassifierMoods() []string {
	return []string{
		"happy", "sad", "excited", "relaxed", "scared", "romantic",
		"adventurous", "thoughtful", "chill", "angry", "peaceful",
		"inspired", "energetic",
	}
}
