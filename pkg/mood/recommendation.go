package mood

import "strings"

// DefaultMood is used whenever a mood is not in one of the tables.
const DefaultMood = "relaxed"

/*
Recommendation is a single curated movie suggestion for a mood.
*/
type Recommendation struct {
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	MatchScore  int    `json:"matchScore"`
}

var recommendations = map[string][]Recommendation{
	"happy": {
		{"The Grand Budapest Hotel", "Comedy", "A whimsical caper about a legendary concierge", 95},
		{"Paddington 2", "Family Comedy", "A charming adventure with a beloved bear", 94},
		{"Knives Out", "Mystery Comedy", "A clever and entertaining whodunit", 92},
		{"Amélie", "Romantic Comedy", "A whimsical journey through Paris", 93},
		{"School of Rock", "Comedy Drama", "Inspiring and fun musical comedy", 91},
	},
	"sad": {
		{"Life is Beautiful", "Drama", "A poignant story of hope and love", 96},
		{"The Shawshank Redemption", "Drama", "A moving tale of friendship and perseverance", 95},
		{"Moonlight", "Drama", "An intimate exploration of identity", 93},
		{"Manchester by the Sea", "Drama", "A tender story about grief and healing", 92},
		{"About Time", "Drama Romance", "A heartfelt film about love and family", 91},
	},
	"excited": {
		{"Mad Max: Fury Road", "Action", "An adrenaline-pumping post-apocalyptic adventure", 94},
		{"Top Gun: Maverick", "Action Drama", "High-octane aerial thrills", 93},
		{"Inception", "Sci-Fi Action", "Mind-bending action and stunning visuals", 92},
		{"The Dark Knight", "Action Thriller", "Epic superhero action with depth", 93},
		{"Baby Driver", "Action Crime", "Fast-paced action set to great music", 91},
	},
	"relaxed": {
		{"Spirited Away", "Animation Fantasy", "A serene and magical animated journey", 95},
		{"Midnight in Paris", "Romance Fantasy", "A dreamy romantic escape", 92},
		{"My Neighbor Totoro", "Animation Family", "A peaceful and wholesome animated classic", 94},
		{"Lost in Translation", "Drama", "A quiet and contemplative film", 91},
		{"Garden State", "Comedy Drama", "A laid-back indie gem", 90},
	},
	"scared": {
		{"The Shining", "Horror", "A psychological horror masterpiece", 95},
		{"Hereditary", "Horror", "A deeply unsettling supernatural thriller", 93},
		{"A Quiet Place", "Horror Thriller", "Tense and terrifying with minimal dialogue", 92},
		{"Get Out", "Horror Thriller", "A smart and shocking thriller", 94},
		{"The Conjuring", "Horror", "A well-crafted haunted house experience", 91},
	},
}

// Normalize lowercases and trims a mood before it is looked up.
func Normalize(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

/*
Recommend returns up to limit curated recommendations for mood. Unknown moods
fall back to DefaultMood. The returned slice is a copy and can be kept by the
caller.
*/
func Recommend(mood string, limit int) []Recommendation {
	list, ok := recommendations[Normalize(mood)]
	if !ok {
		list = recommendations[DefaultMood]
	}

	if limit < 0 {
		limit = 0
	}

	if limit > len(list) {
		limit = len(list)
	}

	out := make([]Recommendation, limit)
	copy(out, list[:limit])

	return out
}

// Moods lists the moods that have curated recommendations.
func Moods() []string {
	return []string{"happy", "sad", "excited", "relaxed", "scared"}
}
