package autotag

// Entry maps a label (mood, warning, or genre) to the keywords that suggest it.
type Entry struct {
	Name     string   `koanf:"name"`
	Keywords []string `koanf:"keywords"`
}

// SpiceEntry maps a spice level to the keywords that suggest it.
type SpiceEntry struct {
	Level    int      `koanf:"level"`
	Keywords []string `koanf:"keywords"`
}

// Tables holds the keyword vocabularies used for classification.
// Entry order is significant: results follow table order, and spice and
// genre suggestions return the first matching entry.
type Tables struct {
	Moods    []Entry      `koanf:"moods"`
	Warnings []Entry      `koanf:"warnings"`
	Spice    []SpiceEntry `koanf:"spice"`
	Genres   []Entry      `koanf:"genres"`
}

// DefaultTables returns the built-in vocabulary.
// Each call returns a fresh copy, so callers may extend it freely.
func DefaultTables() Tables {
	return Tables{
		Moods: []Entry{
			{Name: "Cozy", Keywords: []string{"cozy", "heartwarming", "comforting", "wholesome", "small town"}},
			{Name: "Dark", Keywords: []string{"dark", "grim", "bleak", "haunting", "sinister"}},
			{Name: "Funny", Keywords: []string{"funny", "hilarious", "humor", "witty", "laugh"}},
			{Name: "Emotional", Keywords: []string{"emotional", "tearjerker", "heartbreaking", "moving", "poignant"}},
			{Name: "Adventurous", Keywords: []string{"adventure", "quest", "journey", "expedition"}},
			{Name: "Mysterious", Keywords: []string{"mystery", "mysterious", "secret", "enigma", "whodunit"}},
			{Name: "Romantic", Keywords: []string{"romance", "romantic", "love story", "swoon"}},
			{Name: "Tense", Keywords: []string{"thriller", "suspense", "tense", "gripping", "edge of your seat"}},
			{Name: "Hopeful", Keywords: []string{"hopeful", "uplifting", "inspiring", "heartening"}},
			{Name: "Reflective", Keywords: []string{"reflective", "thoughtful", "philosophical", "introspective"}},
			{Name: "Whimsical", Keywords: []string{"whimsical", "quirky", "fairy tale", "enchanting"}},
		},
		Warnings: []Entry{
			{Name: "Violence", Keywords: []string{"violence", "violent", "murder", "gore", "bloody"}},
			{Name: "Sexual Content", Keywords: []string{"explicit", "sex scene", "sexual content", "on-page sex"}},
			{Name: "Death", Keywords: []string{"death", "grief", "dying", "funeral"}},
			{Name: "Abuse", Keywords: []string{"abuse", "abusive", "domestic violence"}},
			{Name: "Self-Harm", Keywords: []string{"self-harm", "self harm", "suicide"}},
			{Name: "Substance Abuse", Keywords: []string{"addiction", "drug use", "alcoholism", "overdose"}},
			{Name: "Mental Health", Keywords: []string{"depression", "anxiety", "ptsd", "mental illness"}},
			{Name: "War", Keywords: []string{"war", "battlefield", "genocide"}},
		},
		Spice: []SpiceEntry{
			{Level: 5, Keywords: []string{"erotic", "erotica", "smut", "explicit"}},
			{Level: 4, Keywords: []string{"steamy", "spicy", "sensual"}},
			{Level: 3, Keywords: []string{"sexy", "passionate", "hot"}},
			{Level: 2, Keywords: []string{"slow burn", "flirty", "kissing"}},
			{Level: 1, Keywords: []string{"sweet", "clean romance", "closed door"}},
		},
		Genres: []Entry{
			{Name: "Romance", Keywords: []string{"romance", "love story", "romantic"}},
			{Name: "Fantasy", Keywords: []string{"fantasy", "magic", "dragon", "fae", "sorcer"}},
			{Name: "Sci-Fi", Keywords: []string{"science fiction", "sci-fi", "space", "time travel", "alien", "robot"}},
			{Name: "Mystery", Keywords: []string{"mystery", "detective", "whodunit", "investigation"}},
			{Name: "Thriller", Keywords: []string{"thriller", "suspense", "serial killer"}},
			{Name: "Horror", Keywords: []string{"horror", "haunted", "ghost", "monster"}},
			{Name: "Historical Fiction", Keywords: []string{"historical", "regency", "victorian", "world war"}},
			{Name: "Non-Fiction", Keywords: []string{"memoir", "biography", "non-fiction", "nonfiction", "self-help"}},
			{Name: "Contemporary", Keywords: []string{"contemporary", "modern day", "present day"}},
		},
	}
}
