package main

import "github.com/listenupapp/bookshelf-server/internal/service"

// demoBooks mixes hand-tagged books with auto-tagged ones. Ratings of 4+
// seed the recommendation profile.
var demoBooks = []service.BookInput{
	{
		Title:           "The Hobbit",
		Author:          "J.R.R. Tolkien",
		Genre:           "Fantasy",
		Moods:           []string{"Adventurous", "Cozy"},
		Rating:          5,
		ReadingProgress: 100,
		ISBN:            "9780547928227",
		Format:          "Paperback",
		Description:     "Bilbo Baggins is swept into a quest to reclaim a dwarf kingdom from a dragon.",
	},
	{
		Title:       "Fourth Wing",
		Author:      "Rebecca Yarros",
		Series:      "The Empyrean",
		SeriesOrder: "1",
		Format:      "Hardcover",
		Description: "A war college for dragon riders, a dangerous enemies to lovers romance, and plenty of death.",
		AutoTag:     true,
	},
	{
		Title:       "Iron Flame",
		Author:      "Rebecca Yarros",
		Series:      "The Empyrean",
		SeriesOrder: "2",
		Format:      "Hardcover",
		Description: "The war with the venin escalates. Steamy, dark, and full of betrayal.",
		AutoTag:     true,
	},
	{
		Title:           "Beach Read",
		Author:          "Emily Henry",
		Genre:           "Romance",
		Moods:           []string{"Funny", "Romantic"},
		Spice:           3,
		Rating:          4,
		ReadingProgress: 100,
		Format:          "Ebook",
		Description:     "Two writers with opposite styles swap genres for a summer.",
	},
	{
		Title:       "Project Hail Mary",
		Author:      "Andy Weir",
		Format:      "Audiobook",
		Description: "A lone astronaut wakes up in space with no memory and a mission to save Earth. Funny and hopeful science fiction.",
		AutoTag:     true,
	},
	{
		Title:       "The Thursday Murder Club",
		Author:      "Richard Osman",
		Format:      "Paperback",
		Description: "Four retirees in a peaceful village investigate a murder. A cozy mystery with heart.",
		AutoTag:     true,
	},
	{
		Title:           "Mexican Gothic",
		Author:          "Silvia Moreno-Garcia",
		Genre:           "Horror",
		Moods:           []string{"Dark", "Mysterious"},
		ContentWarnings: []string{"Body Horror", "Incest"},
		Rating:          2,
		ReadingProgress: 100,
	},
}

type demoList struct {
	name        string
	description string
	titles      []string
}

var demoLists = []demoList{
	{name: "Owned", description: "On the shelf", titles: []string{"The Hobbit", "Beach Read", "Mexican Gothic"}},
	{name: "Up Next", titles: []string{"Fourth Wing", "Project Hail Mary"}},
}
