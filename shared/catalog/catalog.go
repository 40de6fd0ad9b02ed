package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Show identifies one podcast and the YouTube channel it publishes to.
// Channel accepts either an "@handle" or a raw "UC..." channel ID.
type Show struct {
	Name    string `yaml:"name"`
	Channel string `yaml:"channel"`
}

// Genre is an ordered group of shows under one genre tag.
type Genre struct {
	Tag   string `yaml:"genre"`
	Shows []Show `yaml:"shows"`
}

// Catalog is the static scrape configuration: which podcasts to pull,
// grouped by genre, in a fixed iteration order. Loaded once at startup
// and passed into the scraper, never mutated.
type Catalog struct {
	Genres []Genre `yaml:"genres"`
}

// TotalShows counts shows across all genres.
func (c *Catalog) TotalShows() int {
	total := 0
	for _, g := range c.Genres {
		total += len(g.Shows)
	}
	return total
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if len(c.Genres) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no genres", path)
	}
	for _, g := range c.Genres {
		if g.Tag == "" {
			return nil, fmt.Errorf("catalog file %s has a genre without a tag", path)
		}
		for _, s := range g.Shows {
			if s.Name == "" || s.Channel == "" {
				return nil, fmt.Errorf("catalog genre %s has a show missing name or channel", g.Tag)
			}
		}
	}

	return &c, nil
}

// Default is the built-in catalog: top chart podcasts per genre.
func Default() *Catalog {
	return &Catalog{Genres: []Genre{
		{Tag: "comedy", Shows: []Show{
			{Name: "The Joe Rogan Experience", Channel: "@joerogan"},
			{Name: "Call Her Daddy", Channel: "@callherdaddy"},
			{Name: "Kill Tony", Channel: "@KillTony"},
			{Name: "Flagrant", Channel: "@flagrant"},
			{Name: "Bad Friends", Channel: "@BadFriends"},
		}},
		{Tag: "news_politics", Shows: []Show{
			{Name: "The Daily", Channel: "@NYTimes"},
			{Name: "Pod Save America", Channel: "@PodSaveAmerica"},
			{Name: "The Ben Shapiro Show", Channel: "@BenShapiro"},
			{Name: "The Megyn Kelly Show", Channel: "@MegynKelly"},
			{Name: "Breaking Points", Channel: "@breakingpoints"},
		}},
		{Tag: "business", Shows: []Show{
			{Name: "The Diary of a CEO", Channel: "@TheDiaryOfACEO"},
			{Name: "The All-In Podcast", Channel: "@allin"},
			{Name: "My First Million", Channel: "@MyFirstMillionPod"},
			{Name: "How I Built This", Channel: "@HowIBuiltThis"},
			{Name: "The Tim Ferriss Show", Channel: "@timferriss"},
		}},
		{Tag: "health_fitness", Shows: []Show{
			{Name: "Huberman Lab", Channel: "@hubermanlab"},
			{Name: "The Mel Robbins Podcast", Channel: "@melrobbins"},
			{Name: "The Peter Attia Drive", Channel: "@PeterAttiaMD"},
			{Name: "On Purpose with Jay Shetty", Channel: "@JayShettyPodcast"},
			{Name: "Zoe Science & Nutrition", Channel: "@joinZOE"},
		}},
		{Tag: "true_crime", Shows: []Show{
			{Name: "Crime Junkie", Channel: "@CrimeJunkie"},
			{Name: "Morbid", Channel: "@morbidpodcast"},
			{Name: "Serial", Channel: "@serialpodcast"},
			{Name: "Casefile True Crime", Channel: "@CasefilePresents"},
			{Name: "My Favorite Murder", Channel: "@myfavoritemurder"},
		}},
		{Tag: "sports", Shows: []Show{
			{Name: "New Heights with Jason & Travis Kelce", Channel: "@newheightshow"},
			{Name: "The Pat McAfee Show", Channel: "@PatMcAfeeShow"},
			{Name: "Pardon My Take", Channel: "@PardonMyTake"},
			{Name: "The Bill Simmons Podcast", Channel: "@BillSimmons"},
			{Name: "Spittin' Chiclets", Channel: "@spittinchiclets"},
		}},
		{Tag: "technology", Shows: []Show{
			{Name: "Lex Fridman Podcast", Channel: "@lexfridman"},
			{Name: "Acquired", Channel: "@AcquiredFM"},
			{Name: "Hard Fork", Channel: "@hardfork"},
			{Name: "All-In Podcast", Channel: "@allin"},
			{Name: "Darknet Diaries", Channel: "@JackRhysider"},
		}},
		{Tag: "society_culture", Shows: []Show{
			{Name: "Armchair Expert with Dax Shepard", Channel: "@ArmchairExpertPod"},
			{Name: "SmartLess", Channel: "@SmartLess"},
			{Name: "We Can Do Hard Things", Channel: "@wecandohardthings"},
			{Name: "Stuff You Should Know", Channel: "@StuffYouShouldKnow"},
			{Name: "Freakonomics Radio", Channel: "@freakonomics"},
		}},
		{Tag: "education", Shows: []Show{
			{Name: "The Jordan B. Peterson Podcast", Channel: "@JordanBPeterson"},
			{Name: "Hidden Brain", Channel: "@HiddenBrain"},
			{Name: "Radiolab", Channel: "@Radiolab"},
			{Name: "TED Talks Daily", Channel: "@TED"},
			{Name: "Making Sense with Sam Harris", Channel: "@samharrisorg"},
		}},
		{Tag: "history", Shows: []Show{
			{Name: "Hardcore History", Channel: "@dancarlin"},
			{Name: "The Rest is History", Channel: "@restishistory"},
			{Name: "History That Doesn't Suck", Channel: "@HistoryThatDoesntSuck"},
			{Name: "Revolutions", Channel: "@RevolutionsPodcast"},
			{Name: "American History Tellers", Channel: "@Wondery"},
		}},
	}}
}
