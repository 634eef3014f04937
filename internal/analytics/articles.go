package analytics

import (
	"errors"
	"math"
	"slices"

	"github.com/steven-jacovitch/506-Final/internal/coerce"
	"github.com/steven-jacovitch/506-Final/internal/record"
)

// ErrNoWordCounts indicates an article group with no usable word counts.
var ErrNoWordCounts = errors.New("no articles with usable word counts")

// Article is one New York Times archive search result. Only the fields the
// analytics touch are modeled.
type Article struct {
	Abstract       string   `json:"abstract"`
	WebURL         string   `json:"web_url"`
	Headline       Headline `json:"headline"`
	NewsDesk       string   `json:"news_desk"`
	Byline         Byline   `json:"byline"`
	DocumentType   string   `json:"document_type"`
	TypeOfMaterial string   `json:"type_of_material"`
	PubDate        string   `json:"pub_date"`
	WordCount      *int     `json:"word_count"`
}

// Headline carries an article's display titles.
type Headline struct {
	Main string `json:"main"`
}

// Byline credits an article's authors.
type Byline struct {
	Original *string `json:"original"`
}

// ThinnedArticle is the compact article representation grouped under a news
// desk. Field order matches the serialized output contract.
type ThinnedArticle struct {
	WebURL         string  `json:"web_url"`
	HeadlineMain   string  `json:"headline_main"`
	NewsDesk       string  `json:"news_desk"`
	BylineOriginal *string `json:"byline_original"`
	DocumentType   string  `json:"document_type"`
	MaterialType   string  `json:"material_type"`
	Abstract       string  `json:"abstract"`
	WordCount      *int    `json:"word_count"`
	PubDate        string  `json:"pub_date"`
}

// Thin returns the compact representation of the article.
func (a Article) Thin() ThinnedArticle {
	return ThinnedArticle{
		WebURL:         a.WebURL,
		HeadlineMain:   a.Headline.Main,
		NewsDesk:       a.NewsDesk,
		BylineOriginal: a.Byline.Original,
		DocumentType:   a.DocumentType,
		MaterialType:   a.TypeOfMaterial,
		Abstract:       a.Abstract,
		WordCount:      a.WordCount,
		PubDate:        a.PubDate,
	}
}

// NewsDesks returns the distinct news desk names across articles, sorted
// alphanumerically. Sentinel desk values are skipped.
func NewsDesks(articles []Article) []string {
	desks := []string{}

	for _, article := range articles {
		value := coerce.ToNone(article.NewsDesk)

		desk, ok := value.(string)
		if !ok || desk == "" {
			continue
		}

		if !slices.Contains(desks, desk) {
			desks = append(desks, desk)
		}
	}

	slices.Sort(desks)

	return desks
}

// GroupArticlesByNewsDesk groups thinned articles under their parent desk.
// The newsDesks list supplies the group keys and their order; articles whose
// desk is not listed are dropped.
func GroupArticlesByNewsDesk(newsDesks []string, articles []Article) *record.Record {
	groups := record.New()
	for _, desk := range newsDesks {
		groups.Set(desk, []ThinnedArticle{})
	}

	for _, article := range articles {
		value, ok := groups.Get(article.NewsDesk)
		if !ok {
			continue
		}

		group := value.([]ThinnedArticle)
		groups.Set(article.NewsDesk, append(group, article.Thin()))
	}

	return groups
}

// MeanWordCount averages the word counts across articles, excluding those
// with a missing or zero count. The mean rounds to two decimal places.
func MeanWordCount(articles []ThinnedArticle) (float64, error) {
	wordCountSum := 0
	articleCount := 0

	for _, article := range articles {
		if article.WordCount != nil && *article.WordCount > 0 {
			articleCount++
			wordCountSum += *article.WordCount
		}
	}

	if articleCount == 0 {
		return 0, ErrNoWordCounts
	}

	mean := float64(wordCountSum) / float64(articleCount)

	return math.Round(mean*100) / 100, nil
}
