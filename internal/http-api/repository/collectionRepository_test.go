package repository

import (
	"testing"

	"streamhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

// The preview loader preloads chapters ordered number DESC across all members in one
// batched query, then trims per member. Every member must keep its own latest chapter,
// not just the first member in the batch.
func TestKeepLatestChapter_EveryMemberKeepsItsOwnLatest(t *testing.T) {
	members := []models.CollectionComic{
		{
			ComicID: 1,
			Comic: &models.Comic{
				ID: 1,
				Chapters: []models.Chapter{
					{ComicID: 1, Number: 12.5},
					{ComicID: 1, Number: 12},
				},
			},
		},
		{
			ComicID: 2,
			Comic: &models.Comic{
				ID: 2,
				Chapters: []models.Chapter{
					{ComicID: 2, Number: 3},
					{ComicID: 2, Number: 2},
				},
			},
		},
	}

	keepLatestChapter(members)

	assert.Len(t, members[0].Comic.Chapters, 1)
	assert.Equal(t, 12.5, members[0].Comic.Chapters[0].Number)
	assert.Len(t, members[1].Comic.Chapters, 1)
	assert.Equal(t, float64(3), members[1].Comic.Chapters[0].Number)
}

func TestKeepLatestEpisode_EveryMemberKeepsItsOwnLatest(t *testing.T) {
	members := []models.CollectionMovie{
		{
			MovieID: 10,
			Movie: &models.Movie{
				ID: 10,
				Episodes: []models.Episode{
					{MovieID: 10, Number: 8},
					{MovieID: 10, Number: 7},
				},
			},
		},
		{
			MovieID: 20,
			Movie: &models.Movie{
				ID: 20,
				Episodes: []models.Episode{
					{MovieID: 20, Number: 2},
					{MovieID: 20, Number: 1},
				},
			},
		},
	}

	keepLatestEpisode(members)

	assert.Len(t, members[0].Movie.Episodes, 1)
	assert.Equal(t, 8, members[0].Movie.Episodes[0].Number)
	assert.Len(t, members[1].Movie.Episodes, 1)
	assert.Equal(t, 2, members[1].Movie.Episodes[0].Number)
}

func TestKeepLatestChapter_HandlesMissingPreload(t *testing.T) {
	members := []models.CollectionComic{
		{ComicID: 1},                                    // Comic not preloaded
		{ComicID: 2, Comic: &models.Comic{ID: 2}},       // no chapters
		{ComicID: 3, Comic: &models.Comic{ID: 3, Chapters: []models.Chapter{{Number: 1}}}},
	}

	keepLatestChapter(members)

	assert.Nil(t, members[0].Comic)
	assert.Empty(t, members[1].Comic.Chapters)
	assert.Len(t, members[2].Comic.Chapters, 1)
}
