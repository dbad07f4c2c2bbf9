package inmemdb_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouncebacklearning/backend/core/paper"
	inmemdb "github.com/bouncebacklearning/backend/storage/database/inmem"
)

func createPapers(t *testing.T, repo paper.Repository, papers ...paper.Paper) []paper.Paper {
	t.Helper()
	created := make([]paper.Paper, 0, len(papers))
	for _, p := range papers {
		p, err := repo.CreatePaper(p)
		require.NoError(t, err)
		created = append(created, p)
	}
	return created
}

func titles(papers []paper.Paper) []string {
	res := make([]string, 0, len(papers))
	for _, p := range papers {
		res = append(res, p.Title)
	}
	return res
}

func TestPaperRepository_IDs(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())

	created := createPapers(t, repo,
		paper.Paper{Title: "a", Year: 2020},
		paper.Paper{Title: "b", Year: 2021},
	)
	assert.Equal(t, 1, created[0].ID)
	assert.Equal(t, 2, created[1].ID)

	ok, err := repo.DeletePaper(2)
	require.NoError(t, err)
	assert.True(t, ok)

	p := createPapers(t, repo, paper.Paper{Title: "c"})[0]
	assert.Equal(t, 3, p.ID, "ids are never reused")

	ok, err = repo.DeletePaper(2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetPaperByID(2)
	assert.ErrorIs(t, err, paper.ErrNotFound)
}

func TestPaperRepository_QueryPapers(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())
	createPapers(t, repo,
		paper.Paper{Title: "math-2022", Class: "10", Subject: "Mathematics", Year: 2022, Phase: paper.PhaseAnnual},
		paper.Paper{Title: "physics-2023", Class: "12", Subject: "Physics", Year: 2023, Phase: paper.PhaseAnnual},
		paper.Paper{Title: "math-2023", Class: "10", Subject: "Applied Maths", Year: 2023, Phase: paper.PhaseOne},
		paper.Paper{Title: "science-2021", Class: "8", Subject: "Science", Year: 2021, Phase: paper.PhaseTwo},
	)

	tests := []struct {
		name   string
		filter paper.QueryFilter
		want   []string
	}{
		{
			name: "no filter sorts by year desc, stable on ties",
			want: []string{"physics-2023", "math-2023", "math-2022", "science-2021"},
		},
		{
			name:   "class",
			filter: paper.QueryFilter{Class: "10"},
			want:   []string{"math-2023", "math-2022"},
		},
		{
			name:   "subject is a case-insensitive substring",
			filter: paper.QueryFilter{Subject: "MATH"},
			want:   []string{"math-2023", "math-2022"},
		},
		{
			name:   "year",
			filter: paper.QueryFilter{Year: 2023},
			want:   []string{"physics-2023", "math-2023"},
		},
		{
			name:   "filters are combined",
			filter: paper.QueryFilter{Class: "10", Year: 2023, Phase: paper.PhaseOne},
			want:   []string{"math-2023"},
		},
		{
			name:   "no match",
			filter: paper.QueryFilter{Class: "9"},
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			papers, err := repo.QueryPapers(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(papers))
		})
	}
}

func TestPaperRepository_QueryReturnsCopies(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())
	createPapers(t, repo, paper.Paper{Title: "a"})

	papers, err := repo.QueryPapers(paper.QueryFilter{})
	require.NoError(t, err)
	papers[0].Title = "changed"

	p, err := repo.GetPaperByID(1)
	require.NoError(t, err)
	assert.Equal(t, "a", p.Title)
}

func TestPaperRepository_IncrementPaperDownloads(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())
	createPapers(t, repo, paper.Paper{Title: "a", Downloads: 42})

	p, err := repo.GetPaperByID(1)
	require.NoError(t, err)
	assert.Zero(t, p.Downloads)

	require.NoError(t, repo.IncrementPaperDownloads(1))
	require.NoError(t, repo.IncrementPaperDownloads(1))
	require.NoError(t, repo.IncrementPaperDownloads(99))

	p, err = repo.GetPaperByID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Downloads)
}

func TestPaperRepository_ConcurrentCreate(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := repo.CreatePaper(paper.Paper{Title: "p"})
			assert.NoError(t, err)
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
