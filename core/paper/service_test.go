package paper_test

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouncebacklearning/backend/core/paper"
	inmemdb "github.com/bouncebacklearning/backend/storage/database/inmem"
	testutil "github.com/bouncebacklearning/backend/tests"
)

func TestService_Create(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	paper.NowFunc = func() time.Time { return now }
	defer func() { paper.NowFunc = time.Now }()

	svc := paper.NewService(inmemdb.NewPaperRepository(inmemdb.Open()))

	p, err := svc.Create(paper.NewPaper{
		Title:    "Mathematics - 2023",
		Class:    "10",
		Subject:  "Mathematics",
		Year:     2023,
		Phase:    paper.PhaseAnnual,
		FileName: "math.pdf",
		FilePath: "/uploads/math.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, now.UTC(), p.CreatedAt)
	assert.Zero(t, p.Downloads)

	got, err := svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, svc.IncrementDownloads(p.ID))
	got, err = svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Downloads)

	ok, err := svc.Delete(p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = svc.GetByID(p.ID)
	assert.ErrorIs(t, err, paper.ErrNotFound)
}

func TestService_Query(t *testing.T) {
	repo := inmemdb.NewPaperRepository(inmemdb.Open())
	svc := paper.NewService(repo)
	testutil.CreatePaper(t, repo, "p1", "10", "Mathematics", 2022, paper.PhaseOne)
	testutil.CreatePaper(t, repo, "p2", "12", "Physics", 2023, paper.PhaseAnnual)

	papers, err := svc.Query(paper.QueryFilter{Subject: "  physics "})
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "p2", papers[0].Title)
}

func TestNewPaper_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	valid := func() paper.NewPaper {
		return paper.NewPaper{
			Title:    " Physics ",
			Class:    "12-Science",
			Subject:  "Physics",
			Year:     2023,
			Phase:    "Annual",
			FileName: "physics.pdf",
			FilePath: "/uploads/physics.pdf",
		}
	}

	np := valid()
	require.NoError(t, np.Validate(validate))
	assert.Equal(t, "Physics", np.Title)
	assert.Equal(t, "12-science", np.Class)
	assert.Equal(t, "annual", np.Phase)

	tests := []struct {
		name   string
		modify func(np *paper.NewPaper)
		field  string
	}{
		{"blank title", func(np *paper.NewPaper) { np.Title = "   " }, "title"},
		{"unknown class", func(np *paper.NewPaper) { np.Class = "13" }, "class"},
		{"unknown phase", func(np *paper.NewPaper) { np.Phase = "phase3" }, "phase"},
		{"year out of range", func(np *paper.NewPaper) { np.Year = 1800 }, "year"},
		{"missing file", func(np *paper.NewPaper) { np.FilePath = "" }, "filePath"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			np := valid()
			tc.modify(&np)
			err := np.Validate(validate)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field())
		})
	}
}

func TestPhaseValidation(t *testing.T) {
	validate, translator := testutil.NewValidator()

	for _, phase := range paper.Phases {
		assert.True(t, paper.IsPhase(phase), phase)
	}
	assert.False(t, paper.IsPhase("Annual"))

	np := paper.NewPaper{
		Title: "Physics", Class: "12", Subject: "Physics", Year: 2023, Phase: "midterm",
		FileName: "physics.pdf", FilePath: "/uploads/physics.pdf",
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, np.Validate(validate), &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "phase must be one of: phase1, phase2, annual", verrs[0].Translate(translator))
}
