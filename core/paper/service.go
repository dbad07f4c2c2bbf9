package paper

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("question paper not found")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreatePaper(p Paper) (Paper, error)
		// QueryPapers applies AND operation on available QueryFilter fields
		// and sorts the result by Year, newest first.
		QueryPapers(filter QueryFilter) ([]Paper, error)
		GetPaperByID(id int) (Paper, error)
		// IncrementPaperDownloads is a no-op when the Paper does not exist.
		IncrementPaperDownloads(id int) error
		DeletePaper(id int) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(np NewPaper) (Paper, error) {
	return svc.repo.CreatePaper(Paper{
		Title:       np.Title,
		Description: np.Description,
		Class:       np.Class,
		Subject:     np.Subject,
		Year:        np.Year,
		Phase:       np.Phase,
		FileName:    np.FileName,
		FilePath:    np.FilePath,
		CreatedAt:   NowFunc().UTC(),
	})
}

func (svc *Service) Query(filter QueryFilter) ([]Paper, error) {
	filter.Clean()
	return svc.repo.QueryPapers(filter)
}

func (svc *Service) GetByID(id int) (Paper, error) {
	return svc.repo.GetPaperByID(id)
}

func (svc *Service) IncrementDownloads(id int) error {
	return svc.repo.IncrementPaperDownloads(id)
}

// Delete reports whether a Paper was removed.
func (svc *Service) Delete(id int) (bool, error) {
	return svc.repo.DeletePaper(id)
}
