package inmemdb

import (
	"sort"
	"strings"

	"github.com/bouncebacklearning/backend/core/paper"
)

type paperRepository struct {
	db *table[paper.Paper]
}

var _ paper.Repository = (*paperRepository)(nil)

func NewPaperRepository(db *DB) paper.Repository {
	return &paperRepository{db: db.papers}
}

func (repo *paperRepository) CreatePaper(p paper.Paper) (paper.Paper, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = repo.db.nextPK()
	p.Downloads = 0
	repo.db.rows[p.ID] = p
	return p, nil
}

func (repo *paperRepository) QueryPapers(filter paper.QueryFilter) ([]paper.Paper, error) {
	repo.db.RLock()
	papers := repo.db.query()
	repo.db.RUnlock()

	if !filter.IsEmpty() {
		subject := strings.ToLower(filter.Subject)
		filtered := make([]paper.Paper, 0, len(papers))
		for _, p := range papers {
			if filter.Class != "" && p.Class != filter.Class {
				continue
			}
			if subject != "" && !strings.Contains(strings.ToLower(p.Subject), subject) {
				continue
			}
			if filter.Year != 0 && p.Year != filter.Year {
				continue
			}
			if filter.Phase != "" && p.Phase != filter.Phase {
				continue
			}
			filtered = append(filtered, p)
		}
		papers = filtered
	}

	sort.SliceStable(papers, func(i, j int) bool { return papers[i].Year > papers[j].Year })
	return papers, nil
}

func (repo *paperRepository) GetPaperByID(id int) (paper.Paper, error) {
	if p, ok := repo.db.get(id); ok {
		return p, nil
	}
	return paper.Paper{}, paper.ErrNotFound
}

func (repo *paperRepository) IncrementPaperDownloads(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if p, ok := repo.db.rows[id]; ok {
		p.Downloads++
		repo.db.rows[id] = p
	}
	return nil
}

func (repo *paperRepository) DeletePaper(id int) (bool, error) {
	return repo.db.delete(id), nil
}
