package paper

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bouncebacklearning/backend/core"
)

// Phases
const (
	PhaseOne    = "phase1"
	PhaseTwo    = "phase2"
	PhaseAnnual = "annual"
)

// Phases lists every phase a Paper can belong to.
var Phases = []string{PhaseOne, PhaseTwo, PhaseAnnual}

func IsPhase(phase string) bool {
	for _, p := range Phases {
		if p == phase {
			return true
		}
	}
	return false
}

// Paper is an uploaded exam question paper.
type Paper struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Class       string    `json:"class"`
	Subject     string    `json:"subject"`
	Year        int       `json:"year"`
	Phase       string    `json:"phase"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"filePath"`
	Downloads   int       `json:"downloads"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// NewPaper contains information needed to create a new Paper.
type NewPaper struct {
	Title       string `json:"title" form:"title" validate:"required,notblank"`
	Description string `json:"description" form:"description"`
	Class       string `json:"class" form:"class" validate:"required,schoolclass"`
	Subject     string `json:"subject" form:"subject" validate:"required,notblank"`
	Year        int    `json:"year" form:"year" validate:"required,min=1900,max=2100"`
	Phase       string `json:"phase" form:"phase" validate:"required,phase"`
	FileName    string `json:"fileName" validate:"required"`
	FilePath    string `json:"filePath" validate:"required"`
}

func (np *NewPaper) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.Class = core.CleanString(np.Class, true /* lower */)
	np.Subject = core.CleanString(np.Subject)
	np.Phase = core.CleanString(np.Phase, true /* lower */)
	return validate.Struct(np)
}

// QueryFilter narrows a Paper listing. Zero-valued fields are ignored.
type QueryFilter struct {
	Class   string
	Subject string // case-insensitive substring
	Year    int
	Phase   string
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Class == "" && qf.Subject == "" && qf.Year == 0 && qf.Phase == ""
}

func (qf *QueryFilter) Clean() {
	qf.Class = core.CleanString(qf.Class)
	qf.Subject = core.CleanString(qf.Subject)
	qf.Phase = core.CleanString(qf.Phase)
}
