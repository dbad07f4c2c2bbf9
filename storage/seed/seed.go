// Package seed loads the sample content shown on a fresh install.
package seed

import (
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/video"
)

// SamplePath is the location of the bundled sample data in assets.FS.
const SamplePath = "seed/sample.yaml"

type (
	Paper struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Class       string `yaml:"class"`
		Subject     string `yaml:"subject"`
		Year        int    `yaml:"year"`
		Phase       string `yaml:"phase"`
		FileName    string `yaml:"fileName"`
		FilePath    string `yaml:"filePath"`
	}

	Video struct {
		Title        string `yaml:"title"`
		Description  string `yaml:"description"`
		Class        string `yaml:"class"`
		Subject      string `yaml:"subject"`
		YouTubeURL   string `yaml:"youtubeUrl"`
		ThumbnailURL string `yaml:"thumbnailUrl"`
		Duration     string `yaml:"duration"`
	}

	Data struct {
		Papers []Paper `yaml:"papers"`
		Videos []Video `yaml:"videos"`
	}
)

// Load decodes the YAML file at path in fsys.
func Load(fsys fs.FS, path string) (Data, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Data{}, errors.Wrap(err, "reading seed file")
	}
	var data Data
	if err = yaml.Unmarshal(b, &data); err != nil {
		return Data{}, errors.Wrap(err, "decoding seed file")
	}
	return data, nil
}

// Apply validates and inserts every item of data, papers first.
func Apply(data Data, validate *validator.Validate, papers *paper.Service, videos *video.Service) error {
	for i, sp := range data.Papers {
		np := paper.NewPaper{
			Title:       sp.Title,
			Description: sp.Description,
			Class:       sp.Class,
			Subject:     sp.Subject,
			Year:        sp.Year,
			Phase:       sp.Phase,
			FileName:    sp.FileName,
			FilePath:    sp.FilePath,
		}
		if err := np.Validate(validate); err != nil {
			return errors.Wrapf(err, "papers[%d]", i)
		}
		if _, err := papers.Create(np); err != nil {
			return errors.Wrapf(err, "creating papers[%d]", i)
		}
	}

	for i, sv := range data.Videos {
		nv := video.NewVideo{
			Title:        sv.Title,
			Description:  sv.Description,
			Class:        sv.Class,
			Subject:      sv.Subject,
			YouTubeURL:   sv.YouTubeURL,
			ThumbnailURL: sv.ThumbnailURL,
			Duration:     sv.Duration,
		}
		if err := nv.Validate(validate); err != nil {
			return errors.Wrapf(err, "videos[%d]", i)
		}
		if _, err := videos.Create(nv); err != nil {
			return errors.Wrapf(err, "creating videos[%d]", i)
		}
	}
	return nil
}
