package download

import (
	"net/url"
	"path"

	"github.com/podcatch/podcatch/pkg/model"
)

// Extension resolves the target file extension for an episode. Known
// audio MIME types map directly, anything else falls back to the
// extension of the enclosure URL path.
func Extension(episode model.Episode) (string, error) {
	switch episode.MIMEType {
	case "audio/mpeg":
		return ".mp3", nil
	case "audio/mp4":
		return ".m4a", nil
	case "audio/ogg":
		return ".ogg", nil
	}

	u, err := url.Parse(episode.EnclosureURL)
	if err != nil {
		return "", model.ErrNoExtension
	}

	if ext := path.Ext(u.Path); ext != "" {
		return ext, nil
	}

	return "", model.ErrNoExtension
}
