package collect

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/zerr"
)

// LoadSet reads a previously collected artifact set from dir using its
// manifest. Hardware sessions consume sets this way without rebuilding.
func LoadSet(dir string) (domain.ArtifactSet, error) {
	path := filepath.Join(dir, domain.ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return domain.ArtifactSet{}, zerr.With(wrapped, "path", path)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		wrapped := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return domain.ArtifactSet{}, zerr.With(wrapped, "path", path)
	}

	return domain.ArtifactSet{
		Target:   manifest.Target,
		Variant:  manifest.Variant,
		Dir:      dir,
		Manifest: manifest,
	}, nil
}
