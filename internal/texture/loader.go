// Package texture resolves viewfinder overlay textures, with a process-wide
// cache so each texture is decoded at most once.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrTextureLoad means a viewfinder texture could not be read or decoded.
var ErrTextureLoad = errors.New("texture: load failed")

// Loader resolves a texture identifier to a decoded NRGBA image.
type Loader interface {
	Load(name string) (*image.NRGBA, error)
}

// FileLoader reads textures from a directory. Absolute identifiers are used
// as-is; relative ones resolve against Dir.
type FileLoader struct {
	Dir string
}

// Load opens and decodes the named texture.
func (l FileLoader) Load(name string) (*image.NRGBA, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrTextureLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrTextureLoad, path, err)
	}
	return imaging.Clone(img), nil
}
