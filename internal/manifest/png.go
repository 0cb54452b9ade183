// SPDX-License-Identifier: Unlicense OR MIT

package manifest

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

// WritePagePNG encodes page and writes it to path.
func WritePagePNG(path string, page *image.RGBA) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, crunchutil.ErrIoWrite, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, page); err != nil {
		return fmt.Errorf("%s: %w: %v", path, crunchutil.ErrPngCodec, err)
	}
	return nil
}
