// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Resource names the input of a decode. A non-empty Path is opened and
// decoded as a stream; otherwise Data is decoded as an in-memory buffer.
type Resource struct {
	Path string
	// Offset is where the WAVE image starts inside Path, for assets
	// packed into a larger bundle file.
	Offset int64
	Data   []byte
}

// Opener opens a named resource for binary, seekable reading.
type Opener interface {
	Open(name string) (io.ReadSeekCloser, error)
}

// FileOpener opens paths on the local filesystem.
type FileOpener struct{}

func (FileOpener) Open(name string) (io.ReadSeekCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// FSOpener opens files from an fs.FS such as an embed.FS asset bundle.
// Files that cannot seek are read into memory first.
type FSOpener struct {
	FS fs.FS
}

func (o FSOpener) Open(name string) (io.ReadSeekCloser, error) {
	f, err := o.FS.Open(name)
	if err != nil {
		return nil, err
	}

	if rsc, ok := f.(io.ReadSeekCloser); ok {
		return rsc, nil
	}

	data, err := io.ReadAll(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing %s: %w", name, closeErr)
	}

	return memFile{bytes.NewReader(data)}, nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }
