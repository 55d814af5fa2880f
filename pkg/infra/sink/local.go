package sink

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prodsync/pdgate/pkg/domain/model"
)

// Local writes payloads into a directory on the local file system
type Local struct {
	dir string
}

// NewLocal creates a sink rooted at dir. An empty dir means the working directory.
func NewLocal(dir string) *Local {
	if dir == "" {
		dir = "."
	}
	return &Local{dir: dir}
}

// Save writes data to dir/name, truncating any existing file. The write is not atomic.
func (x *Local) Save(ctx context.Context, name string, data []byte) (*model.DownloadResult, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, goerr.New("invalid file name", goerr.V("name", name))
	}

	path := filepath.Join(x.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, goerr.Wrap(err, "failed to write downloaded file", goerr.V("path", path))
	}

	ctxlog.From(ctx).Info("Saved downloaded file",
		slog.String("path", path),
		slog.Int("size_bytes", len(data)),
	)

	return &model.DownloadResult{
		FileName: name,
		Location: path,
		Size:     int64(len(data)),
	}, nil
}
