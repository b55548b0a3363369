package storage

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type LocalClient struct {
	SinkName  string
	Directory string
	Prefix    string
}

func (c *LocalClient) Name() string {
	return c.SinkName
}

func (c *LocalClient) resolve(object string) (string, error) {
	root := filepath.Clean(c.Directory)
	target := filepath.Join(root, filepath.FromSlash(objectKey(c.Prefix, object)))

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("object %#q escapes directory %s", object, root)
	}

	return target, nil
}

func (c *LocalClient) Put(ctx context.Context, object string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "not writing %s", object)
	}

	target, err := c.resolve(object)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", target)
	}

	// write next to the target and rename, so readers never see half a file
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "failed to move %s into place", target)
	}

	log.Debugf("Wrote %d bytes to %s", len(body), target)

	return nil
}

func (c *LocalClient) List(_ context.Context) ([]string, error) {
	root := filepath.Clean(c.Directory)
	var names []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// nothing published yet
			if p == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan directory %s", root)
	}

	sort.Strings(names)

	return names, nil
}
