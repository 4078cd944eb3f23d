package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// Progress is called while a download runs with the bytes written so far
// and the expected total, 0 when unknown.
type Progress func(done, total int64)

// Downloader streams dump files to disk.
type Downloader struct {
	Client   *http.Client
	Progress Progress
}

// Fetch downloads url to dest. It returns false without a request when dest
// already exists. The body is written to a temporary file next to dest and
// renamed on success.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("downloading %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	w := &progressWriter{w: tmp, total: max(resp.ContentLength, 0), fn: d.Progress}
	if _, err := io.Copy(w, resp.Body); err != nil {
		tmp.Close()
		return false, fmt.Errorf("downloading %s: %w", url, err)
	}

	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return false, err
	}

	return true, nil
}

type progressWriter struct {
	w     io.Writer
	done  int64
	total int64
	fn    Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	if p.fn != nil {
		p.fn(p.done, p.total)
	}
	return n, err
}
