package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shensd/icecold"
	main "github.com/shensd/icecold/cmd/icecold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSite serves pages keyed by path and counts requests.
func newSite(t *testing.T, pages map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".xml") {
			w.Header().Set("Content-Type", "application/xml")
		} else {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

var twoPages = map[string]string{
	"/":      `<html><body><p>Hello World</p><a href="/about">About Us</a></body></html>`,
	"/about": `<html><body><h1>Team Page</h1></body></html>`,
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "icecold")
	assert.Contains(t, stdout.String(), "--url-file")
	assert.Contains(t, stdout.String(), "--chain-len")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	assert.Contains(t, stdout.String(), "Usage")
}

func TestMain_Run_SeedSelection(t *testing.T) {
	t.Parallel()

	t.Run("requires a seed", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"-d", "2"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})

	t.Run("rejects url together with url file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"-u", "https://example.com", "-U", "urls.txt"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})

	t.Run("rejects url argument together with --url", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"https://a.example.com", "--url", "https://b.example.com"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})

	t.Run("rejects url file together with sitemap", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"--url-file", "urls.txt", "--sitemap", "https://example.com/sitemap.xml"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("writes chained candidates to the output file", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		out := filepath.Join(t.TempDir(), "words.txt")
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "-o", out}, &stdout, &stderr)

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"hello", "world", "hello_world", "hello-world", "helloworld",
			"about",
			"team", "page", "team_page", "team-page", "teampage",
		}, lines(string(data)))
		assert.Empty(t, stdout.String())
	})

	t.Run("writes to stdout by default", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"--url", srv.URL + "/", "-d", "0", "-c", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world", "about"}, lines(stdout.String()))
	})

	t.Run("honours word length and glue flags", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{
			srv.URL + "/", "-d", "0", "-m", "5", "-M", "5", "--charset", "+", "--no-smush",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world", "hello+world", "about"}, lines(stdout.String()))
	})

	t.Run("reads seeds from a url file", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		urlFile := filepath.Join(t.TempDir(), "urls.txt")
		content := "# seeds\n\n  " + srv.URL + "/about  \n" + srv.URL + "/\n"
		require.NoError(t, os.WriteFile(urlFile, []byte(content), 0644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"-U", urlFile, "-d", "0", "-c", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"team", "page", "hello", "world", "about"}, lines(stdout.String()))
	})

	t.Run("missing url file leaves existing output alone", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(out, []byte("previous\n"), 0644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{
			"-U", filepath.Join(t.TempDir(), "absent.txt"), "-o", out,
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "previous\n", string(got))
	})

	t.Run("empty pages do not stop the crawl", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, map[string]string{
			"/":      `<p>Hello World</p><a href="/empty">Nothing</a><a href="/more">Onward</a>`,
			"/empty": "",
			"/more":  `<p>More</p>`,
		})
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "-c", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world", "nothing", "onward", "more"}, lines(stdout.String()))
	})

	t.Run("reads seeds from a sitemap", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`,
		}
		for path, body := range twoPages {
			pages[path] = body
		}
		srv, _ := newSite(t, pages)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"--sitemap", srv.URL + "/sitemap.xml", "-d", "0", "-c", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"team", "page"}, lines(stdout.String()))
	})

	t.Run("loads flag values from a YAML config file", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		cfgFile := filepath.Join(t.TempDir(), "icecold.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("depth: 0\ncharset: \".\"\nno-smush: true\nmin_word_len: 4\n"), 0644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "--config", cfgFile}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world", "hello.world", "about"}, lines(stdout.String()))
	})

	t.Run("command line overrides the config file", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, twoPages)
		cfgFile := filepath.Join(t.TempDir(), "icecold.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("depth: 0\nchain-len: 3\n"), 0644))
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "--config", cfgFile, "-c", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world", "about"}, lines(stdout.String()))
	})

	t.Run("skips unresponsive pages when asked", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, map[string]string{
			"/": `<p>Hello</p><a href="/gone">Gone</a>`,
		})
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "--ignore-unresponsive"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "gone"}, lines(stdout.String()))
	})

	t.Run("fails on unresponsive pages by default", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSite(t, map[string]string{
			"/": `<p>Hello</p><a href="/gone">Gone</a>`,
		})
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EFETCH, icecold.ErrorCode(err))
		assert.Contains(t, icecold.ErrorMessage(err), srv.URL+"/gone")
		assert.Equal(t, []string{"hello", "gone"}, lines(stdout.String()), "output written before the failure is flushed")
	})

	t.Run("interrupted run exits cleanly", func(t *testing.T) {
		t.Parallel()

		srv, hits := newSite(t, twoPages)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(ctx, []string{srv.URL + "/"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Interrupt caught, exiting...")
		assert.Equal(t, int32(0), hits.Load())
	})
}

func TestMain_Run_ValidatesBeforeFetching(t *testing.T) {
	t.Parallel()

	t.Run("invalid chain length", func(t *testing.T) {
		t.Parallel()

		srv, hits := newSite(t, twoPages)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "-c", "0"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("max word length below min", func(t *testing.T) {
		t.Parallel()

		srv, hits := newSite(t, twoPages)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "-m", "8", "-M", "4"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("unwritable output location", func(t *testing.T) {
		t.Parallel()

		srv, hits := newSite(t, twoPages)
		out := filepath.Join(t.TempDir(), "missing", "words.txt")
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/", "-o", out}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, int32(0), hits.Load())
	})
}

func TestReadURLFile(t *testing.T) {
	t.Parallel()

	t.Run("skips blank lines and comments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(path, []byte("https://a.example.com\n\n   \n# note\n\thttps://b.example.com \n"), 0644))

		urls, err := main.ReadURLFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, urls)
	})

	t.Run("empty file is invalid", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(path, []byte("\n# nothing\n"), 0644))

		_, err := main.ReadURLFile(path)

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})

	t.Run("missing file is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := main.ReadURLFile(filepath.Join(t.TempDir(), "absent.txt"))

		require.Error(t, err)
		assert.Equal(t, icecold.EINVALID, icecold.ErrorCode(err))
	})
}
