package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNew_DropsSelfLinks(t *testing.T) {
	c := New(map[string][]string{
		"a.html": {"a.html", "b.html"},
		"b.html": {"a.html"},
	})

	if c["a.html"]["a.html"] {
		t.Error("self link should have been dropped")
	}
	if !c["a.html"]["b.html"] {
		t.Error("a.html → b.html should survive")
	}
}

func TestNew_DropsLinksOutsideCorpus(t *testing.T) {
	c := New(map[string][]string{
		"a.html": {"b.html", "https://example.com", "missing.html"},
		"b.html": nil,
	})

	if len(c["a.html"]) != 1 || !c["a.html"]["b.html"] {
		t.Errorf("a.html outlinks = %v, want only b.html", c["a.html"])
	}
}

func TestPages_Sorted(t *testing.T) {
	c := New(map[string][]string{"c": nil, "a": nil, "b": nil})

	got := c.Pages()
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pages() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		corpus  Corpus
		wantErr error
	}{
		{
			name:    "empty corpus",
			corpus:  Corpus{},
			wantErr: ErrEmptyCorpus,
		},
		{
			name: "self link",
			corpus: Corpus{
				"a": {"a": true},
			},
			wantErr: ErrSelfLink,
		},
		{
			name: "link outside corpus",
			corpus: Corpus{
				"a": {"ghost": true},
			},
			wantErr: ErrUnknownTarget,
		},
		{
			name: "valid",
			corpus: Corpus{
				"a": {"b": true},
				"b": {},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.corpus.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractLinks(t *testing.T) {
	html := `<html><body>
		<a href="1.html">one</a>
		<a class="nav" href="2.html">two</a>
		<p>no link here</p>
		<a href="1.html">one again</a>
	</body></html>`

	got := ExtractLinks(html)
	want := []string{"1.html", "2.html", "1.html"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractLinks() = %v, want %v", got, want)
	}
}

func TestCrawl(t *testing.T) {
	dir := t.TempDir()
	write := func(name, contents string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("1.html", `<a href="2.html">two</a>`)
	write("2.html", `<a href="1.html">one</a> <a href="3.html">three</a> <a href="2.html">self</a>`)
	write("3.html", `<a href="https://example.com">external</a>`)
	write("notes.txt", `<a href="1.html">not html</a>`)

	c, err := Crawl(dir)
	if err != nil {
		t.Fatalf("Crawl() error: %v", err)
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (notes.txt must be skipped)", c.Len())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("crawled corpus failed Validate(): %v", err)
	}
	if !c["1.html"]["2.html"] {
		t.Error("1.html should link to 2.html")
	}
	if c["2.html"]["2.html"] {
		t.Error("self link in 2.html should be dropped")
	}
	if len(c["3.html"]) != 0 {
		t.Errorf("3.html outlinks = %v, want none (external link dropped)", c["3.html"])
	}
}

func TestCrawl_EmptyDirectory(t *testing.T) {
	_, err := Crawl(t.TempDir())
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Crawl() on empty dir = %v, want ErrEmptyCorpus", err)
	}
}

func TestCrawl_MissingDirectory(t *testing.T) {
	if _, err := Crawl(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Crawl() on missing dir should fail")
	}
}
