package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lthealth/taxonomy/internal/config"
	"github.com/lthealth/taxonomy/internal/storage"
	"github.com/lthealth/taxonomy/internal/taxonomy"
)

// captureStdout runs fn and returns what it wrote to stdout.
func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()
	w.Close()
	return <-done
}

// useProject points the CLI at root for the duration of the test.
func useProject(t *testing.T, root string) {
	t.Helper()
	rootFlag = root
	humanOutput = false
	t.Cleanup(func() { rootFlag = "" })
}

func TestProjectRoot_Flag(t *testing.T) {
	useProject(t, "/some/where")

	got, err := projectRoot()
	if err != nil {
		t.Fatalf("projectRoot() error = %v", err)
	}
	if got != "/some/where" {
		t.Errorf("projectRoot() = %q", got)
	}
}

func TestProjectRoot_FindsAncestor(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "citations"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "scripts")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	got, err := projectRoot()
	if err != nil {
		t.Fatalf("projectRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if gotReal, _ := filepath.EvalSymlinks(got); gotReal != want {
		t.Errorf("projectRoot() = %q, want %q", got, root)
	}
}

func TestInitBuildIndexSearch(t *testing.T) {
	root := t.TempDir()
	useProject(t, root)

	out := captureStdout(t, func() {
		if err := runInit(initCmd, nil); err != nil {
			t.Fatalf("runInit() error = %v", err)
		}
	})
	var initResp InitResponse
	if err := json.Unmarshal(out, &initResp); err != nil {
		t.Fatalf("init output is not JSON: %v\n%s", err, out)
	}
	if len(initResp.Created) != 10 || initResp.Total != 10 {
		t.Errorf("init response = %+v", initResp)
	}

	bib := "@article{foo2020, title = {Deep Learning}, author = {Jane Doe}, year = {2020}, journal = {Nature}}"
	bibPath := filepath.Join(root, config.DefaultCitationsDir, "surveys", "foo.bib")
	if err := os.WriteFile(bibPath, []byte(bib), 0644); err != nil {
		t.Fatal(err)
	}

	out = captureStdout(t, func() {
		if err := runBuild(buildCmd, nil); err != nil {
			t.Fatalf("runBuild() error = %v", err)
		}
	})
	var summary taxonomy.Summary
	if err := json.Unmarshal(out, &summary); err != nil {
		t.Fatalf("build output is not JSON: %v\n%s", err, out)
	}
	if summary.Total != 1 || len(summary.Categories) != 10 {
		t.Errorf("summary = %+v, want 1 paper over 10 categories", summary)
	}

	captureStdout(t, func() {
		if err := runIndex(indexCmd, nil); err != nil {
			t.Fatalf("runIndex() error = %v", err)
		}
	})

	out = captureStdout(t, func() {
		if err := runSearch(searchCmd, []string{"deep"}); err != nil {
			t.Fatalf("runSearch() error = %v", err)
		}
	})
	var entries []storage.Entry
	if err := json.Unmarshal(out, &entries); err != nil {
		t.Fatalf("search output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].ID != "foo2020" || entries[0].Category != "surveys" {
		t.Errorf("search results = %+v", entries)
	}

	searchCategory = "surveys"
	t.Cleanup(func() { searchCategory = "" })
	out = captureStdout(t, func() {
		if err := runSearch(searchCmd, nil); err != nil {
			t.Fatalf("runSearch() without query error = %v", err)
		}
	})
	entries = nil
	if err := json.Unmarshal(out, &entries); err != nil {
		t.Fatalf("listing output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].ID != "foo2020" || entries[0].Venue != "Nature" {
		t.Errorf("category listing = %+v", entries)
	}
}

func TestFilterYear(t *testing.T) {
	entries := []storage.Entry{{Category: "surveys"}, {Category: "fairness"}}
	entries[0].Year = "2020"
	entries[1].Year = "2021"

	if got := filterYear(entries, ""); len(got) != 2 {
		t.Errorf("filterYear(\"\") kept %d, want 2", len(got))
	}
	got := filterYear(entries, "2021")
	if len(got) != 1 || got[0].Category != "fairness" {
		t.Errorf("filterYear(2021) = %+v", got)
	}
	if got := filterYear(entries, "1999"); got == nil || len(got) != 0 {
		t.Errorf("filterYear(1999) = %#v, want empty non-nil", got)
	}
}

func TestRunParse(t *testing.T) {
	humanOutput = false
	path := filepath.Join(t.TempDir(), "p.bib")
	if err := os.WriteFile(path, []byte("@misc{p1, title = {Parsed}}"), 0644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		if err := runParse(parseCmd, []string{path}); err != nil {
			t.Fatalf("runParse() error = %v", err)
		}
	})

	var records []map[string]string
	if err := json.Unmarshal(out, &records); err != nil {
		t.Fatalf("parse output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0]["id"] != "p1" || records[0]["abstract"] != "Abstract not available." {
		t.Errorf("records = %v", records)
	}
}

func TestRunCategories(t *testing.T) {
	humanOutput = false
	out := captureStdout(t, func() {
		if err := runCategories(categoriesCmd, nil); err != nil {
			t.Fatal(err)
		}
	})

	var cats []map[string]string
	if err := json.Unmarshal(out, &cats); err != nil {
		t.Fatalf("categories output is not JSON: %v", err)
	}
	if len(cats) != 10 || cats[0]["id"] != "surveys" {
		t.Errorf("categories = %v", cats)
	}
}
