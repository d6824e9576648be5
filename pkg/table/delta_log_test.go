package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFoldDeltaCommit(t *testing.T) {
	live := make(map[string]struct{})

	commit0 := []byte(`
{"protocol":{"minReaderVersion":1}}
{"metaData":{"id":"7e1b"}}
{"add":{"path":"part-00000.parquet","size":1024}}
{"add":{"path":"part-00001.parquet","size":2048}}
`)
	if err := foldDeltaCommit(commit0, live); err != nil {
		t.Fatalf("fold commit 0: %v", err)
	}
	if len(live) != 2 {
		t.Fatalf("expected 2 live files, got %d", len(live))
	}

	commit1 := []byte(`
{"remove":{"path":"part-00000.parquet","deletionTimestamp":1710000000000}}
{"add":{"path":"part-00002.parquet","size":512}}
`)
	if err := foldDeltaCommit(commit1, live); err != nil {
		t.Fatalf("fold commit 1: %v", err)
	}

	want := map[string]struct{}{
		"part-00001.parquet": {},
		"part-00002.parquet": {},
	}
	if diff := cmp.Diff(want, live); diff != "" {
		t.Fatalf("live set mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldDeltaCommitRejectsMalformedActions(t *testing.T) {
	live := make(map[string]struct{})
	if err := foldDeltaCommit([]byte(`{"add":`), live); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFoldDeltaCommitIgnoresBlankLines(t *testing.T) {
	live := make(map[string]struct{})
	commit := []byte("\n\n{\"add\":{\"path\":\"a.parquet\"}}\n\n")
	if err := foldDeltaCommit(commit, live); err != nil {
		t.Fatalf("fold commit: %v", err)
	}
	if _, ok := live["a.parquet"]; !ok {
		t.Fatal("expected a.parquet in live set")
	}
}
