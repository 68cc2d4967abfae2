package domain

import (
	"testing"
	"time"
)

func TestGroupOutputs(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	files := []OutputFile{
		{Name: "my-song-capo3.txt", Ext: "txt", ModTime: base},
		{Name: "my-song-capo3.pdf", Ext: "pdf", ModTime: base.Add(time.Second)},
		{Name: "my-song-capo3-2.txt", Ext: "txt", ModTime: base.Add(time.Hour)},
		{Name: "20230101-120000-old-tune-capo0.txt", Ext: "txt", ModTime: base.Add(-time.Hour)},
		{Name: "old-tune-capo0.pdf", Ext: "pdf", ModTime: base.Add(-2 * time.Hour)},
		{Name: "notes.md", Ext: "md", ModTime: base.Add(2 * time.Hour)},
	}

	groups := GroupOutputs(files, 0)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(groups), groups)
	}

	wantKeys := []string{"my-song-capo3-2", "my-song-capo3", "old-tune-capo0"}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Errorf("group %d key = %q, want %q", i, groups[i].Key, key)
		}
	}

	song := groups[1]
	if song.Label != "My Song (Capo 3)" {
		t.Errorf("label = %q", song.Label)
	}
	if !song.ModTime.Equal(base.Add(time.Second)) {
		t.Errorf("group mtime = %v, want newest sibling", song.ModTime)
	}
	if len(song.Files) != 2 || song.Files[0].Ext != "pdf" || song.Files[1].Ext != "txt" {
		t.Errorf("expected pdf before txt, got %+v", song.Files)
	}

	// legacy and canonical names of the same core share a group
	if len(groups[2].Files) != 2 {
		t.Errorf("expected legacy sibling grouped, got %+v", groups[2].Files)
	}
}

func TestGroupOutputs_Limit(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	files := []OutputFile{
		{Name: "a-capo0.txt", Ext: "txt", ModTime: base},
		{Name: "b-capo0.txt", Ext: "txt", ModTime: base.Add(time.Minute)},
		{Name: "c-capo0.txt", Ext: "txt", ModTime: base.Add(2 * time.Minute)},
	}

	groups := GroupOutputs(files, 2)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "c-capo0" || groups[1].Key != "b-capo0" {
		t.Errorf("unexpected groups: %q, %q", groups[0].Key, groups[1].Key)
	}

	if _, ok := FindGroup(groups, "a-capo0"); ok {
		t.Error("oldest file should be cut by the limit")
	}
}

func TestIsSupportedOutput(t *testing.T) {
	tests := map[string]bool{
		"song-capo1.txt": true,
		"song-capo1.PDF": true,
		"song-capo1.md":  false,
		"song":           false,
		".tmp-123":       false,
	}
	for name, want := range tests {
		if got := IsSupportedOutput(name); got != want {
			t.Errorf("IsSupportedOutput(%q) = %v, want %v", name, got, want)
		}
	}
}
