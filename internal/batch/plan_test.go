// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docmark/pkg/types"
)

func TestBuildTasks_OutputBesideInput(t *testing.T) {
	in := filepath.Join("docs", "report.docx")

	tasks, err := BuildTasks([]string{in}, types.BatchConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	want := filepath.Join("docs", "report.md")
	if tasks[0].OutputPath != want {
		t.Errorf("output = %s, want %s", tasks[0].OutputPath, want)
	}
}

func TestBuildTasks_OutputDirOverride(t *testing.T) {
	tasks, err := BuildTasks(
		[]string{filepath.Join("a", "one.docx"), filepath.Join("b", "two.docx")},
		types.BatchConfig{OutputDir: "out"},
	)
	if err != nil {
		t.Fatal(err)
	}

	for i, wantBase := range []string{"one.md", "two.md"} {
		want := filepath.Join("out", wantBase)
		if tasks[i].OutputPath != want {
			t.Errorf("tasks[%d].OutputPath = %s, want %s", i, tasks[i].OutputPath, want)
		}
	}
}

func TestBuildTasks_CollisionIsPlanningError(t *testing.T) {
	_, err := BuildTasks(
		[]string{filepath.Join("a", "same.docx"), filepath.Join("b", "same.docx")},
		types.BatchConfig{OutputDir: "out"},
	)
	if err == nil {
		t.Fatal("expected a collision error")
	}
	if !strings.Contains(err.Error(), "collision") {
		t.Errorf("error %q should mention the collision", err)
	}
}

func TestBuildTasks_CarriesExtraArgs(t *testing.T) {
	extra := []string{"--toc", "--standalone"}

	tasks, err := BuildTasks([]string{"doc.docx"}, types.BatchConfig{ExtraArgs: extra})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks[0].ExtraArgs) != 2 || tasks[0].ExtraArgs[0] != "--toc" || tasks[0].ExtraArgs[1] != "--standalone" {
		t.Errorf("extra args = %v, want %v", tasks[0].ExtraArgs, extra)
	}
}
