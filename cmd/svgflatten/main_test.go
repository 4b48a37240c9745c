package main

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/tdewolff/test"
)

func TestCreateTasks(t *testing.T) {
	fsys := fstest.MapFS{
		"a.svg":     {},
		"dir/b.svg": {},
		"dir/c.txt": {},
	}

	tests := []struct {
		input, output string
		tasks         map[string]string
	}{
		// root file
		{"a.svg", "", map[string]string{"a.svg": ""}},
		{"a.svg", ".", map[string]string{"a.svg": "a.svg"}},
		{"a.svg", "./", map[string]string{"a.svg": "a.svg"}},
		{"a.svg", "out", map[string]string{"a.svg": "out"}},
		{"a.svg", "out/", map[string]string{"a.svg": "out/a.svg"}},

		// nested file
		{"dir/b.svg", "", map[string]string{"dir/b.svg": ""}},
		{"dir/b.svg", ".", map[string]string{"dir/b.svg": "b.svg"}},
		{"dir/b.svg", "out/", map[string]string{"dir/b.svg": "out/b.svg"}},

		// directory, non-svg files are left out
		{"dir", "", map[string]string{"dir/b.svg": ""}},
		{"dir", ".", map[string]string{"dir/b.svg": "dir/b.svg"}},
		{"dir", "out/", map[string]string{"dir/b.svg": "out/dir/b.svg"}},
		{"dir/", "out/", map[string]string{"dir/b.svg": "out/b.svg"}},
	}

	recursive = true
	for _, tt := range tests {
		t.Run(tt.input+" => "+tt.output, func(t *testing.T) {
			tasks, _, err := createTasks(fsys, []string{tt.input}, tt.output)
			test.Error(t, err)
			if len(tasks) != len(tt.tasks) {
				test.Fail(t, fmt.Sprintf("missing %v", tt.tasks))
			}
			for _, task := range tasks {
				if dst, ok := tt.tasks[task.src]; !ok || dst != task.dst {
					test.Fail(t, fmt.Sprintf("unexpected %s => %s", task.src, task.dst))
				}
			}
		})
	}
}

func TestCreateTasksHidden(t *testing.T) {
	fsys := fstest.MapFS{
		"dir/.hidden/a.svg": {},
		"dir/.b.svg":        {},
		"dir/c.svg":         {},
	}

	recursive = true
	hidden = false
	tasks, _, err := createTasks(fsys, []string{"dir"}, "")
	test.Error(t, err)
	test.T(t, len(tasks), 1)
	test.String(t, tasks[0].src, "dir/c.svg")

	hidden = true
	tasks, _, err = createTasks(fsys, []string{"dir"}, "")
	test.Error(t, err)
	test.T(t, len(tasks), 3)
	hidden = false
}

func TestCompilePattern(t *testing.T) {
	re, err := compilePattern("*.svg")
	test.Error(t, err)
	test.That(t, re.MatchString("icon.svg"))
	test.That(t, !re.MatchString("icon.js"))
	test.That(t, !re.MatchString("icon.svg.bak"))

	re, err = compilePattern("~^icon-")
	test.Error(t, err)
	test.That(t, re.MatchString("icon-home.svg"))
	test.That(t, !re.MatchString("home.svg"))

	_, err = compilePattern("~([")
	test.That(t, err != nil)
}

func TestFileMatches(t *testing.T) {
	matches = nil
	matchesRegexp = nil
	test.That(t, fileMatches("a.svg"))
	test.That(t, fileMatches("a.SVG"))
	test.That(t, !fileMatches("a.js"))
}
