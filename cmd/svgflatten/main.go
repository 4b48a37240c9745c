package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/djherbis/atime"
	"github.com/dustin/go-humanize"
	"github.com/matryer/try"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/flatten"
)

// Version is the current svgflatten version.
var Version = "built from source"

var (
	flattener          *flatten.Flattener
	hidden             bool
	matches            []string
	matchesRegexp      []*regexp.Regexp
	recursive          bool
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	preserve           []string
	preserveMode       bool
	preserveOwnership  bool
	preserveTimestamps bool
)

type Matches struct {
	matches *[]string
}

func (scanner Matches) Scan(name string, s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.matches = append(*scanner.matches, item)
		n++
	}
	return n, nil
}

func (scanner Matches) Help() (string, string) {
	return "", "[]string"
}

type SkipFills struct {
	fills *[]string
}

func (scanner SkipFills) Scan(name string, s []string) (int, error) {
	n := 0
	for _, item := range s {
		if strings.HasPrefix(item, "-") {
			break
		}
		*scanner.fills = append(*scanner.fills, item)
		n++
	}
	return n, nil
}

func (scanner SkipFills) Help() (string, string) {
	return "", "[]string"
}

// Task is a flatten task.
type Task struct {
	root string
	src  string
	dst  string
}

// NewTask returns a new Task.
func NewTask(root, input, output string) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		output = filepath.Join(output, rel)
	}
	return Task{root, input, output}, nil
}

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string
	var skipFills []string

	flattener = flatten.New()

	defaultPreserve := []string{"mode", "timestamps"}
	if supportsGetOwnership {
		defaultPreserve = []string{"mode", "ownership", "timestamps"}
	}

	preserve = defaultPreserve

	p := argp.New("svgflatten")
	p.AddRest(&inputs, "inputs", "Input files or directories, leave blank to use stdin")
	p.AddOpt(&output, "o", "output", "Output file or directory, leave blank to use stdout")
	p.AddOpt(Matches{&matches}, "", "match", "Filename matching pattern, only matching filenames are processed")
	p.AddOpt(&recursive, "r", "recursive", "Recursively flatten directories")
	p.AddOpt(&hidden, "a", "all", "Process all files, including hidden files and files in hidden directories")
	p.AddOpt(&quiet, "q", "quiet", "Quiet mode to suppress all output")
	p.AddOpt(argp.Count{I: &verbose}, "v", "verbose", "Verbose mode, set twice for more verbosity")
	p.AddOpt(&watch, "w", "watch", "Watch files and flatten upon changes")
	p.AddOpt(&preserve, "p", "preserve", "Preserve options (mode, ownership, timestamps, all)")
	p.AddOpt(&version, "", "version", "Version")

	p.AddOpt(&flattener.Sequential, "", "sequential", "Union shapes one at a time instead of in one batch call")
	p.AddOpt(&flattener.KeepWhite, "", "keep-white", "Keep shapes with a literal white fill")
	p.AddOpt(SkipFills{&skipFills}, "", "skip-fill", "Fill values whose shapes are skipped, replaces the default skip list")
	p.AddOpt(&flattener.Render, "", "render", "Run the render normalization pre-pass")
	p.AddOpt(&flattener.Simplify, "", "simplify", "Resolve groups, inherited fills and transforms onto the shapes")
	p.Parse()

	if version {
		if !quiet {
			fmt.Printf("svgflatten %s\n", Version)
		}
		return 0
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	}
	if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	Error = log.New(io.Discard, "", 0)
	Warning = log.New(io.Discard, "", 0)
	Info = log.New(io.Discard, "", 0)
	if !quiet {
		Error = log.New(os.Stderr, "ERROR: ", 0)
		if 0 < verbose {
			Warning = log.New(os.Stderr, "WARNING: ", 0)
		}
		if 1 < verbose {
			Info = log.New(os.Stderr, "INFO: ", 0)
			flattener.Progress = Info
		}
	}

	if 0 < len(skipFills) {
		flattener.SkipFills = skipFills
	}

	// compile filename matching patterns
	var err error
	if 0 < len(matches) {
		matchesRegexp = make([]*regexp.Regexp, len(matches))
		for i, pattern := range matches {
			if matchesRegexp[i], err = compilePattern(pattern); err != nil {
				Error.Println(err)
				return 1
			}
		}
	}

	if (useStdin || output == "") && watch {
		Error.Println("--watch doesn't work with stdin and stdout, specify input and output")
		return 1
	} else if useStdin && recursive {
		Error.Println("--recursive doesn't work with stdin, specify input")
		return 1
	} else if output == "" && recursive {
		Error.Println("--recursive doesn't work with stdout, specify output")
		return 1
	}
	if p.IsSet("preserve") && (useStdin || output == "") {
		Error.Println("--preserve cannot be used together with stdin or stdout")
		return 1
	}
	for _, option := range preserve {
		switch option {
		case "all":
			preserveMode = true
			preserveOwnership = true
			preserveTimestamps = true
		case "mode":
			preserveMode = true
		case "ownership":
			preserveOwnership = true
		case "timestamps":
			preserveTimestamps = true
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		Warning.Println("preserve ownership not supported on platform")
	}

	////////////////

	for i, input := range inputs {
		if input == "-" {
			Error.Println("cannot mix files and stdin as input")
			return 1
		}
		inputs[i] = filepath.Clean(input)
		if input[len(input)-1] == os.PathSeparator {
			inputs[i] += string(os.PathSeparator)
		}
	}

	// set output file or directory, empty means stdout
	dirDst := false
	if output != "" {
		dirDst = IsDir(output)
		if !dirDst {
			if 1 < len(inputs) {
				Error.Printf("stat %v: no such file or directory\n", output)
				return 1
			} else if len(inputs) == 1 {
				if info, err := os.Lstat(inputs[0]); err == nil && info.Mode().IsDir() {
					dirDst = true
				}
			}
		}

		output = filepath.Clean(output)
		if dirDst {
			output += string(os.PathSeparator)
		}
	} else if 1 < len(inputs) {
		Error.Println("must specify an output directory for multiple input files")
		return 1
	}
	if output == "" {
		Info.Println("flatten to stdout")
	} else if !dirDst {
		Info.Println("flatten to output file", output)
	} else if output == "."+string(os.PathSeparator) {
		Info.Println("flatten to current working directory")
	} else {
		Info.Println("flatten to output directory", output)
	}
	if useStdin {
		Info.Println("flatten from stdin")
	}

	var tasks []Task
	var roots []string
	if useStdin {
		tasks = append(tasks, Task{"", "", output})
		roots = append(roots, "")
	} else {
		fsys := NewFS()
		tasks, roots, err = createTasks(fsys, inputs, output)
		if err != nil {
			Error.Println(err)
			return 1
		}
	}

	// make output directory
	if dirDst {
		if err := os.MkdirAll(output, 0777); err != nil {
			Error.Println(err)
			return 1
		}
	}

	////////////////

	fails := 0
	start := time.Now()
	if !watch && (len(tasks) == 1 || 0 < verbose) {
		for _, task := range tasks {
			if ok := flattenTask(task); !ok {
				fails++
			}
		}
	} else {
		numWorkers := runtime.NumCPU()
		if 0 < verbose {
			numWorkers = 1
		} else if numWorkers < 4 {
			numWorkers = 4
		}

		chanTasks := make(chan Task, 20)
		chanFails := make(chan int, numWorkers)
		for n := 0; n < numWorkers; n++ {
			go flattenWorker(chanTasks, chanFails)
		}

		if !watch {
			for _, task := range tasks {
				chanTasks <- task
			}
		} else {
			watcher, err := NewWatcher(recursive)
			if err != nil {
				Error.Println(err)
				return 1
			}
			defer watcher.Close()
			changes := watcher.Run()

			for _, filename := range inputs {
				watcher.AddPath(filename)
			}

			for _, task := range tasks {
				watcher.IgnoreNext(task.dst)
				chanTasks <- task
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			for changes != nil {
				select {
				case <-c:
					watcher.Close()
				case file, ok := <-changes:
					if !ok {
						changes = nil
						break
					}
					file = filepath.Clean(file)
					if !fileMatches(file) {
						break
					}

					// find longest common path among roots
					root := ""
					for _, path := range roots {
						pathRel, err1 := filepath.Rel(path, file)
						rootRel, err2 := filepath.Rel(root, file)
						if err2 != nil || err1 == nil && len(pathRel) < len(rootRel) {
							root = path
						}
					}

					task, err := NewTask(root, file, output)
					if err != nil {
						Error.Println(err)
						return 1
					}
					watcher.IgnoreNext(task.dst) // skip change on output
					chanTasks <- task
				}
			}
		}

		close(chanTasks)
		for n := 0; n < numWorkers; n++ {
			fails += <-chanFails
		}
	}

	if !watch {
		Info.Println("finished in", time.Since(start))
	}
	if 0 < fails {
		return 1
	}
	return 0
}

func flattenWorker(chanTasks <-chan Task, chanFails chan<- int) {
	fails := 0
	for task := range chanTasks {
		if ok := flattenTask(task); !ok {
			fails++
		}
	}
	chanFails <- fails
}

// compilePattern returns a regular expression, converting glob patterns
// unless the pattern is prefixed with a tilde
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if len(pattern) == 0 || pattern[0] != '~' {
		if strings.HasPrefix(pattern, `\~`) {
			pattern = pattern[1:]
		}
		pattern = regexp.QuoteMeta(pattern)
		pattern = strings.ReplaceAll(pattern, `\*\*`, `.*`)
		pattern = strings.ReplaceAll(pattern, `\*`, fmt.Sprintf(`[^%c]*`, filepath.Separator))
		pattern = strings.ReplaceAll(pattern, `\?`, fmt.Sprintf(`[^%c]?`, filepath.Separator))
		pattern = "^" + pattern + "$"
	} else {
		pattern = pattern[1:]
	}
	return regexp.Compile(pattern)
}

func fileFilter(filename string) bool {
	if 0 < len(matches) {
		match := false
		base := filepath.Base(filename)
		for _, re := range matchesRegexp {
			if re.MatchString(base) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

func fileMatches(filename string) bool {
	if !fileFilter(filename) {
		return false
	}
	return strings.EqualFold(filepath.Ext(filename), ".svg")
}

func createTasks(fsys fs.FS, inputs []string, output string) ([]Task, []string, error) {
	tasks := []Task{}
	roots := []string{}
	for _, input := range inputs {
		root := filepath.Clean(filepath.Dir(input))
		input = filepath.Clean(input)

		info, err := fs.Stat(fsys, input)
		if err != nil {
			return nil, nil, err
		}

		if info.Mode().IsRegular() {
			if fileFilter(input) {
				task, err := NewTask(root, input, output)
				if err != nil {
					return nil, nil, err
				}
				tasks = append(tasks, task)
			}
		} else if info.Mode().IsDir() {
			if !recursive {
				Warning.Println("--recursive not specified, omitting directory", input)
				continue
			}

			walkFn := func(input string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				} else if d.Name() == "." || d.Name() == ".." {
					return nil
				} else if d.Name() == "" || !hidden && d.Name()[0] == '.' {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}

				if d.Type().IsRegular() && fileMatches(input) {
					task, err := NewTask(root, input, output)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				return nil
			}
			if err := fs.WalkDir(fsys, input, walkFn); err != nil {
				return nil, nil, err
			}
			roots = append(roots, root)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

func flattenTask(t Task) bool {
	srcName := t.src
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := t.dst
	if dstName == "" {
		dstName = "stdout"
	}

	// rename original when overwriting
	src := t.src
	if t.src != "" && t.dst != "" {
		if sameFile, _ := SameFile(t.src, t.dst); sameFile {
			src = t.src + ".bak"
			err := try.Do(func(attempt int) (bool, error) {
				ferr := os.Rename(t.src, src)
				return attempt < 5, ferr
			})
			if err != nil {
				Error.Println(err)
				return false
			}
		}
	}

	fr, err := openInputFile(src)
	if err != nil {
		Error.Println(err)
		return false
	}
	b, err := io.ReadAll(fr)
	fr.Close()
	if err != nil {
		Error.Println("cannot flatten "+srcName+":", err)
		return false
	}

	startTime := time.Now()
	res, err := flattener.Bytes(b)
	if err != nil {
		Error.Println("cannot flatten "+srcName+":", err)
		if src != t.src {
			// restore the original
			if err := os.Rename(src, t.src); err != nil {
				Error.Println(err)
			}
		}
		return false
	}

	fw, err := openOutputFile(t.dst)
	if err != nil {
		Error.Println(err)
		return false
	}
	_, err = fw.Write(res)
	if fw != os.Stdout {
		fw.Close()
	}
	if err != nil {
		Error.Println("cannot flatten "+srcName+":", err)
		return false
	}

	// remove original that was renamed, when overwriting files
	if src != t.src {
		if err := os.Remove(src); err != nil {
			Error.Println(err)
			return false
		}
		src = t.dst
	}

	if !quiet {
		dur := time.Since(startTime)
		rLen, wLen := len(b), len(res)
		ratio := 1.0
		if 0 < rLen {
			ratio = float64(wLen) / float64(rLen)
		}
		stats := fmt.Sprintf("(%9v, %6v, %6v, %5.1f%%)", dur, humanize.Bytes(uint64(rLen)), humanize.Bytes(uint64(wLen)), ratio*100)
		if srcName != dstName {
			fmt.Println(stats, "-", srcName, "to", dstName)
		} else {
			fmt.Println(stats, "-", srcName)
		}
	}

	preserveAttributes(src, t.root, t.dst)
	return true
}

func preserveAttributes(src, root, dst string) {
	if src == "" || dst == "" {
		return
	}

	// make sure we only set attributes on directories and files inside the root destination
	var err error
	src, err = filepath.Rel(root, src)
	if err != nil {
		// should never occur
		Error.Printf("src is not part of root path: src=%s root=%s", src, root)
		return
	}

Next:
	srcInfo, err := os.Stat(filepath.Join(root, src))
	if err != nil {
		Warning.Println(err)
		return
	}

	if preserveMode {
		err = os.Chmod(dst, srcInfo.Mode().Perm())
		if err != nil {
			Warning.Println(err)
		}
	}
	if preserveOwnership {
		if uid, gid, ok := getOwnership(srcInfo); ok {
			err = os.Chown(dst, uid, gid)
			if err != nil {
				Warning.Println(err)
			}
		}
	}
	if preserveTimestamps {
		err = os.Chtimes(dst, atime.Get(srcInfo), srcInfo.ModTime())
		if err != nil {
			Warning.Println(err)
		}
	}

	src = filepath.Dir(src)
	dst = filepath.Dir(dst)
	if src != "." {
		// go up to but excluding the root path
		goto Next
	}
}
