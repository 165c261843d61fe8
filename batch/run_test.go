package batch_test

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/hpcd-dev/hpc/batch"
	"github.com/hpcd-dev/hpc/dataset"
	"github.com/hpcd-dev/hpc/gen"
	"github.com/hpcd-dev/hpc/report"
)

func TestRun_noData(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	resultsDir := filepath.Join(root, "results")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		t.Fatal(err)
	}

	err := batch.Run(batch.Config{DataDir: dataDir, ResultsDir: resultsDir, ExpectedCount: 2, Sleep: noSleep}, report.DebugOff)
	if !errors.Is(err, batch.ErrNoData) {
		t.Fatalf("fail: %v", err)
	}

	// missing data dir counts as no data
	err = batch.Run(batch.Config{DataDir: filepath.Join(root, "missing"), ResultsDir: resultsDir, ExpectedCount: 2, Sleep: noSleep}, report.DebugOff)
	if !errors.Is(err, batch.ErrNoData) {
		t.Fatalf("fail: %v", err)
	}

	// no side effects on the results dir
	if _, err := os.Stat(resultsDir); !os.IsNotExist(err) {
		t.Fatal("results dir was created")
	}
}

func TestRun_countMismatch(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	resultsDir := filepath.Join(root, "results")
	mustGenerate(t, dataDir, 3)

	err := batch.Run(batch.Config{DataDir: dataDir, ResultsDir: resultsDir, ExpectedCount: 2, Sleep: noSleep}, report.DebugOff)
	if !errors.Is(err, batch.ErrCountMismatch) {
		t.Fatalf("fail: %v", err)
	}

	// expected and actual count in the message
	if !strings.Contains(err.Error(), "expected 2") || !strings.Contains(err.Error(), "found 3") {
		t.Fatalf("fail: %v", err)
	}

	// no side effects on the results dir
	if _, err := os.Stat(resultsDir); !os.IsNotExist(err) {
		t.Fatal("results dir was created")
	}
}

func TestRun_basics(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	resultsDir := filepath.Join(root, "results")
	mustGenerate(t, dataDir, 2)

	// count the pacing calls
	calls := 0
	sleep := func(d time.Duration) {
		calls++
		if d != 5*time.Second {
			t.Errorf("delay %v", d)
		}
	}

	cfg := batch.Config{DataDir: dataDir, ResultsDir: resultsDir, ExpectedCount: 2, Delay: 5 * time.Second, Sleep: sleep}
	if err := batch.Run(cfg, report.DebugOff); err != nil {
		t.Fatal(err)
	}

	// pacing runs after every file (including the last one)
	if calls != 2 {
		t.Fatalf("calls %d", calls)
	}

	// manifest: one valid record per file, in name order
	manifest, err := ioutil.ReadFile(filepath.Join(resultsDir, batch.ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(manifest), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("fail: %q", lines)
	}
	re := regexp.MustCompile(`^[0-9a-f]{64}  .+/random-0[12]\.bin$`)
	for _, line := range lines {
		if !re.MatchString(line) {
			t.Errorf("invalid line: %q", line)
		}
	}

	// manifest digests match a re-calculation
	for i, name := range []string{"random-01.bin", "random-02.bin"} {
		digest, _, err := dataset.FileDigest(filepath.Join(dataDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(lines[i], digest+"  ") {
			t.Errorf("wrong digest: %q", lines[i])
		}
	}

	// summary: header, one line per file, total
	summary, err := ioutil.ReadFile(filepath.Join(resultsDir, batch.SummaryFile))
	if err != nil {
		t.Fatal(err)
	}
	s := string(summary)
	if !strings.HasPrefix(s, "host: ") {
		t.Errorf("no host header: %q", s)
	}
	if !strings.Contains(s, "\ndate: ") {
		t.Errorf("no date header: %q", s)
	}
	if !strings.Contains(s, "\nfile_count: 2\n") {
		t.Errorf("no file count: %q", s)
	}
	if strings.Count(s, "\nhashing ") != 2 {
		t.Errorf("wrong hashing lines: %q", s)
	}
	if !strings.Contains(s, "(1048576 bytes)") {
		t.Errorf("wrong size: %q", s)
	}
	if !strings.HasSuffix(s, "total_bytes: 2097152\n") {
		t.Errorf("wrong total: %q", s)
	}
}

func TestRun_idempotent(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	resultsDir := filepath.Join(root, "results")
	mustGenerate(t, dataDir, 2)

	cfg := batch.Config{DataDir: dataDir, ResultsDir: resultsDir, ExpectedCount: 2, Sleep: noSleep}

	if err := batch.Run(cfg, report.DebugOff); err != nil {
		t.Fatal(err)
	}
	m1, err := ioutil.ReadFile(filepath.Join(resultsDir, batch.ManifestFile))
	if err != nil {
		t.Fatal(err)
	}

	// second run over unchanged data: byte-identical manifest
	if err := batch.Run(cfg, report.DebugOff); err != nil {
		t.Fatal(err)
	}
	m2, err := ioutil.ReadFile(filepath.Join(resultsDir, batch.ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m1, m2) {
		t.Fatalf("\nis=%s\nsu=%s", m2, m1)
	}
}

// ----------  HELPER  -----------------------------------------------------------------------------------------------//

// noSleep is the no-op pacing policy for tests.
func noSleep(time.Duration) {}

// mustGenerate writes count small data files with the generator.
func mustGenerate(t *testing.T, dir string, count int) {
	t.Helper()
	if _, err := gen.Generate(gen.Config{Dir: dir, Count: count, SizeMB: 1, Seed: 42}, report.DebugOff); err != nil {
		t.Fatal(err)
	}
}
