package canvas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const sampleLog = "timestamp,user_id,pixel_color,coordinate\n" +
	`2022-04-04 00:55:57.168 UTC,userA==,#FFF,"5,5"` + "\n" +
	`2022-04-04 00:55:58.001 UTC,userB==,#000,"5,5"` + "\n"

func TestEachLine_SkipsHeaderAndNumbersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	var lines []string
	var numbers []int
	err := EachLine(path, func(n int, line string) {
		numbers = append(numbers, n)
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if numbers[0] != 1 || numbers[1] != 2 {
		t.Errorf("line numbers = %v, want [1 2]", numbers)
	}
	if lines[0] != `2022-04-04 00:55:57.168 UTC,userA==,#FFF,"5,5"` {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestEachLine_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(sampleLog)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := EachLine(path, func(int, string) { count++ }); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 lines from gzipped log, got %d", count)
	}
}

func TestEachLine_MissingFile(t *testing.T) {
	err := EachLine(filepath.Join(t.TempDir(), "nope.csv"), func(int, string) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
