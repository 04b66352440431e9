package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"photorganiser/internal/testsupport"
)

func yearStub(name, year string) testsupport.ConfigOption {
	return testsupport.WithExiv2(testsupport.Exiv2Case{
		Name:   name,
		Stdout: testsupport.KeywordLine("Date: " + year),
	})
}

func TestOrganizeMovesFiles(t *testing.T) {
	env := setupCLITestEnv(t, yearStub("a.jpg", "1984"))
	testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")
	testsupport.WriteFile(t, filepath.Join(env.root, "b.png"), "b")

	out, _, err := runCLI(t, []string{"-d", env.root}, "y\n", env.configPath)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Your selected directory was "+env.root+".\nPlease confirm (Y)es, (N)o: ")
	requireContains(t, out, "Starting process...")
	requireContains(t, out, "Moved")
	requireNotContains(t, out, "files were found")
	requireTree(t, env.root, "1984/a.jpg", "unorganised/b.png")

	logData, err := os.ReadFile(env.cfg.Paths.AuditLog)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	requireContains(t, string(logData), "2 files were found in or under")
}

func TestOrganizeVerboseEchoes(t *testing.T) {
	env := setupCLITestEnv(t, yearStub("a.jpg", "1984"))
	testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")

	out, _, err := runCLI(t, []string{"--directory", env.root, "--verbose"}, "YES\n", env.configPath)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "1 files were found in or under")
	requireContains(t, out, "Tags of interest were detected in these images:")
}

func TestOrganizeRenameFlag(t *testing.T) {
	env := setupCLITestEnv(t, yearStub("a.jpg", "1984"))
	testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")

	if _, _, err := runCLI(t, []string{"-d", env.root, "-r"}, "y\n", env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}
	got := testsupport.Tree(t, env.root)
	if len(got) != 1 || filepath.Dir(got[0]) != "1984" || got[0] == "1984/a.jpg" || filepath.Ext(got[0]) != ".jpg" {
		t.Fatalf("expected renamed file under 1984, got %v", got)
	}
}

func TestOrganizeAbortTouchesNothing(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "", "maybe\n"} {
		env := setupCLITestEnv(t, yearStub("a.jpg", "1984"))
		testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")

		out, _, err := runCLI(t, []string{"-d", env.root}, answer, env.configPath)
		if err != nil {
			t.Fatalf("answer %q: unexpected error %v", answer, err)
		}
		requireContains(t, out, "Aborting.")
		requireTree(t, env.root, "a.jpg")
		if _, err := os.Stat(env.cfg.Paths.AuditLog); !os.IsNotExist(err) {
			t.Fatalf("answer %q: audit log should not exist", answer)
		}
		if _, err := os.Stat(filepath.Dir(env.cfg.Paths.JournalDB)); !os.IsNotExist(err) {
			t.Fatalf("answer %q: journal directory should not exist", answer)
		}
	}
}

func TestOrganizeMissingRoot(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExiv2())
	missing := filepath.Join(env.root, "nope")

	out, _, err := runCLI(t, []string{"-d", missing}, "y\n", env.configPath)
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	requireContains(t, out, "Root directory was not found. Aborting attempt.")
	if _, err := os.Stat(env.cfg.Paths.AuditLog); !os.IsNotExist(err) {
		t.Fatal("audit log should not exist")
	}
	if _, err := os.Stat(env.cfg.Paths.JournalDB); !os.IsNotExist(err) {
		t.Fatal("journal database should not exist")
	}
	if _, err := os.Stat(filepath.Dir(env.cfg.Paths.JournalDB)); !os.IsNotExist(err) {
		t.Fatal("journal directory should not exist")
	}
}

func TestOrganizeRootIsFileTouchesNothing(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExiv2())
	file := filepath.Join(env.root, "a.jpg")
	testsupport.WriteFile(t, file, "a")

	out, _, err := runCLI(t, []string{"-d", file}, "y\n", env.configPath)
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	requireContains(t, out, "Root path is not a directory. Aborting attempt.")
	requireTree(t, env.root, "a.jpg")
	if _, err := os.Stat(filepath.Dir(env.cfg.Paths.JournalDB)); !os.IsNotExist(err) {
		t.Fatal("journal directory should not exist")
	}
}

func TestOrganizeRejectsDotPath(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExiv2())

	out, _, err := runCLI(t, []string{"-d", "./photos"}, "y\n", env.configPath)
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	requireContains(t, out, "Invalid root path. Aborting attempt.")
}

func TestOrganizeFlagValidation(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExiv2())

	cases := [][]string{
		{"-d", env.root, "--meta-type", "EXIF"},
		{"-d", env.root, "--tag-type", "CAPTION"},
		{"-d", env.root, "--tag-search", "MONTH"},
		{},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args, "y\n", env.configPath); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}

	if _, _, err := runCLI(t, []string{"-d", env.root, "-t", "iptc", "--tag-type", "keywords", "-s", "year"}, "n\n", env.configPath); err != nil {
		t.Fatalf("lower-case selectors should parse: %v", err)
	}
}

func TestOrganizeRequiresExiv2(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")

	_, _, err := runCLI(t, []string{"-d", env.root}, "y\n", env.configPath)
	if err == nil {
		t.Fatal("expected preflight error")
	}
	requireContains(t, err.Error(), "exiv2")
	requireTree(t, env.root, "a.jpg")
}

func TestHistoryListsRuns(t *testing.T) {
	env := setupCLITestEnv(t, yearStub("a.jpg", "2010"))
	testsupport.WriteFile(t, filepath.Join(env.root, "a.jpg"), "a")

	if _, _, err := runCLI(t, []string{"-d", env.root}, "y\n", env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "--json"}, "", env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []historyRun
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Moved != 1 || runs[0].Root != env.root {
		t.Fatalf("unexpected history: %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", "--run", runs[0].ID, "--json"}, "", env.configPath)
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	var moves []historyMove
	if err := json.Unmarshal([]byte(out), &moves); err != nil {
		t.Fatalf("decode moves: %v", err)
	}
	if len(moves) != 1 || moves[0].Token != "2010" {
		t.Fatalf("unexpected moves: %+v", moves)
	}

	out, _, err = runCLI(t, []string{"history"}, "", env.configPath)
	if err != nil {
		t.Fatalf("history table: %v", err)
	}
	requireContains(t, out, runs[0].ID[:8])
}

func TestHistoryJournalDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithJournal(false))

	out, _, err := runCLI(t, []string{"history"}, "", env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "journal is disabled")
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExiv2())

	out, _, err := runCLI(t, []string{"check", "-d", env.root}, "", env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "exiv2")
	requireContains(t, out, "All checks passed")

	missing := setupCLITestEnv(t)
	out, _, err = runCLI(t, []string{"check"}, "", missing.configPath)
	if err == nil {
		t.Fatal("expected check failure without exiv2")
	}
	requireContains(t, out, "FAIL")
}
