package backups

import (
	"strings"
	"testing"

	"github.com/julianstephens/growlog/internal/backup"
	"github.com/julianstephens/growlog/internal/cli/clitest"
	"github.com/julianstephens/growlog/internal/models"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := clitest.New(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup listed: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := clitest.New(t)
	dbPath, _ := ctx.SQLitePath()

	if _, err := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{Name: "Before"}); err != nil {
		t.Fatal(err)
	}
	snap, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	orig := confirm
	confirm = func(string) (bool, error) { return false, nil }
	t.Cleanup(func() { confirm = orig })

	if err := (&BackupRestoreCmd{BackupFile: snap}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: snap, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") || !strings.Contains(out.String(), "Previous journal saved") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := clitest.New(t)
	if err := (&BackupRestoreCmd{BackupFile: "growlog-19990101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}
