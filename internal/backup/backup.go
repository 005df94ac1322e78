package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"garage-backend/internal/config"
	"garage-backend/internal/database"
)

const (
	TypeDatabase = "database"
	TypeFull     = "full"

	retentionDays = 30
)

// Run creates a timestamped backup in cfg.BackupDir and returns the
// backup file name. TypeDatabase copies the raw SQLite file; TypeFull
// zips the database together with the attachments directory.
func Run(cfg *config.Config, backupType string, includeAttachments bool) (string, error) {
	dbPath, ok := database.SQLitePath(cfg.DatabaseDSN)
	if !ok {
		return "", fmt.Errorf("file backup requires an SQLite database")
	}

	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")

	switch backupType {
	case TypeDatabase:
		name := fmt.Sprintf("database_backup_%s.db", timestamp)
		if err := copyFile(dbPath, filepath.Join(cfg.BackupDir, name)); err != nil {
			return "", err
		}
		return name, nil

	case TypeFull:
		name := fmt.Sprintf("full_backup_%s.zip", timestamp)
		if err := writeZip(filepath.Join(cfg.BackupDir, name), dbPath, cfg.AttachmentsDir, includeAttachments); err != nil {
			return "", err
		}
		return name, nil

	default:
		return "", fmt.Errorf("unknown backup type %q", backupType)
	}
}

// CleanupOld removes backup files older than the retention window.
func CleanupOld(cfg *config.Config) error {
	entries, err := os.ReadDir(cfg.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(cfg.BackupDir, entry.Name()))
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func writeZip(dst, dbPath, attachmentsDir string, includeAttachments bool) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	if err := addFileToZip(zw, dbPath, filepath.Base(dbPath)); err != nil {
		return err
	}

	if !includeAttachments {
		return nil
	}
	if _, err := os.Stat(attachmentsDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(attachmentsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(filepath.Dir(attachmentsDir), path)
		if err != nil {
			return err
		}
		return addFileToZip(zw, path, filepath.ToSlash(rel))
	})
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
