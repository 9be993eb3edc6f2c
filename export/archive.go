package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/nakisara01/C6demo/transcribe"
)

// Session wraps a transcription result with the identifying metadata the
// archive needs to restore it later.
type Session struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Source    string                   `json:"source"`
	BPM       float64                  `json:"bpm"`
	Signature transcribe.TimeSignature `json:"signature"`
	Result    *transcribe.Result       `json:"result"`
}

// NewSession stamps a result with a fresh session ID
func NewSession(source string, bpm float64, signature transcribe.TimeSignature, result *transcribe.Result) Session {
	return Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		BPM:       bpm,
		Signature: signature,
		Result:    result,
	}
}

// Archive writes a session into archiveDir/{session-id}.json.zst and
// returns the archive path.
func Archive(session Session, archiveDir string) (string, error) {
	if session.ID == "" {
		return "", fmt.Errorf("session has no ID")
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	destPath := ArchivePath(session.ID, archiveDir)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if err := json.NewEncoder(encoder).Encode(session); err != nil {
		encoder.Close()
		return "", fmt.Errorf("encode session: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Load restores a session from an archive file.
func Load(archivePath string) (Session, error) {
	var session Session

	src, err := os.Open(archivePath)
	if err != nil {
		return session, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return session, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	if err := json.NewDecoder(decoder).Decode(&session); err != nil {
		return session, fmt.Errorf("decode session: %w", err)
	}

	return session, nil
}

// IsArchived returns true if an archive file exists for the given session ID.
func IsArchived(sessionID, archiveDir string) bool {
	_, err := os.Stat(ArchivePath(sessionID, archiveDir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for a session ID.
func ArchivePath(sessionID, archiveDir string) string {
	return filepath.Join(archiveDir, sessionID+".json.zst")
}
