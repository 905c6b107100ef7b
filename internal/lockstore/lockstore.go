// Package lockstore gives independent processes a shared rendezvous per
// (device, fraction) slot. It is the only code in this repository that
// touches the cross-process lock files; everything else goes through it.
package lockstore

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ojimaabraham/chronos/internal/platform"
)

// DirPerm is the permission mode used when creating the lock directory.
const DirPerm = 0o755

// FilePerm is the permission mode used when creating a lock file.
const FilePerm = 0o644

// Store derives lock-file paths deterministically from (device index,
// memory fraction) and mediates every create/exists/delete/owner-read
// against them.
type Store struct {
	baseDir  string
	platform platform.Platform
}

// New constructs a Store rooted at baseDir. baseDir is not required to
// exist yet; call Init to create it.
func New(baseDir string, p platform.Platform) *Store {
	return &Store{baseDir: baseDir, platform: p}
}

// BaseDir returns the directory this store derives lock paths under.
func (s *Store) BaseDir() string { return s.baseDir }

// Init creates the base directory idempotently. Failure to create it is
// the caller's to log; it never prevents the store from being constructed,
// matching spec: device registry initialization does not abort on this.
func (s *Store) Init() error {
	return s.platform.CreateDirectory(s.baseDir, DirPerm)
}

// percentMil rounds a memory fraction to thousandths of the whole device
// (tenths of a percent), e.g. 0.3334 -> 333 and 0.3336 -> 334. Two
// fractions collide in the lock store iff they round to the same value —
// that is the store's granularity contract, not a bug.
func percentMil(fraction float32) int {
	return int(math.Round(float64(fraction) * 1000))
}

// Path returns the deterministic lock-file path for (deviceIdx, fraction).
func (s *Store) Path(deviceIdx int, fraction float32) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("gpu_%d_%04d.lock", deviceIdx, percentMil(fraction)))
}

// Record is the exact content of one lock file, in the fixed key order
// spec.md §6 defines.
type Record struct {
	Pid       int
	User      string
	Host      string
	Time      string
	Device    int
	Fraction  float32
	Partition string
}

func (r Record) encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "pid: %d\n", r.Pid)
	fmt.Fprintf(&buf, "user: %s\n", r.User)
	fmt.Fprintf(&buf, "host: %s\n", r.Host)
	fmt.Fprintf(&buf, "time: %s\n", r.Time)
	fmt.Fprintf(&buf, "device: %d\n", r.Device)
	fmt.Fprintf(&buf, "fraction: %v\n", r.Fraction)
	fmt.Fprintf(&buf, "partition: %s\n", r.Partition)
	return buf.Bytes()
}

// Create atomically creates the lock file for (deviceIdx, fraction). It
// fails if the file already exists — that failure is how admission detects
// it lost a race against another process.
func (s *Store) Create(deviceIdx int, fraction float32, rec Record) error {
	return s.platform.CreateExclusive(s.Path(deviceIdx, fraction), rec.encode(), FilePerm)
}

// Exists reports whether a lock file is currently present for the slot.
func (s *Store) Exists(deviceIdx int, fraction float32) bool {
	return s.platform.FileExists(s.Path(deviceIdx, fraction))
}

// Owner returns the user: field of the lock file for the slot, or "" if
// the file is absent or malformed. It never returns an error: an unreadable
// lock file is treated the same as an absent one, per spec.md §4.3.
func (s *Store) Owner(deviceIdx int, fraction float32) string {
	content, err := s.platform.ReadFile(s.Path(deviceIdx, fraction))
	if err != nil {
		return ""
	}
	return fieldValue(content, "user: ")
}

func fieldValue(content []byte, prefix string) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):]
		}
	}
	return ""
}

// Delete removes the lock file for the slot. Absence is not an error.
func (s *Store) Delete(deviceIdx int, fraction float32) error {
	return s.platform.DeleteFile(s.Path(deviceIdx, fraction))
}

// ParseRecord parses raw lock-file content into a Record, tolerating files
// that are missing fields (foreign or partially written files degrade
// field-by-field rather than failing outright) — used by the read-only
// "locks list" administrative command, never by admission.
func ParseRecord(content []byte) Record {
	var rec Record
	rec.User = fieldValue(content, "user: ")
	rec.Host = fieldValue(content, "host: ")
	rec.Time = fieldValue(content, "time: ")
	rec.Partition = fieldValue(content, "partition: ")
	if v := fieldValue(content, "pid: "); v != "" {
		rec.Pid, _ = strconv.Atoi(v)
	}
	if v := fieldValue(content, "device: "); v != "" {
		rec.Device, _ = strconv.Atoi(v)
	}
	if v := fieldValue(content, "fraction: "); v != "" {
		f, _ := strconv.ParseFloat(v, 32)
		rec.Fraction = float32(f)
	}
	return rec
}

// IsLockFile reports whether name looks like a lock file this store would
// have produced, without requiring it to parse cleanly — used to skip
// unrelated files when scanning the directory.
func IsLockFile(name string) bool {
	return strings.HasPrefix(name, "gpu_") && strings.HasSuffix(name, ".lock")
}
