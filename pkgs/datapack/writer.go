package datapack

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// WriteError is raised when a pack's files cannot be created or written
// to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write data pack file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// packMcmeta is the fixed pack.mcmeta document. Format version numbers
// are treated as opaque per spec §6 and never inspected by this module.
type packMcmeta struct {
	Pack struct {
		PackFormat  int    `json:"pack_format"`
		Description string `json:"description"`
	} `json:"pack"`
}

const packFormat = 48 // opaque: current at time of writing, never read back

// Write renders pack to dir: pack.mcmeta at the root, one
// data/<namespace>/function/<name>.mcfunction per Mcfunction, and a
// minecraft:load function tag registering the initialize function so
// it runs once when the pack is loaded.
func Write(pack *DataPack, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}

	meta := packMcmeta{}
	meta.Pack.PackFormat = packFormat
	meta.Pack.Description = fmt.Sprintf("smelter compiled pack (%s)", Fingerprint(pack))
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return &WriteError{Path: "pack.mcmeta", Err: err}
	}
	metaPath := filepath.Join(dir, "pack.mcmeta")
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return &WriteError{Path: metaPath, Err: err}
	}

	funcDir := filepath.Join(dir, "data", pack.Namespace, "function")
	if err := os.MkdirAll(funcDir, 0o755); err != nil {
		return &WriteError{Path: funcDir, Err: err}
	}
	for _, fn := range pack.Functions {
		path := filepath.Join(funcDir, fn.Name+".mcfunction")
		if err := os.WriteFile(path, []byte(fn.Body()), 0o644); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	return writeLoadTag(pack, dir)
}

func writeLoadTag(pack *DataPack, dir string) error {
	if pack.Lookup("initialize") == nil {
		return nil
	}
	tagDir := filepath.Join(dir, "data", "minecraft", "tags", "function")
	if err := os.MkdirAll(tagDir, 0o755); err != nil {
		return &WriteError{Path: tagDir, Err: err}
	}
	tag := struct {
		Values []string `json:"values"`
	}{Values: []string{FnInitialize}}
	data, err := json.MarshalIndent(tag, "", "  ")
	if err != nil {
		return &WriteError{Path: "load.json", Err: err}
	}
	path := filepath.Join(tagDir, "load.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Fingerprint is a deterministic, content-addressed identifier for pack,
// keyed-hashed over each function's name and body in pack order. Grounded
// on the teacher's keyed-hash approach to deterministic IDs
// (runtime/vault/vault.go), using blake2b per this module's dependency
// table in place of the teacher's hmac/sha256.
func Fingerprint(pack *DataPack) string {
	h, _ := blake2b.New256([]byte(pack.Namespace))
	for _, fn := range pack.Functions {
		h.Write([]byte(fn.Name))
		h.Write([]byte{0})
		h.Write([]byte(fn.Body()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
